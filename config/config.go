package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "INVENTARIO_CONFIG_FILE"

type Config struct {
	LogLevel      slog.Level `mapstructure:"log_level"`
	InventoryFile string     `mapstructure:"inventory_file"`
	SnapshotFile  string     `mapstructure:"snapshot_file"`
	SeedDefaults  bool       `mapstructure:"seed_defaults"`
}

// Load resolves the configuration from defaults, an optional config
// file (--config flag or INVENTARIO_CONFIG_FILE env) and exits with
// code 2 when the file is present but unreadable. Running with zero
// flags works: every key has a default.
func Load() Config {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("inventory_file", "inventario.txt")
	viper.SetDefault("snapshot_file", "inventario.avro")
	viper.SetDefault("seed_defaults", true)

	if path := getConfigFilepath(); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			die(err)
		}
	}

	var cfg Config
	err := viper.Unmarshal(&cfg, viper.DecodeHook(
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}
