package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type catalog struct {
	PageSize       int           `mapstructure:"page_size" default:"20"`
	GalleryLimit   int           `mapstructure:"gallery_limit" default:"12"`
	SearchDebounce time.Duration `mapstructure:"search_debounce" default:"300ms"`
}

type Config struct {
	LogLevel   slog.Level `mapstructure:"log_level"`
	APIBaseURL string     `mapstructure:"api_base_url" default:"http://localhost:8000"`
	StateFile  string     `mapstructure:"state_file" default:".storefront/state.json"`
	Catalog    catalog    `mapstructure:"catalog"`
}

func Load() Config {
	_ = godotenv.Load()

	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		die(err)
	}

	path := getConfigFilepath()
	if path == "" {
		return cfg
	}

	viper.SetConfigFile(path)

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		die(err)
	}

	if env, ok := os.LookupEnv("STOREFRONT_API_URL"); ok {
		cfg.APIBaseURL = env
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
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

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	APIBaseURL=%q
	StateFile=%q

	Catalog:
	PageSize=%d
	GalleryLimit=%d
	SearchDebounce=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.APIBaseURL,
		c.StateFile,
		c.Catalog.PageSize,
		c.Catalog.GalleryLimit,
		c.Catalog.SearchDebounce,
	)
}
