package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress      = "localhost:8080"
	defaultMigrationsDir   = "internal/db/migrations"
	defaultPaymentResource = "resource_native"
)

type Config struct {
	RunAddress      string `env:"RUN_ADDRESS"`
	DatabaseDSN     string `env:"DATABASE_URI"`
	MigrationsDir   string `env:"MIGRATIONS_DIR"`
	BadgeSecret     string `env:"BADGE_SECRET"`
	PaymentResource string `env:"PAYMENT_RESOURCE"`
	DeploymentFile  string `env:"DEPLOYMENT_FILE"`
	ExportAddress   string `env:"EXPORT_ADDRESS"`
}

// String не выводит секреты: конфиг пишется в лог при старте.
func (c Config) String() string {
	return fmt.Sprintf(
		"{RunAddress:%s MigrationsDir:%s PaymentResource:%s DeploymentFile:%s ExportAddress:%s}",
		c.RunAddress, c.MigrationsDir, c.PaymentResource, c.DeploymentFile, c.ExportAddress,
	)
}

// LoadConfig собирает конфиг из переменных окружения и флагов командной строки args. Переменные
// окружения приоритетнее флагов. Если в рабочей директории есть .env, он загружается в окружение
// без перезаписи уже заданных переменных.
func LoadConfig(args []string) (*Config, error) {
	if loadErr := godotenv.Load(); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", loadErr.Error())
	}

	var envConfig Config
	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	flagsConfig, flagsErr := loadFlags(args)
	if flagsErr != nil {
		return nil, flagsErr
	}

	conf := mergeConfig(&envConfig, flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.BadgeSecret == "" {
		return nil, errors.New("badge secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(args []string) (*Config, error) {
	var flagConfig Config

	fs := flag.NewFlagSet("gumball", flag.ContinueOnError)
	fs.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", defaultMigrationsDir, "Database migrations directory")
	fs.StringVar(&flagConfig.BadgeSecret, "s", "", "Secret key for badge proofs")
	fs.StringVar(&flagConfig.PaymentResource, "p", defaultPaymentResource, "Payment resource address")
	fs.StringVar(&flagConfig.DeploymentFile, "f", "", "Deployment profile YAML file")
	fs.StringVar(&flagConfig.ExportAddress, "r", "", "Accounting system address for journal export")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return &flagConfig, nil
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:      defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:     defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:   defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		BadgeSecret:     defaultIfBlank(envConfig.BadgeSecret, flagsConfig.BadgeSecret),
		PaymentResource: defaultIfBlank(envConfig.PaymentResource, flagsConfig.PaymentResource),
		DeploymentFile:  defaultIfBlank(envConfig.DeploymentFile, flagsConfig.DeploymentFile),
		ExportAddress:   defaultIfBlank(envConfig.ExportAddress, flagsConfig.ExportAddress),
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
