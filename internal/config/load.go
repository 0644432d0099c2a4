package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultEnvironment = "vtexcommercestable"
	defaultPageSize    = 12
	defaultExportQuery = ""
)

// Load reads the process environment, after merging an optional .env file,
// plus the optional storefront YAML file.
func Load() (*Config, error) {
	if err := godotenv.Load(stringWithDefault("ENV_FILE", ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	vtexCfg, err := loadVtex()
	if err != nil {
		return nil, err
	}
	serverCfg, err := loadServer()
	if err != nil {
		return nil, err
	}
	redisDB, err := intWithDefault("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	dbPort, err := intWithDefault("DB_PORT", 0)
	if err != nil {
		return nil, err
	}
	pretty, err := boolWithDefault("LOG_PRETTY", false)
	if err != nil {
		return nil, err
	}
	storefront, err := LoadStorefront(stringWithDefault("STOREFRONT_CONFIG", ""))
	if err != nil {
		return nil, err
	}

	return &Config{
		Vtex:   vtexCfg,
		Server: serverCfg,
		Redis: RedisConfig{
			Addr:     stringWithDefault("REDIS_ADDR", ""),
			Password: stringWithDefault("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Database: DatabaseConfig{
			Driver:   stringWithDefault("DB_DRIVER", "mysql"),
			Host:     stringWithDefault("DB_HOST", ""),
			Port:     dbPort,
			Username: stringWithDefault("DB_USER", ""),
			Password: stringWithDefault("DB_PASSWORD", ""),
			Database: stringWithDefault("DB_NAME", ""),
			SSLMode:  stringWithDefault("DB_SSLMODE", "disable"),
		},
		TelegramBot: TelegramBotConfig{
			ChatId: stringWithDefault("TELEGRAM_CHAT_ID", ""),
			Token:  stringWithDefault("TELEGRAM_TOKEN", ""),
		},
		Log: LogConfig{
			Level:  stringWithDefault("LOG_LEVEL", "info"),
			Pretty: pretty,
		},
		Storefront: storefront,
	}, nil
}

// LoadForExport is Load plus the database settings the export job needs.
func LoadForExport() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if cfg.Database.Host == "" || cfg.Database.Username == "" || cfg.Database.Database == "" {
		return nil, fmt.Errorf("missing requried env var: DB_HOST, DB_USER and DB_NAME")
	}
	return cfg, nil
}

func loadVtex() (VtexConfig, error) {
	account, err := requriedString("VTEX_ACCOUNT")
	if err != nil {
		return VtexConfig{}, err
	}
	environment := stringWithDefault("VTEX_ENVIRONMENT", defaultEnvironment)
	baseURL := stringWithDefault("VTEX_BASE_URL", fmt.Sprintf("https://%s.%s.com.br", account, environment))
	salesChannel, err := intWithDefault("VTEX_SALES_CHANNEL", 1)
	if err != nil {
		return VtexConfig{}, err
	}
	timeout, err := durationWithDefault("VTEX_TIMEOUT", 10*time.Second)
	if err != nil {
		return VtexConfig{}, err
	}
	cacheTTL, err := durationWithDefault("VTEX_CACHE_TTL", time.Minute)
	if err != nil {
		return VtexConfig{}, err
	}
	return VtexConfig{
		Account:      account,
		Environment:  environment,
		BaseUrl:      strings.TrimRight(baseURL, "/"),
		PublicUrl:    strings.TrimRight(stringWithDefault("STOREFRONT_URL", baseURL), "/"),
		AppKey:       stringWithDefault("VTEX_APP_KEY", ""),
		AppToken:     stringWithDefault("VTEX_APP_TOKEN", ""),
		SalesChannel: salesChannel,
		Locale:       stringWithDefault("VTEX_LOCALE", "pt-BR"),
		Currency:     stringWithDefault("VTEX_CURRENCY", "BRL"),
		Timeout:      timeout,
		CacheTTL:     cacheTTL,
	}, nil
}

func loadServer() (ServerConfig, error) {
	readTimeout, err := durationWithDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return ServerConfig{}, err
	}
	writeTimeout, err := durationWithDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return ServerConfig{}, err
	}
	return ServerConfig{
		Addr:           stringWithDefault("SERVER_ADDR", ":8080"),
		AllowedOrigins: listWithDefault("SERVER_ALLOWED_ORIGINS", []string{"*"}),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
	}, nil
}

// LoadStorefront parses the storefront YAML at path. An empty path returns
// the defaults.
func LoadStorefront(path string) (StorefrontConfig, error) {
	cfg := StorefrontConfig{
		PageSize:      defaultPageSize,
		ExportQuery:   defaultExportQuery,
		ExportWorkers: 4,
	}
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read storefront config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse storefront config: %w", err)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.ExportWorkers <= 0 {
		cfg.ExportWorkers = 4
	}
	return cfg, nil
}
