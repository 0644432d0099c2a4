package config

import "time"

type Config struct {
	Vtex        VtexConfig
	Server      ServerConfig
	Redis       RedisConfig
	Database    DatabaseConfig
	TelegramBot TelegramBotConfig
	Log         LogConfig
	Storefront  StorefrontConfig
}

type VtexConfig struct {
	Account      string
	Environment  string
	BaseUrl      string
	PublicUrl    string
	AppKey       string
	AppToken     string
	SalesChannel int
	Locale       string
	Currency     string
	Timeout      time.Duration
	CacheTTL     time.Duration
}

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// StorefrontConfig is loaded from the optional YAML file named by
// STOREFRONT_CONFIG.
type StorefrontConfig struct {
	Legacy          bool              `yaml:"legacy"`
	PageSize        int               `yaml:"pageSize"`
	DefaultSort     string            `yaml:"defaultSort"`
	HiddenFacets    []string          `yaml:"hiddenFacets"`
	SortLabels      map[string]string `yaml:"sortLabels"`
	HideUnavailable bool              `yaml:"hideUnavailable"`
	ExportQuery     string            `yaml:"exportQuery"`
	ExportWorkers   int               `yaml:"exportWorkers"`
}
