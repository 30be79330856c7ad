package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Upstream  UpstreamConfig
	Printer   PrinterConfig
	Shop      ShopConfig
	Redis     RedisConfig
	Cart      CartConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// JWTConfig holds the secret shared with the shop backend. When Secret is
// empty, tokens are decoded without signature checks and the backend remains
// the only authority.
type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// UpstreamConfig points at the shop backend REST API.
type UpstreamConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ServiceToken string
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Timeout time.Duration
}

// ShopConfig seeds the shop settings row on first start.
type ShopConfig struct {
	Name       string
	Address    string
	Phone      string
	Email      string
	GST        string
	FooterText string
	Currency   string
	PaperSize  string
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	CatalogTTL time.Duration
}

type CartConfig struct {
	IdleTTL         time.Duration
	CleanupInterval time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "shopdesk-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "shopdesk_pos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Karachi")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 15)
	viper.SetDefault("UPSTREAM_SERVICE_TOKEN", "")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_TIMEOUT", "5s")
	viper.SetDefault("SHOP_NAME", "My Shop")
	viper.SetDefault("SHOP_ADDRESS", "")
	viper.SetDefault("SHOP_PHONE", "")
	viper.SetDefault("SHOP_EMAIL", "")
	viper.SetDefault("SHOP_GST", "")
	viper.SetDefault("SHOP_FOOTER_TEXT", "Thank you for your business!")
	viper.SetDefault("SHOP_CURRENCY", "Rs")
	viper.SetDefault("SHOP_PAPER_SIZE", "80mm")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CATALOG_TTL_SECONDS", 60)
	viper.SetDefault("CART_IDLE_TTL_MINUTES", 120)
	viper.SetDefault("CART_CLEANUP_INTERVAL_MINUTES", 5)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Upstream: UpstreamConfig{
			BaseURL:      viper.GetString("UPSTREAM_BASE_URL"),
			Timeout:      time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
			ServiceToken: viper.GetString("UPSTREAM_SERVICE_TOKEN"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Timeout: viper.GetDuration("PRINTER_TIMEOUT"),
		},
		Shop: ShopConfig{
			Name:       viper.GetString("SHOP_NAME"),
			Address:    viper.GetString("SHOP_ADDRESS"),
			Phone:      viper.GetString("SHOP_PHONE"),
			Email:      viper.GetString("SHOP_EMAIL"),
			GST:        viper.GetString("SHOP_GST"),
			FooterText: viper.GetString("SHOP_FOOTER_TEXT"),
			Currency:   viper.GetString("SHOP_CURRENCY"),
			PaperSize:  viper.GetString("SHOP_PAPER_SIZE"),
		},
		Redis: RedisConfig{
			Addr:       viper.GetString("REDIS_ADDR"),
			Password:   viper.GetString("REDIS_PASSWORD"),
			DB:         viper.GetInt("REDIS_DB"),
			CatalogTTL: time.Duration(viper.GetInt("REDIS_CATALOG_TTL_SECONDS")) * time.Second,
		},
		Cart: CartConfig{
			IdleTTL:         time.Duration(viper.GetInt("CART_IDLE_TTL_MINUTES")) * time.Minute,
			CleanupInterval: time.Duration(viper.GetInt("CART_CLEANUP_INTERVAL_MINUTES")) * time.Minute,
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
