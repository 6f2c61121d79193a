package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	ERP       ERPConfig
	StockTake StockTakeConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT. Con Secret vacío la autenticación queda desactivada.
type JWTConfig struct {
	Secret string
	Issuer string
}

// Enabled indica si las rutas /api exigen Bearer Token.
func (c JWTConfig) Enabled() bool { return c.Secret != "" }

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché de búsquedas por barcode. Addr vacío = sin caché.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ERPConfig cliente REST hacia el gateway del ERP (Logo) para resolver productos.
type ERPConfig struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	RateLimit float64 // peticiones por segundo; 0 = sin límite
}

// StockTakeConfig almacenamiento y políticas del flujo de sayım.
type StockTakeConfig struct {
	LedgerDriver      string // memory | postgres
	CatalogSource     string // memory | postgres | erp
	ProductIDFallback bool   // productId 0 -> 1 (compatibilidad con clientes legacy)
	RecomputeVariance bool   // fark = sayılan - mevcut calculado en servidor
	BarcodeDenylist   bool   // escaneo de subcadenas SQL en la búsqueda por barcode
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, LEDGER_DRIVER, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "apex-sayim"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "apex_sayim"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "apex-sayim"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TTL:      time.Duration(getInt(v, "REDIS_TTL_SECONDS", 300)) * time.Second,
		},
		ERP: ERPConfig{
			BaseURL:   getString(v, "ERP_BASE_URL", ""),
			Token:     getString(v, "ERP_TOKEN", ""),
			Timeout:   time.Duration(getInt(v, "ERP_TIMEOUT_SECONDS", 10)) * time.Second,
			RateLimit: getFloat(v, "ERP_RATE_LIMIT", 0),
		},
		StockTake: StockTakeConfig{
			LedgerDriver:      strings.ToLower(getString(v, "LEDGER_DRIVER", "memory")),
			CatalogSource:     strings.ToLower(getString(v, "CATALOG_SOURCE", "memory")),
			ProductIDFallback: getBool(v, "STOCKTAKE_PRODUCT_ID_FALLBACK", true),
			RecomputeVariance: getBool(v, "STOCKTAKE_RECOMPUTE_VARIANCE", true),
			BarcodeDenylist:   getBool(v, "BARCODE_DENYLIST", true),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StockTake.LedgerDriver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("LEDGER_DRIVER inválido: %q (memory|postgres)", c.StockTake.LedgerDriver)
	}
	switch c.StockTake.CatalogSource {
	case "memory", "postgres":
	case "erp":
		if c.ERP.BaseURL == "" {
			return fmt.Errorf("CATALOG_SOURCE=erp requiere ERP_BASE_URL")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE inválido: %q (memory|postgres|erp)", c.StockTake.CatalogSource)
	}
	return nil
}

// NeedsDatabase indica si algún componente usa PostgreSQL.
func (c *Config) NeedsDatabase() bool {
	return c.StockTake.LedgerDriver == "postgres" || c.StockTake.CatalogSource == "postgres"
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
