package config

import (
	"errors"
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
	Storage   StorageConfig
	Bootstrap BootstrapConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// Backends de persistencia soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string

	// Pool de conexiones.
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	// ForceIPv4 marca el dial solo por IPv4 (contenedores sin IPv6).
	ForceIPv4 bool
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché del dashboard. Addr vacío deshabilita el caché.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled indica si hay un Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// StorageConfig almacenamiento de logos de tienda.
type StorageConfig struct {
	UploadDir string
	BaseURL   string
	MaxBytes  int64
}

// BootstrapConfig cuentas y tienda creadas al arrancar si no existen.
type BootstrapConfig struct {
	AdminEmail         string
	AdminPassword      string
	StoreName          string
	StoreAdminEmail    string
	StoreAdminPassword string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR, etc.
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

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "cellstock"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", DriverPostgres)),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "cellstock"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),

			MaxConns:        int32(getInt(v, "DB_MAX_CONNS", 10)),
			MinConns:        int32(getInt(v, "DB_MIN_CONNS", 1)),
			MaxConnLifetime: time.Duration(getInt(v, "DB_MAX_CONN_LIFETIME_MINUTES", 60)) * time.Minute,
			MaxConnIdleTime: time.Duration(getInt(v, "DB_MAX_CONN_IDLE_MINUTES", 30)) * time.Minute,
			ForceIPv4:       getBool(v, "DB_FORCE_IPV4", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 1440),
			Issuer:     getString(v, "JWT_ISSUER", "cellstock"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TTL:      time.Duration(getInt(v, "DASHBOARD_CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		Storage: StorageConfig{
			UploadDir: getString(v, "UPLOAD_DIR", "./uploads"),
			BaseURL:   getString(v, "UPLOAD_BASE_URL", "/uploads"),
			MaxBytes:  int64(getInt(v, "UPLOAD_MAX_BYTES", 5<<20)),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:         getString(v, "BOOTSTRAP_ADMIN_EMAIL", "superadmin@cellstock.com"),
			AdminPassword:      getString(v, "BOOTSTRAP_ADMIN_PASSWORD", "admin123"),
			StoreName:          getString(v, "BOOTSTRAP_STORE_NAME", "Isaac Imports"),
			StoreAdminEmail:    getString(v, "BOOTSTRAP_STORE_ADMIN_EMAIL", "admin@isaacimports.com"),
			StoreAdminPassword: getString(v, "BOOTSTRAP_STORE_ADMIN_PASSWORD", "123456"),
		},
	}
}

// Validate revisa combinaciones inválidas. Fuera de development el secreto JWT es obligatorio.
func (c *Config) Validate() error {
	if c.App.Env != "development" && c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET es obligatorio fuera de development")
	}
	if c.DB.Driver != DriverPostgres && c.DB.Driver != DriverMemory {
		return fmt.Errorf("config: DB_DRIVER desconocido %q", c.DB.Driver)
	}
	if c.DB.MaxConns < 1 || c.DB.MinConns < 0 || c.DB.MinConns > c.DB.MaxConns {
		return fmt.Errorf("config: pool inválido (DB_MIN_CONNS=%d, DB_MAX_CONNS=%d)", c.DB.MinConns, c.DB.MaxConns)
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = "dev-secret-change-me"
	}
	return nil
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
			n, err := strconv.Atoi(v.GetString(key))
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
