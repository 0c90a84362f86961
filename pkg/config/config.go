package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Backends de taxonomía soportados.
const (
	BackendAzure    = "azure"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una vez al arrancar y no se modifica después.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Gemini   GeminiConfig
	Prompts  PromptsConfig
	Taxonomy TaxonomyConfig
	DB       DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// GeminiConfig proveedor de generación de texto.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// KeyConfigured indica si hay API key.
func (c GeminiConfig) KeyConfigured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// PromptsConfig ubicación del JSON de plantillas.
type PromptsConfig struct {
	File string
}

// TaxonomyConfig almacén de la taxonomía de segmentos GPC.
type TaxonomyConfig struct {
	Backend          string // azure, postgres, memory
	ConnectionString string // AZURE_STORAGE_CONNECTION_STRING
	Table            string
	LabelField       string
	SeedCSV          string // solo backend memory: CSV a cargar al arrancar
}

// DBConfig configuración de PostgreSQL (backend postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: GOOGLE_API_KEY, AZURE_STORAGE_CONNECTION_STRING, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de Viper ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "categorizador-gpc"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8000),
		},
		Gemini: GeminiConfig{
			APIKey: getString(v, "GOOGLE_API_KEY", ""),
			Model:  getString(v, "GEMINI_MODEL", "gemini-2.5-flash-preview-04-17"),
		},
		Prompts: PromptsConfig{
			File: getString(v, "PROMPTS_FILE", "data/prompts.json"),
		},
		Taxonomy: TaxonomyConfig{
			Backend:          strings.ToLower(getString(v, "TAXONOMY_BACKEND", BackendAzure)),
			ConnectionString: getString(v, "AZURE_STORAGE_CONNECTION_STRING", ""),
			Table:            getString(v, "TAXONOMY_TABLE", "GPCsegments"),
			LabelField:       getString(v, "TAXONOMY_LABEL_FIELD", "Segmento"),
			SeedCSV:          getString(v, "TAXONOMY_SEED_CSV", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "categorizador_gpc"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}

	switch cfg.Taxonomy.Backend {
	case BackendAzure, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("TAXONOMY_BACKEND inválido: %q (azure, postgres, memory)", cfg.Taxonomy.Backend)
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("HTTP_PORT inválido: %d", cfg.HTTP.Port)
	}
	return cfg, nil
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
