package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Log      LogConfig
	Files    FilesConfig
	Clinics  ClinicsConfig
	OCR      OCRConfig
	Pipeline PipelineConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FilesConfig holds the report file locations. Incoming files are
// registered from IncomingDir and relocated to ProcessedDir after a
// successful processing pass.
type FilesConfig struct {
	IncomingDir  string `mapstructure:"incoming_dir"`
	ProcessedDir string `mapstructure:"processed_dir"`
}

// ClinicsConfig holds clinic seeding settings. DefaultPayPercentage is
// the organization-wide fraction used for the overall rollup row and for
// clinics seeded without an explicit percentage.
type ClinicsConfig struct {
	ConfigPath           string  `mapstructure:"config_path"`
	DefaultPayPercentage float64 `mapstructure:"default_pay_percentage"`
}

// OCRConfig holds Tesseract settings.
type OCRConfig struct {
	Languages   []string `mapstructure:"languages"`
	TessdataDir string   `mapstructure:"tessdata_dir"`
}

// PipelineConfig holds batch processing settings.
type PipelineConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// Load reads configuration from environment variables with the DENTRACK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DENTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "dentrack")
	v.SetDefault("db.password", "dentrack_secret")
	v.SetDefault("db.name", "dentrack_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// File location defaults
	v.SetDefault("files.incoming_dir", "data/incoming")
	v.SetDefault("files.processed_dir", "data/processed")

	// Clinic defaults
	v.SetDefault("clinics.config_path", "data/clinics.json")
	v.SetDefault("clinics.default_pay_percentage", 0.35)

	// OCR defaults
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("ocr.tessdata_dir", "")

	// Pipeline defaults
	v.SetDefault("pipeline.concurrency", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "DENTRACK_SERVER_PORT",
		"server.read_timeout":            "DENTRACK_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "DENTRACK_SERVER_WRITE_TIMEOUT",
		"server.environment":             "DENTRACK_SERVER_ENVIRONMENT",
		"db.host":                        "DENTRACK_DB_HOST",
		"db.port":                        "DENTRACK_DB_PORT",
		"db.user":                        "DENTRACK_DB_USER",
		"db.password":                    "DENTRACK_DB_PASSWORD",
		"db.name":                        "DENTRACK_DB_NAME",
		"db.sslmode":                     "DENTRACK_DB_SSLMODE",
		"db.max_open":                    "DENTRACK_DB_MAX_OPEN",
		"db.max_idle":                    "DENTRACK_DB_MAX_IDLE",
		"log.level":                      "DENTRACK_LOG_LEVEL",
		"log.format":                     "DENTRACK_LOG_FORMAT",
		"files.incoming_dir":             "DENTRACK_FILES_INCOMING_DIR",
		"files.processed_dir":            "DENTRACK_FILES_PROCESSED_DIR",
		"clinics.config_path":            "DENTRACK_CLINICS_CONFIG_PATH",
		"clinics.default_pay_percentage": "DENTRACK_CLINICS_DEFAULT_PAY_PERCENTAGE",
		"ocr.languages":                  "DENTRACK_OCR_LANGUAGES",
		"ocr.tessdata_dir":               "DENTRACK_OCR_TESSDATA_DIR",
		"pipeline.concurrency":           "DENTRACK_PIPELINE_CONCURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DENTRACK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DENTRACK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Files = FilesConfig{
		IncomingDir:  v.GetString("files.incoming_dir"),
		ProcessedDir: v.GetString("files.processed_dir"),
	}
	cfg.Clinics = ClinicsConfig{
		ConfigPath:           v.GetString("clinics.config_path"),
		DefaultPayPercentage: v.GetFloat64("clinics.default_pay_percentage"),
	}

	// Parse OCR languages from comma-separated string
	var langs []string
	for _, l := range strings.Split(v.GetString("ocr.languages"), ",") {
		l = strings.TrimSpace(l)
		if l != "" {
			langs = append(langs, l)
		}
	}
	cfg.OCR = OCRConfig{
		Languages:   langs,
		TessdataDir: v.GetString("ocr.tessdata_dir"),
	}

	cfg.Pipeline = PipelineConfig{
		Concurrency: v.GetInt("pipeline.concurrency"),
	}
	if cfg.Pipeline.Concurrency < 1 {
		cfg.Pipeline.Concurrency = 1
	}

	return cfg, nil
}

// ClinicEntry is one record from the clinics seed file. PayPercentage is
// optional; seeding falls back to the organization default. Pattern
// overrides, when present, replace the default aggregate-amount rules for
// that clinic.
type ClinicEntry struct {
	Name                string   `json:"name"`
	PayPercentage       *float64 `json:"pay_percentage"`
	ProductionPatterns  []string `json:"production_patterns"`
	CollectionsPatterns []string `json:"collections_patterns"`
}

// LoadClinicEntries reads the clinics seed file. A missing file is not an
// error; a malformed one is, so startup fails loudly instead of running
// with a corrupt clinic directory.
func LoadClinicEntries(path string) ([]ClinicEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading clinics config %s: %w", path, err)
	}

	var entries []ClinicEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing clinics config %s: %w", path, err)
	}
	for i := range entries {
		if strings.TrimSpace(entries[i].Name) == "" {
			return nil, fmt.Errorf("clinics config %s: entry %d is missing a name", path, i)
		}
	}
	return entries, nil
}
