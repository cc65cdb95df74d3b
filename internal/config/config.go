package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	LogLevel string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Session  SessionConfig
	Upload   UploadConfig
	Storage  StorageConfig
	Seed     SeedConfig
	Cron     CronConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // mysql or sqlite
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Path     string // sqlite file, used when Driver is sqlite
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// SessionConfig holds flash-message session configuration
type SessionConfig struct {
	CookieName string
	Expiration time.Duration
}

// UploadConfig holds annual report upload limits
type UploadConfig struct {
	MaxBytes int64
}

// StorageConfig selects where annual report files live
type StorageConfig struct {
	Driver    string // local or s3
	LocalRoot string
	S3        S3Config
}

// S3Config holds S3-compatible bucket settings
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// SeedConfig holds the bootstrap admin account
type SeedConfig struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// CronConfig holds maintenance job schedules
type CronConfig struct {
	OrphanSweepSpec string
	// OrphanGrace is how old an unrecorded report file must be before it
	// is swept, so uploads in flight are left alone
	OrphanGrace time.Duration
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	upload, err := loadUploadConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	dbCfg, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: dbCfg,
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Session:  loadSessionConfig(),
		Upload:   upload,
		Storage:  storage,
		Seed: SeedConfig{
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@kada.gov.my"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
		Cron: loadCronConfig(),
	}

	if config.IsProd() && config.JWT.Secret == "default_secret" {
		return nil, fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := modePrefix(mode)

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	if driver != "mysql" && driver != "sqlite" {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'sqlite')", driver)
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "kada_system"),
		Path:     getEnv(prefix+"DB_PATH", "kada.db"),
	}, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "120"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := modePrefix(mode)

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadSessionConfig() SessionConfig {
	hours, err := strconv.Atoi(getEnv("SESSION_EXPIRATION_HOURS", "8"))
	if err != nil || hours < 1 {
		hours = 8
	}
	return SessionConfig{
		CookieName: getEnv("SESSION_COOKIE_NAME", "kada_session"),
		Expiration: time.Duration(hours) * time.Hour,
	}
}

func loadCronConfig() CronConfig {
	mins, err := strconv.Atoi(getEnv("ORPHAN_GRACE_MINUTES", "60"))
	if err != nil || mins < 1 {
		mins = 60
	}
	return CronConfig{
		OrphanSweepSpec: getEnv("ORPHAN_SWEEP_SPEC", "@every 1h"),
		OrphanGrace:     time.Duration(mins) * time.Minute,
	}
}

// loadUploadConfig reads the report size bound in megabytes
func loadUploadConfig() (UploadConfig, error) {
	mb, err := strconv.Atoi(getEnv("UPLOAD_MAX_MB", "10"))
	if err != nil || mb < 1 {
		return UploadConfig{}, fmt.Errorf("invalid UPLOAD_MAX_MB: '%s'", os.Getenv("UPLOAD_MAX_MB"))
	}
	return UploadConfig{MaxBytes: int64(mb) * 1024 * 1024}, nil
}

func loadStorageConfig() (StorageConfig, error) {
	driver := strings.ToLower(getEnv("STORAGE_DRIVER", "local"))
	pathStyle, _ := strconv.ParseBool(getEnv("S3_PATH_STYLE", "false"))

	cfg := StorageConfig{
		Driver:    driver,
		LocalRoot: getEnv("STORAGE_LOCAL_ROOT", "public/uploads"),
		S3: S3Config{
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "ap-southeast-1"),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			PathStyle: pathStyle,
		},
	}

	switch driver {
	case "local":
	case "s3":
		if cfg.S3.Bucket == "" {
			return StorageConfig{}, fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER is 's3'")
		}
	default:
		return StorageConfig{}, fmt.Errorf("invalid STORAGE_DRIVER: '%s' (must be 'local' or 's3')", driver)
	}
	return cfg, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://admin.kada.gov.my"
	}
	return origins
}

// BodyLimit is the largest request body the server accepts. It leaves
// room for the multipart envelope around a maximum-size report.
func (c *Config) BodyLimit() int {
	return int(c.Upload.MaxBytes) + 1024*1024
}
