package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"fims/internal/cache"
	"fims/internal/credential"
	"fims/internal/db"
	"fims/internal/report"
)

// Config holds application level configuration. Values come from an optional
// YAML file named by CONFIG_FILE, then environment variables override them.
//
// YAML example:
//
//	server_port: "8080"
//	db_driver: sqlite
//	sqlite_path: /var/lib/fims
//	cache_enabled: false
//	password_hash: argon2id
//	argon2id:
//	  time: 1
//	  memory_kib: 65536
//	  parallelism: 4
//	  key_len: 32
//	  salt_len: 16
//	report_min_threshold: 100
//	report_max_threshold: 2000
type Config struct {
	ServerPort  string   `yaml:"server_port"`
	SwaggerHost string   `yaml:"swagger_host"`
	CORSOrigins []string `yaml:"cors_allowed_origins"`

	DBDriver   string `yaml:"db_driver"`
	DBDSN      string `yaml:"db_dsn"`
	SQLitePath string `yaml:"sqlite_path"`
	DBDebug    bool   `yaml:"db_debug"`
	ResetDB    bool   `yaml:"reset_db"`

	CacheEnabled bool   `yaml:"cache_enabled"`
	RedisAddr    string `yaml:"redis_addr"`
	RedisDB      int    `yaml:"redis_db"`
	RedisPass    string `yaml:"redis_password"`

	PasswordHash string                    `yaml:"password_hash"`
	BcryptCost   int                       `yaml:"bcrypt_cost"`
	Argon2id     credential.Argon2idParams `yaml:"argon2id"`

	ReportMinThreshold int `yaml:"report_min_threshold"`
	ReportMaxThreshold int `yaml:"report_max_threshold"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	thresholds := report.DefaultThresholds()
	return &Config{
		ServerPort:         "8080",
		CORSOrigins:        []string{"*"},
		DBDriver:           string(db.DriverMySQL),
		DBDSN:              "user:password@tcp(localhost:3306)/fims?charset=utf8mb4&parseTime=True&loc=Local",
		CacheEnabled:       true,
		RedisAddr:          "localhost:6379",
		PasswordHash:       string(credential.SchemeBcrypt),
		BcryptCost:         10,
		Argon2id:           credential.DefaultArgon2idParams(),
		ReportMinThreshold: thresholds.Min,
		ReportMaxThreshold: thresholds.Max,
		LogLevel:           "info",
		LogFormat:          "json",
	}
}

// Load builds Config from the optional CONFIG_FILE and the environment.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config file '%s'", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parse config file '%s'", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.SwaggerHost = getEnv("SWAGGER_HOST", c.SwaggerHost)
	c.CORSOrigins = getEnvList("CORS_ALLOWED_ORIGINS", c.CORSOrigins)

	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBDSN = getEnv("DB_DSN", c.DBDSN)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.DBDebug = getEnvBool("DB_DEBUG", c.DBDebug)
	c.ResetDB = getEnvBool("RESET_DB", c.ResetDB)

	c.CacheEnabled = getEnvBool("CACHE_ENABLED", c.CacheEnabled)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.RedisPass = getEnv("REDIS_PASSWORD", c.RedisPass)

	c.PasswordHash = getEnv("PASSWORD_HASH", c.PasswordHash)
	c.BcryptCost = getEnvInt("BCRYPT_COST", c.BcryptCost)

	c.ReportMinThreshold = getEnvInt("REPORT_MIN_THRESHOLD", c.ReportMinThreshold)
	c.ReportMaxThreshold = getEnvInt("REPORT_MAX_THRESHOLD", c.ReportMaxThreshold)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
}

// Validate checks that the configured values can be used.
func (c *Config) Validate() error {
	if !supportedDriver(db.DriverType(c.DBDriver)) {
		return errors.Errorf("unsupported db_driver '%s'", c.DBDriver)
	}
	switch credential.Scheme(c.PasswordHash) {
	case credential.SchemeBcrypt, credential.SchemeArgon2id:
	default:
		return errors.Errorf("unsupported password_hash '%s'", c.PasswordHash)
	}
	if c.ReportMinThreshold > c.ReportMaxThreshold {
		return errors.Errorf("report_min_threshold %d exceeds report_max_threshold %d",
			c.ReportMinThreshold, c.ReportMaxThreshold)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.Errorf("unsupported log_format '%s'", c.LogFormat)
	}
	return nil
}

// Database returns the connection settings for db.Open.
func (c *Config) Database() db.Config {
	return db.Config{
		Driver:  db.DriverType(c.DBDriver),
		DSN:     c.sqliteAwareDSN(),
		DataDir: c.SQLitePath,
		Debug:   c.DBDebug,
	}
}

// The MySQL default DSN makes no sense for SQLite, where an empty DSN selects
// the file inside SQLitePath.
func (c *Config) sqliteAwareDSN() string {
	if db.DriverType(c.DBDriver) == db.DriverSQLite && c.DBDSN == Default().DBDSN {
		return ""
	}
	return c.DBDSN
}

// Cache returns the Redis settings.
func (c *Config) Cache() cache.Config {
	return cache.Config{
		Enabled:  c.CacheEnabled,
		Addr:     c.RedisAddr,
		Password: c.RedisPass,
		DB:       c.RedisDB,
	}
}

// Credential returns the password hashing settings.
func (c *Config) Credential() credential.Config {
	return credential.Config{
		Scheme:     credential.Scheme(c.PasswordHash),
		BcryptCost: c.BcryptCost,
		Argon2id:   c.Argon2id,
	}
}

// Thresholds returns the stock bounds stamped on new reports.
func (c *Config) Thresholds() report.Thresholds {
	return report.Thresholds{Min: c.ReportMinThreshold, Max: c.ReportMaxThreshold}
}

func supportedDriver(d db.DriverType) bool {
	for _, s := range db.SupportedDrivers {
		if d == s {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
