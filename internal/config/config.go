package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAppName         = "ZestroStub"
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultOTPTTL          = 5 * time.Minute
	defaultRequestTimeout  = 30 * time.Second
	defaultAPIURL          = "http://localhost:8080"
	otpTTLSecondsEnvVar    = "OTP_TTL_SECONDS"
	otpTTLDurEnvVar        = "OTP_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Server captures stub server runtime configuration loaded from environment
// variables. DatabaseURL and RedisURL are optional; when absent the server
// falls back to in-memory backends.
type Server struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	TokenTTL       time.Duration
	OTPTTL         time.Duration
	ShutdownPeriod time.Duration
}

// LoadServer reads stub server configuration from the environment.
func LoadServer() (Server, error) {
	cfg := Server{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         strings.ToLower(getEnv("ZESTRO_ENV", defaultAppEnv)),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      getEnv("JWT_SECRET", "zestro-dev-secret"),
		TokenTTL:       24 * time.Hour,
		OTPTTL:         defaultOTPTTL,
		ShutdownPeriod: defaultShutdownDelay,
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(otpTTLSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid %s: %w", otpTTLSecondsEnvVar, err)
		}
		cfg.OTPTTL = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(otpTTLDurEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid %s: %w", otpTTLDurEnvVar, err)
		}
		cfg.OTPTTL = d
	}

	if !cfg.IsDev() && cfg.JWTSecret == "zestro-dev-secret" {
		return Server{}, fmt.Errorf("JWT_SECRET must be set when ZESTRO_ENV=%s", cfg.AppEnv)
	}

	return cfg, nil
}

// IsDev reports whether the server runs in a development-like environment.
func (c Server) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Server) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// Client holds configuration for the SDK-backed command-line apps, read from
// ~/.zestro/config.yaml with ZESTRO_* environment overrides.
type Client struct {
	APIURL   string
	Timeout  time.Duration
	DataDir  string
	LogLevel string
}

// DefaultDataDir returns the per-user directory holding CLI state.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zestro"
	}
	return filepath.Join(home, ".zestro")
}

// DefaultClientConfigPath returns the CLI config file location, honoring the
// ZESTRO_CONFIG override.
func DefaultClientConfigPath() string {
	if p := os.Getenv("ZESTRO_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// LoadClient reads CLI configuration. A missing config file yields defaults;
// a malformed one is an error.
func LoadClient(path string) (Client, error) {
	cfg := Client{
		APIURL:   defaultAPIURL,
		Timeout:  defaultRequestTimeout,
		DataDir:  DefaultDataDir(),
		LogLevel: defaultLogLevel,
	}

	if path == "" {
		path = DefaultClientConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Client{}, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		// Timeout is a duration string in the file ("30s"), so the file is
		// decoded into a raw form first.
		var raw struct {
			APIURL   string `yaml:"api_url"`
			Timeout  string `yaml:"timeout"`
			DataDir  string `yaml:"data_dir"`
			LogLevel string `yaml:"log_level"`
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Client{}, fmt.Errorf("parse config: %w", err)
		}
		if raw.APIURL != "" {
			cfg.APIURL = raw.APIURL
		}
		if raw.DataDir != "" {
			cfg.DataDir = raw.DataDir
		}
		if raw.LogLevel != "" {
			cfg.LogLevel = strings.ToLower(raw.LogLevel)
		}
		if raw.Timeout != "" {
			d, err := time.ParseDuration(raw.Timeout)
			if err != nil {
				return Client{}, fmt.Errorf("invalid timeout in config: %w", err)
			}
			cfg.Timeout = d
		}
	}

	if v := os.Getenv("ZESTRO_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("ZESTRO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ZESTRO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("ZESTRO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Client{}, fmt.Errorf("invalid ZESTRO_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRequestTimeout
	}
	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
