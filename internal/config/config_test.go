package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_NAME", "ZESTRO_ENV", "PORT", "LOG_LEVEL", "DATABASE_URL", "REDIS_URL",
		"JWT_SECRET", "OTP_TTL_SECONDS", "OTP_TTL", "SHUTDOWN_TIMEOUT_SECONDS", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadServerDefaults(t *testing.T) {
	clearServerEnv(t)

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.AppEnv != "development" || !cfg.IsDev() {
		t.Fatalf("env = %q, IsDev = %v", cfg.AppEnv, cfg.IsDev())
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("address = %q", cfg.Address())
	}
	if cfg.OTPTTL != 5*time.Minute || cfg.ShutdownPeriod != 10*time.Second {
		t.Fatalf("ttls: otp=%v shutdown=%v", cfg.OTPTTL, cfg.ShutdownPeriod)
	}
}

func TestLoadServerRequiresSecretOutsideDev(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("ZESTRO_ENV", "production")

	if _, err := LoadServer(); err == nil {
		t.Fatal("production with default JWT secret did not fail")
	}

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.IsDev() {
		t.Fatal("production reported as dev")
	}
}

func TestLoadServerParsesDurations(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("OTP_TTL_SECONDS", "90")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.OTPTTL != 90*time.Second || cfg.ShutdownPeriod != 30*time.Second {
		t.Fatalf("otp=%v shutdown=%v", cfg.OTPTTL, cfg.ShutdownPeriod)
	}

	t.Setenv("OTP_TTL_SECONDS", "not-a-number")
	if _, err := LoadServer(); err == nil {
		t.Fatal("bad OTP_TTL_SECONDS accepted")
	}
}

func clearClientEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ZESTRO_CONFIG", "ZESTRO_API_URL", "ZESTRO_DATA_DIR", "ZESTRO_LOG_LEVEL", "ZESTRO_TIMEOUT"} {
		t.Setenv(k, "")
	}
}

func TestLoadClientMissingFileYieldsDefaults(t *testing.T) {
	clearClientEnv(t)

	cfg, err := LoadClient(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" || cfg.Timeout != 30*time.Second {
		t.Fatalf("defaults: %+v", cfg)
	}
}

func TestLoadClientFileAndEnvOverrides(t *testing.T) {
	clearClientEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "api_url: https://api.zestro.test/\ntimeout: 10s\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadClient(path)
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.APIURL != "https://api.zestro.test" {
		t.Fatalf("api url = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.Timeout != 10*time.Second || cfg.LogLevel != "debug" {
		t.Fatalf("from file: %+v", cfg)
	}

	// Environment wins over the file.
	t.Setenv("ZESTRO_API_URL", "http://127.0.0.1:9999")
	t.Setenv("ZESTRO_TIMEOUT", "3s")
	cfg, err = LoadClient(path)
	if err != nil {
		t.Fatalf("LoadClient with env: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:9999" || cfg.Timeout != 3*time.Second {
		t.Fatalf("env overrides: %+v", cfg)
	}
}

func TestLoadClientRejectsMalformedFile(t *testing.T) {
	clearClientEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: [broken"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadClient(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}
