package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Auth.CodeTTL != 300*time.Second {
		t.Errorf("Expected 300s code TTL, got %v", cfg.Auth.CodeTTL)
	}
	if cfg.Reminder.Schedule != "0 21 * * *" {
		t.Errorf("Unexpected reminder schedule %q", cfg.Reminder.Schedule)
	}
	if cfg.Mail.Enabled() {
		t.Error("Mail should be disabled without MAIL_HOST")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("VERIFY_CODE_TTL", "2m")
	t.Setenv("MAIL_HOST", "smtp.example.com")
	t.Setenv("MAIL_USER", "blog@example.com")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.MaxOpenConns != 7 {
		t.Errorf("Expected 7 open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 5 {
		t.Errorf("Invalid int should keep default 5, got %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Auth.CodeTTL != 2*time.Minute {
		t.Errorf("Expected 2m TTL, got %v", cfg.Auth.CodeTTL)
	}
	if !cfg.Mail.Enabled() {
		t.Error("Mail should be enabled")
	}
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
server:
  port: "7000"
  shutdown_timeout: 5s
database:
  name: blog_test
media:
  image_dir: /srv/images
reminder:
  admin_email: admin@example.com
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "7001" {
		t.Errorf("Env should win over file, got %s", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected 5s shutdown timeout from file, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Database.Name != "blog_test" {
		t.Errorf("Expected db name from file, got %s", cfg.Database.Name)
	}
	if cfg.Media.ImageDir != "/srv/images" {
		t.Errorf("Expected image dir from file, got %s", cfg.Media.ImageDir)
	}
	if cfg.Media.MarkdownDir != "./data/markdown" {
		t.Errorf("Unset file keys should keep defaults, got %s", cfg.Media.MarkdownDir)
	}
	if cfg.Reminder.AdminEmail != "admin@example.com" {
		t.Errorf("Expected admin email from file, got %s", cfg.Reminder.AdminEmail)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yml"))

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: true},
		{name: "missing db name", mutate: func(c *Config) { c.Database.Name = "" }, wantErr: true},
		{name: "zero upload size", mutate: func(c *Config) { c.Media.MaxUploadSize = 0 }, wantErr: true},
		{name: "zero code ttl", mutate: func(c *Config) { c.Auth.CodeTTL = 0 }, wantErr: true},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimit.Burst = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "blog", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=blog sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
