package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads so host settings don't leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SERVER_HOST", "SERVER_PORT", "PORT", "SERVER_READ_TIMEOUT", "SERVER_REQUEST_TIMEOUT",
		"NOVA_TOKEN", "NOVA_TENANT", "NOVA_BASE_URL", "NOVA_HTTP_TIMEOUT", "NOVA_MAX_CONCURRENT_PAGES",
		"REPORT_ORDER_LINK_BASE", "REPORT_EXPORT_FILENAME", "REPORT_SHEET_NAME", "REPORT_STUDENT_SLOTS",
		"REPORT_MAX_CONCURRENT", "REPORT_MAX_WAIT",
		"TRUSTED_PROXIES", "LOG_LEVEL", "LOG_FORMAT",
	} {
		if v, ok := os.LookupEnv(name); ok {
			os.Unsetenv(name)
			t.Cleanup(func() { os.Setenv(name, v) })
		}
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 3000, ShutdownTimeout: time.Second, RequestTimeout: time.Minute},
		Nova: NovaConfig{
			BaseURL: "https://{{tenant}}.pay.nova.money/api/v1",
			Timeout: time.Second,
		},
		Report: ReportConfig{
			ExportFileName: "relatorio_alunos",
			SheetName:      "Relatório de Alunos",
			StudentSlots:   5,
			MaxConcurrent:  4,
			MaxWait:        time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}
	if cfg.Nova.BaseURL != "https://{{tenant}}.pay.nova.money/api/v1" {
		t.Errorf("Nova.BaseURL = %q", cfg.Nova.BaseURL)
	}
	if cfg.Nova.Timeout != 30*time.Second {
		t.Errorf("Nova.Timeout = %v, want %v", cfg.Nova.Timeout, 30*time.Second)
	}
	if cfg.Nova.MaxConcurrentPages != 8 {
		t.Errorf("Nova.MaxConcurrentPages = %d, want %d", cfg.Nova.MaxConcurrentPages, 8)
	}
	if cfg.Report.StudentSlots != 5 {
		t.Errorf("Report.StudentSlots = %d, want %d", cfg.Report.StudentSlots, 5)
	}
	if cfg.Report.MaxConcurrent != 4 || cfg.Report.MaxWait != 30*time.Second {
		t.Errorf("Report limiter = %d/%v, want 4/30s", cfg.Report.MaxConcurrent, cfg.Report.MaxWait)
	}
	if cfg.Report.SheetName != "Relatório de Alunos" {
		t.Errorf("Report.SheetName = %q", cfg.Report.SheetName)
	}
	if cfg.Nova.Configured() {
		t.Error("Nova.Configured() = true with no token or tenant")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("NOVA_TOKEN", "tok_live")
	t.Setenv("NOVA_TENANT", "acme")
	t.Setenv("NOVA_MAX_CONCURRENT_PAGES", "0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Nova.MaxConcurrentPages != 0 {
		t.Errorf("Nova.MaxConcurrentPages = %d, want 0", cfg.Nova.MaxConcurrentPages)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if !cfg.Nova.Configured() {
		t.Error("Nova.Configured() = false with token and tenant set")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 4000)
	}
}

func TestLoad_InvalidInteger(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORT_STUDENT_SLOTS", "five")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for invalid integer")
	}
	if !strings.Contains(err.Error(), "REPORT_STUDENT_SLOTS") {
		t.Errorf("error should mention REPORT_STUDENT_SLOTS: %v", err)
	}
}

func TestLoad_Duration(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOVA_HTTP_TIMEOUT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Nova.Timeout != 90*time.Second {
		t.Errorf("Nova.Timeout = %v, want %v", cfg.Nova.Timeout, 90*time.Second)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"base url without scheme", func(c *Config) { c.Nova.BaseURL = "{{tenant}}.pay.nova.money" }, "NOVA_BASE_URL"},
		{"zero http timeout", func(c *Config) { c.Nova.Timeout = 0 }, "NOVA_HTTP_TIMEOUT"},
		{"negative page limit", func(c *Config) { c.Nova.MaxConcurrentPages = -1 }, "NOVA_MAX_CONCURRENT_PAGES"},
		{"negative student slots", func(c *Config) { c.Report.StudentSlots = -2 }, "REPORT_STUDENT_SLOTS"},
		{"zero report concurrency", func(c *Config) { c.Report.MaxConcurrent = 0 }, "REPORT_MAX_CONCURRENT"},
		{"zero report wait", func(c *Config) { c.Report.MaxWait = 0 }, "REPORT_MAX_WAIT"},
		{"sheet name too long", func(c *Config) { c.Report.SheetName = strings.Repeat("x", 32) }, "REPORT_SHEET_NAME"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestNovaConfig_Placeholders(t *testing.T) {
	tests := []struct {
		token, tenant string
		want          bool
	}{
		{"", "", false},
		{PlaceholderToken, "acme", false},
		{"tok", PlaceholderTenant, false},
		{"   ", "acme", false},
		{"tok", "acme", true},
	}

	for _, tt := range tests {
		cfg := NovaConfig{Token: tt.token, Tenant: tt.tenant}
		if got := cfg.Configured(); got != tt.want {
			t.Errorf("Configured() with token=%q tenant=%q = %v, want %v", tt.token, tt.tenant, got, tt.want)
		}
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_MasksToken(t *testing.T) {
	cfg := validConfig()
	cfg.Nova.Token = "tok_secret_123"
	cfg.Nova.Tenant = "acme"

	str := cfg.String()
	if strings.Contains(str, "tok_secret_123") {
		t.Error("String() should mask the Nova token")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}
