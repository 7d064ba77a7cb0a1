// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"strings"
	"time"
)

// Placeholder values shipped in the sample .env file. They count as unset.
const (
	PlaceholderToken  = "your_token_here"
	PlaceholderTenant = "your_tenant_here"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Nova     NovaConfig
	Report   ReportConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 3000)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"3000"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 0, bounded by RequestTimeout)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 120s).
	// A full report fans out over every upstream page, so it is generous.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"120s"`
}

// NovaConfig holds settings for the Nova payments API.
type NovaConfig struct {
	// Token is the bearer token sent on every upstream request.
	// Not required at startup; requests fail with a configuration error instead.
	Token string `env:"NOVA_TOKEN"`

	// Tenant is substituted for {{tenant}} in BaseURL.
	Tenant string `env:"NOVA_TENANT"`

	// BaseURL is the API root template (default: https://{{tenant}}.pay.nova.money/api/v1)
	BaseURL string `env:"NOVA_BASE_URL" default:"https://{{tenant}}.pay.nova.money/api/v1"`

	// Timeout bounds a single upstream HTTP request (default: 30s)
	Timeout time.Duration `env:"NOVA_HTTP_TIMEOUT" default:"30s"`

	// MaxConcurrentPages caps parallel page requests, 0 means unbounded (default: 8)
	MaxConcurrentPages int `env:"NOVA_MAX_CONCURRENT_PAGES" default:"8"`
}

// ReportConfig holds settings for the rendered report and its export.
type ReportConfig struct {
	// OrderLinkBase is prefixed to an order id to link to its detail page
	OrderLinkBase string `env:"REPORT_ORDER_LINK_BASE" default:"https://tecnoeduc.pay.nova.money/orders/"`

	// ExportFileName is the download name without extension (default: relatorio_alunos)
	ExportFileName string `env:"REPORT_EXPORT_FILENAME" default:"relatorio_alunos"`

	// SheetName is the worksheet name of the XLSX export
	SheetName string `env:"REPORT_SHEET_NAME" default:"Relatório de Alunos"`

	// StudentSlots is how many student column groups are generated (default: 5)
	StudentSlots int `env:"REPORT_STUDENT_SLOTS" default:"5"`

	// MaxConcurrent caps reports built at once (default: 4)
	MaxConcurrent int `env:"REPORT_MAX_CONCURRENT" default:"4"`

	// MaxWait is how long a report waits for a free slot before failing (default: 30s)
	MaxWait time.Duration `env:"REPORT_MAX_WAIT" default:"30s"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// TokenConfigured reports whether a real bearer token is set.
func (c *NovaConfig) TokenConfigured() bool {
	return isSet(c.Token, PlaceholderToken)
}

// TenantConfigured reports whether a real tenant is set.
func (c *NovaConfig) TenantConfigured() bool {
	return isSet(c.Tenant, PlaceholderTenant)
}

// Configured reports whether both credentials are usable.
func (c *NovaConfig) Configured() bool {
	return c.TokenConfigured() && c.TenantConfigured()
}

func isSet(value, placeholder string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != placeholder
}
