package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PortalConfig apunta al SSO del órgano. Si falta BaseURL o APIKey el
// servicio arranca en modo dev (header X-Debug-User-ID).
type PortalConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Config es la configuración top-level del servicio.
type Config struct {
	// Listen es la dirección HTTP (ej ":8080").
	Listen string `yaml:"listen"`

	// DBDSN habilita el backend Postgres; vacío = repos in-memory.
	DBDSN string `yaml:"db_dsn"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// DemoData siembra el dataset de demostración en los repos in-memory.
	DemoData bool `yaml:"demo_data"`

	Portal PortalConfig `yaml:"portal"`
}

// DefaultConfig devuelve la configuración default en memoria.
func DefaultConfig() *Config {
	return &Config{
		Listen:    ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		DemoData:  true,
	}
}

// Normalize completa valores faltantes para que configs parciales
// (o de versiones viejas) sigan funcionando.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = ":8080"
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = "info"
	}
	if strings.TrimSpace(c.LogFormat) == "" {
		c.LogFormat = "text"
	}
}

// ApplyEnv pisa la config con las env vars del flujo de dev del equipo
// (PORT, DB_DSN). Env gana sobre archivo.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		c.Listen = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		c.DBDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		c.LogFormat = v
	}
}

// Load lee la config YAML del path dado (o CONFIG_PATH si path viene
// vacío). Archivo inexistente no es error: se usan los defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				cfg.ApplyEnv()
				cfg.Normalize()
				return cfg, nil
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	cfg.Normalize()
	return cfg, nil
}
