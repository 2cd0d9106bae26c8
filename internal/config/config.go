package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds process settings, loaded from the environment.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"GRPC_ADDR" envDefault:":50051"`

	// StorageBackend selects the stock store: "file" or "mysql".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	StockFile      string `env:"STOCK_FILE" envDefault:"stock_data.json"`
	MySQLDSN       string `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/stockgen?parseTime=true"`

	// CooldownBackend selects the cooldown store: "memory" or "redis".
	CooldownBackend string `env:"COOLDOWN_BACKEND" envDefault:"memory"`
	RedisAddr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	RolesFile string `env:"ROLES_FILE" envDefault:"roles.yaml"`

	FreeCooldown    time.Duration `env:"FREE_COOLDOWN" envDefault:"60m"`
	PremiumCooldown time.Duration `env:"PREMIUM_COOLDOWN" envDefault:"5m"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.StorageBackend {
	case "file", "mysql":
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	switch cfg.CooldownBackend {
	case "memory", "redis":
	default:
		return Config{}, fmt.Errorf("unknown cooldown backend %q", cfg.CooldownBackend)
	}
	return cfg, nil
}

// Roles is the role configuration: which role gates the generator at all,
// and which roles count as premium. Kept in a YAML file since role lists
// are awkward as environment variables.
type Roles struct {
	FreeGenRole  string   `yaml:"free_gen_role"`
	PremiumRoles []string `yaml:"premium_roles"`
}

func LoadRoles(path string) (Roles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roles{}, fmt.Errorf("read roles file: %w", err)
	}
	var roles Roles
	if err := yaml.Unmarshal(data, &roles); err != nil {
		return Roles{}, fmt.Errorf("parse roles file: %w", err)
	}
	if roles.FreeGenRole == "" {
		return Roles{}, fmt.Errorf("roles file %s: free_gen_role is required", path)
	}
	return roles, nil
}
