package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfiguration marca una configuración inválida del subsistema de auth.
// Es fatal al arranque: nunca se devuelve durante un request.
var ErrConfiguration = errors.New("configuración inválida")

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda "dev".
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Storage struct {
		Driver   string `yaml:"driver"` // postgres | memory
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns int `yaml:"max_open_conns"`
			MaxIdleConns int `yaml:"max_idle_conns"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Auth struct {
		// Secret firma los tokens HS256. Requerido, sin default.
		Secret string `yaml:"secret"`
		// TTL del token como duración Go ("2h", "30m").
		TTL string `yaml:"ttl"`
		// ClaimKey es la claim que lleva el id del empleado autenticado.
		ClaimKey string `yaml:"claim_key"`
		// Header del request donde el cliente reenvía el token.
		Header string `yaml:"header"`
		// ProtectedPrefix y ExcludedPaths definen las reglas del gate:
		// todo path bajo el prefijo exige token, salvo los excluidos.
		ProtectedPrefix string   `yaml:"protected_prefix"`
		ExcludedPaths   []string `yaml:"excluded_paths"`
	} `yaml:"auth"`

	Employee struct {
		// DefaultPassword se asigna (hasheada) a empleados recién creados.
		DefaultPassword string `yaml:"default_password"`
	} `yaml:"employee"`
}

// Load lee el YAML, aplica overrides de entorno, defaults y valida.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// applyEnv permite sobreescribir secretos y endpoints sin tocar el YAML.
func (c *Config) applyEnv() {
	if v := os.Getenv("COMANDAS_AUTH_SECRET"); v != "" {
		c.Auth.Secret = v
	}
	if v := os.Getenv("COMANDAS_STORAGE_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("COMANDAS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("COMANDAS_REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "postgres"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Auth.TTL == "" {
		c.Auth.TTL = "2h"
	}
	if c.Auth.ClaimKey == "" {
		c.Auth.ClaimKey = "empId"
	}
	if c.Auth.Header == "" {
		c.Auth.Header = "token"
	}
	if c.Auth.ProtectedPrefix == "" {
		c.Auth.ProtectedPrefix = "/admin"
	}
	if len(c.Auth.ExcludedPaths) == 0 {
		c.Auth.ExcludedPaths = []string{"/admin/employee/login"}
	}
	if c.Employee.DefaultPassword == "" {
		c.Employee.DefaultPassword = "123456"
	}
}

// Validate aplica las reglas fatales de arranque.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("%w: auth.secret vacío", ErrConfiguration)
	}
	ttl, err := time.ParseDuration(c.Auth.TTL)
	if err != nil {
		return fmt.Errorf("%w: auth.ttl %q: %v", ErrConfiguration, c.Auth.TTL, err)
	}
	if ttl <= 0 {
		return fmt.Errorf("%w: auth.ttl debe ser positivo", ErrConfiguration)
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("%w: storage.driver %q desconocido", ErrConfiguration, c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		return fmt.Errorf("%w: storage.dsn requerido para postgres", ErrConfiguration)
	}
	switch c.Cache.Kind {
	case "memory", "redis":
	default:
		return fmt.Errorf("%w: cache.kind %q desconocido", ErrConfiguration, c.Cache.Kind)
	}
	if _, err := time.ParseDuration(c.Cache.Memory.DefaultTTL); err != nil {
		return fmt.Errorf("%w: cache.memory.default_ttl %q: %v", ErrConfiguration, c.Cache.Memory.DefaultTTL, err)
	}
	return nil
}

// AuthTTL devuelve el TTL ya parseado. Validate garantiza que no falla.
func (c *Config) AuthTTL() time.Duration {
	d, _ := time.ParseDuration(c.Auth.TTL)
	return d
}

// MemoryCacheTTL devuelve el TTL default del cache en memoria.
func (c *Config) MemoryCacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.Memory.DefaultTTL)
	return d
}
