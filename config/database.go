package config

import (
	"os"
	"os/user"
	"strings"
)

const defaultPostgresPort = 5432

// DBConfig contains PostgreSQL connection configuration.
//
// Variable names and defaults follow libpq so an environment that works for
// psql works unchanged here. An empty Host means the driver's default: the
// first Unix-socket directory that exists, else localhost. A Host starting
// with "/" is a socket directory.
type DBConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"DATABASE"`
	SSLMode  string `env:"SSLMODE"  envDefault:"prefer"` // libpq default; use 'require' or stricter in production
}

// Sanitize fills the libpq fallbacks that cannot be expressed as static defaults.
func (c *DBConfig) Sanitize() {
	c.Host = strings.TrimSpace(c.Host)
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = defaultPostgresPort
	}
	if c.SSLMode = strings.TrimSpace(c.SSLMode); c.SSLMode == "" {
		c.SSLMode = "prefer"
	}
	if c.User = strings.TrimSpace(c.User); c.User == "" {
		c.User = currentUser()
	}
	// libpq connects to a database named after the user when none is given.
	if c.Name = strings.TrimSpace(c.Name); c.Name == "" {
		c.Name = c.User
	}
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
