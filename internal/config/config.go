// Package config loads service configuration from an optional config file
// and PARKFEE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the parkfee service.
type Config struct {
	ListenAddr string
	Database   Database
	Optimizer  Optimizer
}

// Database holds Postgres connection parameters. An empty Host disables
// persistence; runs are then kept in memory only.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Optimizer holds the run defaults applied when a request omits a setting.
type Optimizer struct {
	PopulationSize  int
	Generations     int
	TargetOccupancy float64
}

// DSN renders the lib/pq connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load reads the configuration at configPath (optional; "" skips the file)
// with environment variable overrides, e.g. PARKFEE_DATABASE_HOST.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listenaddr", ":8080")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "parkfee")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "parkfee")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("optimizer.populationsize", 50)
	v.SetDefault("optimizer.generations", 100)
	v.SetDefault("optimizer.targetoccupancy", 0.85)

	v.SetEnvPrefix("PARKFEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration at %s: %w", configPath, err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &conf, nil
}
