// Package config resolves settings and field mappings for the mapper, either
// programmatically or from a YAML/JSON document, and loads the environment
// configuration used by the CLI sinks.
package config

import (
	"errors"
	"os"
)

// DefaultMongoDatabase is used when MONGO_DATABASE is not set.
const DefaultMongoDatabase = "csvmap"

// Config holds all environment configuration for the application
// (populated from the .env file in main.go).
type Config struct {
	LogLevel        string
	LogFile         string
	SQLConnString   string
	MongoConnString string
	MongoDatabase   string
}

// LoadConfig loads application settings from environment variables.
// Connection strings are optional here; RequireSink checks them per sink.
func LoadConfig() *Config {
	cfg := &Config{
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogFile:         os.Getenv("LOG_FILE"),
		SQLConnString:   os.Getenv("SQL_CONNECTION_STRING"),
		MongoConnString: os.Getenv("MONGO_CONNECTION_STRING"),
		MongoDatabase:   os.Getenv("MONGO_DATABASE"),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = DefaultMongoDatabase
	}
	return cfg
}

// RequireSink checks that the connection settings for sink are present.
func (c *Config) RequireSink(sink string) error {
	switch sink {
	case "sql":
		if c.SQLConnString == "" {
			return missing("SQL_CONNECTION_STRING", errors.New("environment variable not set"))
		}
	case "mongo":
		if c.MongoConnString == "" {
			return missing("MONGO_CONNECTION_STRING", errors.New("environment variable not set"))
		}
	}
	return nil
}
