package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The types reflect how the values are used
// in the application: strings for identifiers, addresses and secrets.
type Config struct {
	Env      string // application environment (e.g. "dev", "prod")
	Port     string // HTTP port to listen on
	DBDriver string // database driver ("mysql" or "sqlite3")
	DBPath   string // sqlite3 database file (sqlite3 driver only)
	DBUser   string // database username (mysql only)
	DBPass   string // database password (optional, mysql only)
	DBHost   string // database host address (mysql only)
	DBPort   string // database port number (mysql only)
	DBName   string // database name (mysql only)
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.  The mysql
// connection variables are only required when the mysql driver is
// selected; sqlite3 needs just a file path.
func Load() Config {
	cfg := Config{
		Env:      must("APP_ENV"),                      // environment (dev/test/prod)
		Port:     must("APP_PORT"),                     // port to bind the HTTP server
		DBDriver: getenvDefault("DB_DRIVER", "mysql"),  // storage driver
		DBPath:   getenvDefault("DB_PATH", "registry.db"), // sqlite3 file
	}
	if cfg.DBDriver == "mysql" {
		cfg.DBUser = must("DB_USER")       // database user
		cfg.DBPass = os.Getenv("DB_PASS")  // database password (empty allowed)
		cfg.DBHost = must("DB_HOST")       // database host
		cfg.DBPort = must("DB_PORT")       // database port
		cfg.DBName = must("DB_NAME")       // database name
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenvDefault returns the variable's value or the given default when
// unset or empty.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
