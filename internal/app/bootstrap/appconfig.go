// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging and request body limits. AppConfig carries what is specific to
// the library service: where the catalog lives and how long store calls
// may take.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Upper bound on pooled connections
	MongoMinPoolSize uint64 // Connections kept warm

	// Per-request deadlines for store calls (see system/timeouts)
	TimeoutShort  time.Duration // single-document reads and deletes
	TimeoutMedium time.Duration // writes and paged lists
	TimeoutBatch  time.Duration // CSV imports

	// Optional YAML file of person types inserted at startup
	PersonTypesSeed string
}
