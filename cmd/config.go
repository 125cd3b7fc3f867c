package cmd

// Config carries the process-level settings. Database settings are optional:
// with no DBHost the service runs on the in-memory store.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// StartTime is the virtual clock epoch in RFC 3339. Empty means the
	// wall clock at startup.
	StartTime string

	// SimSeed seeds the simulation's random source. Zero picks a random
	// seed at startup.
	SimSeed uint64
}
