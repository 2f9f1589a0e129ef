package logging

// Config holds logging-related configuration
type Config struct {
	File       string // Path to log file
	MaxSize    int    // Max size in MB
	MaxBackups int    // Number of backups to keep
	MaxAge     int    // Max age in days
}

// DefaultConfig returns the logging configuration used when nothing is set
func DefaultConfig(file string) *Config {
	if file == "" {
		file = "./logs/api.log"
	}
	return &Config{
		File:       file,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}
}
