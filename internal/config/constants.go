package config

const (
	// DefaultDatabasePath is the default sqlite catalog file
	DefaultDatabasePath = "./literalura.db"

	// DefaultEnvFile is loaded by Load when no other file is named
	DefaultEnvFile = ".env"

	DefaultGutendexURL = "https://gutendex.com/books/"
	DefaultUserAgent   = "Literalura/2.0 (+https://github.com/mrlokans/literalura)"
)
