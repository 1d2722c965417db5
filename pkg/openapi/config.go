package openapi

// Config describes the document metadata.
type Config struct {
	Title       string `toml:"title" env:"TITLE"`
	Description string `toml:"description" env:"DESCRIPTION"`
	Version     string `toml:"version" env:"VERSION"`
}

// Finalize applies defaults to the document metadata.
func (c *Config) Finalize() error {
	if c.Title == "" {
		c.Title = "autoroute"
	}
	if c.Description == "" {
		c.Description = "Routes contributed by declaration and mounted at startup."
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
}
