package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Prefix namespaces every variable, e.g. CATALOG_LOG_LEVEL.
const Prefix = "CATALOG"

// Config holds process settings. JournalFile, when set, receives every catalog
// change as a JSON line.
type Config struct {
	Env           string `envconfig:"ENV"            default:"development"`
	LogLevel      string `envconfig:"LOG_LEVEL"      default:"warn"`
	LogMode       string `envconfig:"LOG_MODE"`
	LogFile       string `envconfig:"LOG_FILE"`
	DefaultFormat string `envconfig:"DEFAULT_FORMAT" default:"json"`
	JournalFile   string `envconfig:"JOURNAL_FILE"`
}

// Load reads the given .env files (missing files are skipped) and then the
// environment. Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "load %s", f)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}
	return &cfg, nil
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoggerMode is LogMode when set, otherwise the mode that matches Env.
func (c *Config) LoggerMode() string {
	if c.LogMode != "" {
		return c.LogMode
	}
	if c.IsProduction() {
		return "production"
	}
	return "development"
}
