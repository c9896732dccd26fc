package configs

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config carries everything the process reads from the environment.
type Config struct {
	Port         string `envconfig:"PORT" default:"5000"`
	MongoURI     string `envconfig:"MONGODB_URI" required:"true"`
	DatabaseName string `envconfig:"MONGODB_DATABASE" default:"ecommerce"`
	FrontendURL  string `envconfig:"FRONTEND_URL"`
	AppEnv       string `envconfig:"APP_ENV" default:"development"`
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
}

// Load reads .env when present, then populates Config from the environment.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment config")
	}
	return &cfg, nil
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
