package config

import "os"

const (
	defaultFallbackOrigin = "https://helix.googlehubs.com"
	defaultPort           = "8080"
)

type Config struct {
	StripeSecretKey string
	DatabaseURL     string
	ServiceRoleKey  string
	FallbackOrigin  string
	Port            string
}

func LoadConfig() *Config {
	cfg := &Config{
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ServiceRoleKey:  os.Getenv("SERVICE_ROLE_KEY"),
		FallbackOrigin:  os.Getenv("FALLBACK_ORIGIN"),
		Port:            os.Getenv("PORT"),
	}

	if cfg.FallbackOrigin == "" {
		cfg.FallbackOrigin = defaultFallbackOrigin
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	return cfg
}

// MissingKeys reports which required environment variables are unset. A
// non-empty result means the deployment is misconfigured and handlers must
// answer with a 500 before reaching any external service.
func (c *Config) MissingKeys() []string {
	var missing []string
	if c.StripeSecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.ServiceRoleKey == "" {
		missing = append(missing, "SERVICE_ROLE_KEY")
	}
	return missing
}
