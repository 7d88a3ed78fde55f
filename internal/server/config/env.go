package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is an intermediate DTO for environment parsing. Pointer fields
// distinguish "unset" from zero values so the overlay never clobbers
// defaults with empty strings. The token lifetime is accepted as an integer
// number of minutes, matching how operators have always configured it.
type envConfig struct {
	EndpointAddrHTTP       *string `env:"APP_ADDR"`
	DatabaseDSN            *string `env:"DATABASE_DSN"`
	SecretKey              *string `env:"APP_SECRET_KEY"`
	TokenExpirationMinutes *int    `env:"TOKEN_EXPIRATION_TIME"`
	SuperuserPassword      *string `env:"SUPERUSER_PASSWORD"`
	TestBearerEnabled      *bool   `env:"TEST_BEARER_ENABLED"`
	S3RootUser             *string `env:"S3_ROOT_USER"`
	S3RootPassword         *string `env:"S3_ROOT_PASSWORD"`
	S3Bucket               *string `env:"S3_BUCKET"`
	S3Region               *string `env:"S3_REGION"`
	S3BaseEndpoint         *string `env:"S3_BASE_ENDPOINT"`
}

// parseEnv overlays environment variables onto the given Config.
func parseEnv(config *Config) error {
	c := &envConfig{}
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.TokenExpirationMinutes != nil {
		config.TokenValidityDuration = time.Duration(*c.TokenExpirationMinutes) * time.Minute
	}
	if c.SuperuserPassword != nil {
		config.SuperuserPassword = *c.SuperuserPassword
	}
	if c.TestBearerEnabled != nil {
		config.TestBearerEnabled = *c.TestBearerEnabled
	}
	if c.S3RootUser != nil {
		config.S3RootUser = *c.S3RootUser
	}
	if c.S3RootPassword != nil {
		config.S3RootPassword = *c.S3RootPassword
	}
	if c.S3Bucket != nil {
		config.S3Bucket = *c.S3Bucket
	}
	if c.S3Region != nil {
		config.S3Region = *c.S3Region
	}
	if c.S3BaseEndpoint != nil {
		config.S3BaseEndpoint = *c.S3BaseEndpoint
	}

	return nil
}
