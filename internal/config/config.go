// Package config binds the service's runtime configuration from the
// process environment, following the teacher's reflection-based `env:`-tag
// idiom (common.SetConfigFromEnvVars) instead of a config file format.
package config

import (
	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/internal/adapters/identity"
	"github.com/scidatahub/vault/internal/adapters/objectstore"
)

// Config is the top-level configuration struct for the vault server.
type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS"`

	MongoHost     string `env:"MONGO_HOST"`
	MongoPort     string `env:"MONGO_PORT"`
	MongoUsername string `env:"MONGO_USERNAME"`
	MongoPassword string `env:"MONGO_PASSWORD"`
	MongoDatabase string `env:"MONGO_DATABASE"`
	MongoSource   string `env:"MONGO_SOURCE"`

	StorageEndpoint        string `env:"STORAGE_ENDPOINT"`
	StorageRegion          string `env:"STORAGE_REGION"`
	StorageBucket          string `env:"STORAGE_BUCKET"`
	StoragePathStyle       bool   `env:"STORAGE_PATH_STYLE"`
	AWSAccessKeyID         string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey     string `env:"AWS_SECRET_ACCESS_KEY"`

	AuthType         string `env:"AUTH_TYPE"`
	OAuth2UserInfoURL string `env:"OAUTH2_USERINFO_ENDPOINT"`
}

// Load reads Config from the process environment, applying the same
// defaults a local docker-compose deployment would rely on.
func Load() *Config {
	cfg := &Config{}
	_ = common.SetConfigFromEnvVars(cfg)

	cfg.ServerAddress = common.GetenvOrDefault("SERVER_ADDRESS", ":50051")
	cfg.MongoHost = common.GetenvOrDefault("MONGO_HOST", "localhost")
	cfg.MongoPort = common.GetenvOrDefault("MONGO_PORT", "27017")
	cfg.MongoDatabase = common.GetenvOrDefault("MONGO_DATABASE", "vault")
	cfg.StorageRegion = common.GetenvOrDefault("STORAGE_REGION", "us-east-1")
	cfg.AuthType = common.GetenvOrDefault("AUTH_TYPE", string(identity.AuthModeDebug))

	return cfg
}

// MongoConnectionString builds the mongodb:// URI mmongo.MongoConnection
// connects with.
func (c *Config) MongoConnectionString() string {
	source := c.MongoSource
	if source == "" {
		source = "admin"
	}

	if c.MongoUsername == "" {
		return "mongodb://" + c.MongoHost + ":" + c.MongoPort + "/" + c.MongoDatabase
	}

	return "mongodb://" + c.MongoUsername + ":" + c.MongoPassword + "@" + c.MongoHost + ":" + c.MongoPort + "/" + c.MongoDatabase + "?authSource=" + source
}

// ObjectStoreConfig translates Config into the objectstore adapter's Config.
func (c *Config) ObjectStoreConfig() objectstore.Config {
	return objectstore.Config{
		Endpoint:        c.StorageEndpoint,
		Region:          c.StorageRegion,
		Bucket:          c.StorageBucket,
		AccessKeyID:     c.AWSAccessKeyID,
		SecretAccessKey: c.AWSSecretAccessKey,
		PathStyle:       c.StoragePathStyle,
	}
}

// AuthMode translates the AUTH_TYPE env var into an identity.AuthMode.
func (c *Config) AuthMode() identity.AuthMode {
	return identity.AuthMode(c.AuthType)
}
