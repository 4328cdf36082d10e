package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultPath = "config/config.yaml"

type AppConf struct {
	Name           string `mapstructure:"name"`
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
	BodyLimitMB    int    `mapstructure:"body_limit_mb"`
}

type MongoConf struct {
	URI            string `mapstructure:"uri"`
	Database       string `mapstructure:"database"`
	ConnectTimeout int    `mapstructure:"connect_timeout_seconds"`
}

// StoreConf selects the record store backend: "mongo" or "memory".
type StoreConf struct {
	Driver string `mapstructure:"driver"`
}

// StorageConf selects where uploaded videos live: "local" or "s3".
type StorageConf struct {
	Driver string `mapstructure:"driver"`
	Dir    string `mapstructure:"dir"`
}

type AWSConf struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Endpoint string `mapstructure:"endpoint"`
}

type S3Conf struct {
	Prefix string `mapstructure:"prefix"`
}

type TemplatesConf struct {
	Path string `mapstructure:"path"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	Store     StoreConf     `mapstructure:"store"`
	Storage   StorageConf   `mapstructure:"storage"`
	AWS       AWSConf       `mapstructure:"aws"`
	S3        S3Conf        `mapstructure:"s3"`
	Templates TemplatesConf `mapstructure:"templates"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	ConnectTimeout  time.Duration
	BodyLimit       int
}

func (c *Config) Development() bool { return c.App.Env == "development" }

func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.App.Port) }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "EmoGo Backend")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8000)
	v.SetDefault("app.shutdown_seconds", 15)
	v.SetDefault("app.body_limit_mb", 512)
	v.SetDefault("mongodb.uri", "")
	v.SetDefault("mongodb.database", "emogo")
	v.SetDefault("mongodb.connect_timeout_seconds", 10)
	v.SetDefault("store.driver", "mongo")
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.dir", "uploads")
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.bucket", "")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("templates.path", "")
	v.SetDefault("log.level", "info")
}

// Load reads .env, then the YAML file at path, then the environment.
// An empty path falls back to DefaultPath, which may be absent.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// MONGO_URI is what existing deployments export.
	if err := v.BindEnv("mongodb.uri", "MONGODB_URI", "MONGO_URI"); err != nil {
		return nil, err
	}

	required := path != ""
	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if required || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.ShutdownSecond <= 0 {
		cfg.App.ShutdownSecond = 15
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	if cfg.Mongo.ConnectTimeout <= 0 {
		cfg.Mongo.ConnectTimeout = 10
	}
	cfg.ConnectTimeout = time.Duration(cfg.Mongo.ConnectTimeout) * time.Second
	if cfg.App.BodyLimitMB <= 0 {
		cfg.App.BodyLimitMB = 512
	}
	cfg.BodyLimit = cfg.App.BodyLimitMB * 1024 * 1024

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Port <= 0 {
		return errors.New("app.port missing or invalid")
	}
	switch c.Store.Driver {
	case "mongo":
		if c.Mongo.URI == "" {
			return errors.New("mongodb.uri missing (set MONGO_URI)")
		}
		if c.Mongo.Database == "" {
			return errors.New("mongodb.database missing")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid store.driver %q (use mongo or memory)", c.Store.Driver)
	}
	switch c.Storage.Driver {
	case "local":
		if c.Storage.Dir == "" {
			return errors.New("storage.dir missing")
		}
	case "s3":
		if c.AWS.Bucket == "" {
			return errors.New("aws.bucket required for s3 storage")
		}
	default:
		return fmt.Errorf("invalid storage.driver %q (use local or s3)", c.Storage.Driver)
	}
	return nil
}
