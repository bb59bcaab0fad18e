package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// Cache backends selectable via config.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendOff   = "off"
)

// Config holds settings loaded from the TOML config file. Zero values defer
// to built-in defaults, and flags override config values.
//
// Example config.toml:
//
//	elements = 5
//	items = ["red", "green", "blue", "white", "black"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[serve]
//	addr = ":8080"
type Config struct {
	Elements int         `toml:"elements"`
	Items    []string    `toml:"items"`
	Cache    CacheConfig `toml:"cache"`
	Serve    ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file (default), redis, mongo, off
	Dir           string `toml:"dir"`     // file backend directory (default ~/.cache/swapstack)
	Prefix        string `toml:"prefix"`  // key prefix when deployments share a backend
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServeConfig configures the serve command.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// LoadConfig reads the TOML config at path. An empty path means the default
// location, and a missing file yields the zero config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := configPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}
