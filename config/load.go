package config

import (
	"errors"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Default returns the configurations used when no file overrides them.
func Default() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Driver:   "sqlite",
			File:     "atoz.db",
			LogLevel: "silent",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs:  ServerConfigs{Port: "5000"},
			AllowedOrigins: []string{"http://localhost:3000"},
			NodeID:         1,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Expiration: 7 * 24 * time.Hour,
			},
		},
		Realtime: RealtimeConfigs{
			PathPrefix:    "/chat",
			Bus:           "local",
			Topic:         "comment_created",
			SessionBuffer: 64,
			CommentRate:   5,
			CommentBurst:  10,
		},
		Log: LogConfigs{Level: "info"},
	}
}

// Load reads the TOML file at path on top of Default. A missing file is not
// an error. Environment variables override both.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Configs{}, err
		}
	}

	overrideString(&cfg.Env, "ENV")
	overrideString(&cfg.Database.Driver, "DB_DRIVER")
	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideString(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.Database, "DB_DATABASE")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Database.File, "DB_FILE")
	overrideString(&cfg.ApiServer.Port, "API_PORT")
	overrideString(&cfg.Auth.AccessToken.Secret, "TOKEN_SECRET")
	overrideString(&cfg.Realtime.Bus, "REALTIME_BUS")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.Kafka.Addr, "KAFKA_ADDR")
	overrideString(&cfg.Log.Level, "LOG_LEVEL")

	if cfg.Auth.AccessToken.Secret == "" {
		return Configs{}, errors.New("auth.access_token.secret is required")
	}

	return cfg, nil
}

func overrideString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}
