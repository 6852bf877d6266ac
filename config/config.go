package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs  `toml:"database"`
	ApiServer APIServerConfigs `toml:"api_server"`
	Auth      AuthConfigs      `toml:"auth"`
	Realtime  RealtimeConfigs  `toml:"realtime"`
	Redis     RedisConfigs     `toml:"redis"`
	Kafka     KafkaConfigs     `toml:"kafka"`
	Log       LogConfigs       `toml:"log"`
}

type DatabaseConfigs struct {
	// Driver is either "mysql" or "sqlite".
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`

	// File is the sqlite database file, ":memory:" is allowed.
	File string `toml:"file"`

	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	if d.Driver == "sqlite" {
		return fmt.Sprintf("file:%s?_foreign_keys=on", d.File)
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	ServerConfigs

	AllowedOrigins []string `toml:"allowed_origins"`
	// NodeID identifies this process when generating snowflake ids.
	NodeID int64 `toml:"node_id"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Secret     string        `toml:"secret"`
	Expiration time.Duration `toml:"expiration"`
}

type RealtimeConfigs struct {
	// PathPrefix is the reserved path of websocket connections. Requests under
	// this prefix may carry their access token in the query string.
	PathPrefix string `toml:"path_prefix"`

	// Bus selects how comments are fanned out between processes: "local",
	// "redis" or "kafka".
	Bus   string `toml:"bus"`
	Topic string `toml:"topic"`

	SessionBuffer int     `toml:"session_buffer"`
	CommentRate   float64 `toml:"comment_rate"`
	CommentBurst  int     `toml:"comment_burst"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr    string `toml:"addr"`
	GroupID string `toml:"group_id"`
}

type LogConfigs struct {
	Level string `toml:"level"`
}
