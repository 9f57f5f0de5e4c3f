package config

import "time"

type Config interface {
	EnvConfig
	CacheConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Cache
	Storage
}

func New() Config {
	return mainConfig{}
}
