package config

type StorageBackend string

const (
	StorageFile   StorageBackend = "file"
	StorageRedis  StorageBackend = "redis"
	StorageMemory StorageBackend = "memory"
)

type StorageConfig interface {
	GetStorageBackend() StorageBackend
	GetDataFolder() string
	GetSessionPassphrase() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisKeyPrefix() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetStorageBackend() StorageBackend {
	switch b := StorageBackend(GetEnv("HRM_STORAGE", string(StorageFile))); b {
	case StorageFile, StorageRedis, StorageMemory:
		return b
	default:
		return StorageFile
	}
}

func (Storage) GetDataFolder() string {
	return GetEnv("FOLDER", "./data")
}

// GetSessionPassphrase seals the persisted session file when set
func (Storage) GetSessionPassphrase() string {
	return GetEnv("HRM_SESSION_PASSPHRASE", "")
}

func (Storage) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "127.0.0.1:6379")
}

func (Storage) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Storage) GetRedisDB() int {
	return GetInt("REDIS_DB", 0)
}

func (Storage) GetRedisKeyPrefix() string {
	return GetEnv("REDIS_KEY_PREFIX", "hrm:")
}
