package config

import "time"

type CacheConfig interface {
	GetStaleTime() time.Duration
	GetRolesStaleTime() time.Duration
	GetQueryRetries() int
}

type Cache struct{}

var _ CacheConfig = Cache{}

// GetStaleTime applies to employees, departments and designations
func (Cache) GetStaleTime() time.Duration {
	return GetDuration("HRM_STALE_TIME", 5*time.Minute)
}

func (Cache) GetRolesStaleTime() time.Duration {
	return GetDuration("HRM_ROLES_STALE_TIME", time.Hour) // roles change infrequently
}

func (Cache) GetQueryRetries() int {
	retries := GetInt("HRM_QUERY_RETRIES", 3)
	if retries < 0 {
		return 0
	}
	return retries
}
