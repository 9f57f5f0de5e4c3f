package utils

// ToStringSlice keeps the string elements of a decoded JSON array (e.g. a "roles" claim)
func ToStringSlice(value any) []string {
	stringSlice := make([]string, 0)
	switch v := value.(type) {
	case []string:
		stringSlice = append(stringSlice, v...)
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				stringSlice = append(stringSlice, s)
			}
		}
	case string:
		if v != "" {
			stringSlice = append(stringSlice, v)
		}
	}
	return stringSlice
}
