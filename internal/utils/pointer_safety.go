package utils

func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// EmptyToNil turns a pointer to "" into nil so optional form fields are sent as absent/null
func EmptyToNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
