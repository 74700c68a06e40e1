package utils

func ToStringPtr(s string) *string {
	return &s
}

func ToIntPtr(i int) *int {
	return &i
}

func ToBoolPtr(b bool) *bool {
	return &b
}
