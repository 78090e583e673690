package entity

// OptionalString is a patch field that tells an absent value apart from an explicit null.
// The zero value leaves the target untouched.
type OptionalString struct {
	Set   bool
	Value *string
}

// SetString returns an OptionalString that stores value.
func SetString(value string) OptionalString {
	return OptionalString{Set: true, Value: &value}
}

// ClearString returns an OptionalString that clears the field.
func ClearString() OptionalString {
	return OptionalString{Set: true}
}
