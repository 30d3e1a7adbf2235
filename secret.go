package mailward

// Secret holds a credential that must never leak through logging or
// serialization. Every formatting path prints a placeholder; the wrapped
// value is only readable through an explicit Expose call.
type Secret string

const redacted = "[REDACTED]"

// Expose reveals the wrapped value.
func (s Secret) Expose() string {
	return string(s)
}

func (s Secret) String() string {
	return redacted
}

func (s Secret) GoString() string {
	return redacted
}

// MarshalJSON always writes the placeholder, never the value.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}
