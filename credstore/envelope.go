package credstore

// Slot keys. These are the wire-level names a backend sees; values are UTF-8
// text (JSON for the user record, "true"/"false" for flags, opaque strings
// for tokens).
const (
	KeyUser         = "user"
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyBiometric    = "biometricEnabled"
	KeyRememberMe   = "rememberMe"
)

// Envelope is the persisted session record treated as one value at the store
// boundary. UserJSON is the serialized user record; the store never parses it.
type Envelope struct {
	UserJSON         []byte
	Token            string
	RefreshToken     string
	BiometricEnabled bool
	RememberMe       bool
}

// Complete reports whether the envelope holds a restorable credential pair.
func (e Envelope) Complete() bool {
	return len(e.UserJSON) > 0 && e.Token != ""
}

func boolValue(s string) bool {
	return s == "true"
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
