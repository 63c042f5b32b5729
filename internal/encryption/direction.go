package encryption

// Direction selects whether Transform encrypts or decrypts.
type Direction byte

const (
	// Encrypt prepends a fresh salt and enciphers the source.
	Encrypt Direction = iota
	// Decrypt consumes the salt and deciphers the remaining source.
	Decrypt
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return "unknown"
	}
}
