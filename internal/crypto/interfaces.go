package crypto

// PasswordHasher turns account passwords into self-describing hashes and
// checks candidates against them. The development backend stores only
// hashes for its seeded accounts.
//
// Encoded hashes have the form:
//
//	argon2id$<time>$<memoryKiB>$<threads>$<base64 salt>$<base64 key>
type PasswordHasher interface {
	// Hash derives a new hash of password with a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. A malformed encoded
	// value never matches.
	Verify(password, encoded string) bool
}
