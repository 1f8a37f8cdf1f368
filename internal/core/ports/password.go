package ports

// PasswordGenerator produces random initial passwords for new accounts from a
// cryptographically adequate source. Output is write-once: the service hashes
// it, hands the plaintext to the notification dispatcher, and discards it.
type PasswordGenerator interface {
	Generate() (string, error)
}
