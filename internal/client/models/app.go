package models

// App is the single per-installation identity record.
type App struct {
	// Salt is the PBKDF2 salt, generated once at registration.
	Salt []byte

	// InitVector is the CBC IV reused for every encryption in a session.
	InitVector []byte

	// ID is the base64 ciphertext of the random obfuscated id.
	ID string

	// Password is the base64 ciphertext of the raw password.
	Password string
}
