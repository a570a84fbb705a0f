package config

import (
	"sync"
)

var (
	jwtSecretMu sync.RWMutex
	// jwtSecretOverride replaces JWT_SECRET while set; see SetJWTSecret.
	jwtSecretOverride []byte
	jwtSecretSet      bool
)

// SetJWTSecret temporarily changes the JWT secret and returns a function to restore it
// This is primarily used for testing
func SetJWTSecret(secret []byte) func() {
	jwtSecretMu.Lock()
	previous, previousSet := jwtSecretOverride, jwtSecretSet
	jwtSecretOverride, jwtSecretSet = secret, true
	jwtSecretMu.Unlock()

	return func() {
		jwtSecretMu.Lock()
		jwtSecretOverride, jwtSecretSet = previous, previousSet
		jwtSecretMu.Unlock()
	}
}

// GetJWTSecret returns the secret that signs the bearer tokens accepted by the
// HTTP surface. JWT_SECRET is read on every call so a value loaded from .env
// after start-up is seen.
func GetJWTSecret() []byte {
	jwtSecretMu.RLock()
	defer jwtSecretMu.RUnlock()
	if jwtSecretSet {
		return jwtSecretOverride
	}
	return []byte(GetEnvOrDefault("JWT_SECRET", ""))
}

// AuthEnabled reports whether bearer tokens are required.
// An empty secret disables bearer authentication.
func AuthEnabled() bool {
	return len(GetJWTSecret()) > 0
}
