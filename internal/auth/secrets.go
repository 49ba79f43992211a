package auth

import "os"

// AccessSecret returns the signing key for short-lived access tokens.
// Access and refresh tokens are signed with separate secrets so a leak
// of one cannot forge the other kind.
func AccessSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_access_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// RefreshSecret returns the signing key for long-lived refresh tokens.
func RefreshSecret() []byte {
	secret := os.Getenv("REFRESH_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: REFRESH_SECRET environment variable is required in production mode")
		}
		secret = "default_refresh_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}
