package constant

const (
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "jwt"

	AuthScheme = "Bearer"

	// ResetTokenByteLength is the entropy of a password-reset token before encoding.
	ResetTokenByteLength = 32
)
