package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims decodes the token's payload without checking its signature.  The
// client never trusts these values; they are for display only (whoami).
// ok == false when the token is not a JWT.
func (s Session) Claims() (jwt.MapClaims, bool) {
	if s.Token == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// Expiry returns the token's exp claim, if it has one.
func (s Session) Expiry() (time.Time, bool) {
	claims, ok := s.Claims()
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
