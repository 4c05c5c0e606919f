package auth

import (
	"time"

	"github.com/google/uuid"
)

// Cookie is the server-side session record created on successful login and
// looked up on every subsequent authenticated request via the SESSION_ID
// cookie. Metadata is whatever opaque client context (user agent, device
// label) the login request supplied.
type Cookie struct {
	ID       string    `bson:"_id" json:"id"`
	UserID   string    `bson:"user_id" json:"user_id"`
	Metadata string    `bson:"metadata" json:"metadata"`
	Expires  time.Time `bson:"expires" json:"expires"`
}

// NewSession creates a fresh session record with a random id and an
// expiry ttl from now.
func NewSession(userID, metadata string, ttl time.Duration) Cookie {
	return Cookie{
		ID:       uuid.NewString(),
		UserID:   userID,
		Metadata: metadata,
		Expires:  time.Now().Add(ttl),
	}
}

// Expired reports whether the session has passed its expiry.
func (c Cookie) Expired(now time.Time) bool {
	return now.After(c.Expires)
}
