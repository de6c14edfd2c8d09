package auth

import "github.com/gin-gonic/gin"

// Caller describes who is making a request. Guests have an empty ID and
// CanWrite=false; every mutating entry point consults CanWrite instead of
// re-deriving authentication state.
type Caller struct {
	ID          string
	DisplayName string
	CanWrite    bool
}

// Guest is the caller used when no valid token is presented.
var Guest = Caller{}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CallerFrom builds the Caller for the current request. Write capability
// follows directly from having an authenticated identity; display name is
// filled in by handlers that need it.
func CallerFrom(c *gin.Context) Caller {
	id := GetUserID(c)
	if id == "" {
		return Guest
	}
	return Caller{
		ID:       id,
		CanWrite: true,
	}
}
