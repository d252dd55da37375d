package models

// Identity is the authenticated user's profile as returned by the backend
// on login. It is client-held and not authoritative.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// AuthenticatedUser is the login response payload: the identity together
// with the opaque bearer token that authorizes subsequent requests.
type AuthenticatedUser struct {
	Identity
	Token string `json:"token"`
}
