package models

// Role determines which views and commands a session may access.
type Role string

const (
	RoleClient Role = "Client"
	RoleLawyer Role = "Lawyer"
	RoleAdmin  Role = "Admin"

	// RoleUser is an external alias the backend issues for client accounts.
	// Guards treat it as equivalent to RoleClient.
	RoleUser Role = "User"
)
