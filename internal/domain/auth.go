package domain

// Role is the platform role carried in access tokens.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSupport     Role = "support"
	RoleCoordinator Role = "coordinator"
	RoleCandidate   Role = "candidato"
)

// Principal represents the authenticated caller of the gateway.
type Principal struct {
	UserID   string
	Username string
	Role     Role
	// Token is the raw bearer token, forwarded to the backend.
	Token string
}
