package models

// UserRole represents the available roles for route gating.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleUser    UserRole = "user"
)

// Valid reports whether the role is one of the three known roles.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleUser
}

// HomePath returns the default view for a role, used when a gated route
// bounces a caller to somewhere they are allowed.
func (r UserRole) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleManager:
		return "/manager"
	default:
		return "/properties"
	}
}

// DemoAccount is one entry of the fixed credential allow-list that forms the
// entire authentication backend.
type DemoAccount struct {
	Email    string
	Password string
	Role     UserRole
}

// Session is the persisted role-bearing identity. The secret is never stored.
type Session struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}
