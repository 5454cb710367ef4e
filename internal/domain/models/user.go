package models

// Role enumerates the dashboard personas.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleFarmer Role = "farmer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleFarmer
}

// User is the opaque session record handed from the login flow to the dashboards.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	FarmName string `json:"farmName,omitempty"`
}
