package models

// User roles. Stored as free-text in the users table; these are the values
// the application writes.
const (
	RoleClient     = "client"
	RoleDispatcher = "dispatcher"
	RoleDriver     = "driver"
	RoleAdmin      = "admin"
)

// User represents an account in the system.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// Dispatcher binds a user account to the service area it dispatches for.
type Dispatcher struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
	AreaID int `json:"area_id"`
}

// RegisterRequest is the body for creating a new account. AreaID is only
// meaningful for dispatcher accounts.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=client dispatcher driver admin"`
	AreaID   *int   `json:"area_id,omitempty" validate:"omitempty,gt=0"`
}

// LoginRequest is the body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the signed token and the authenticated user.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}
