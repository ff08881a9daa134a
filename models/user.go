package models

import "time"

// User roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is the identity record backing authentication. The booking core treats
// userID and role as trusted once the auth middleware has resolved them.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	Role      string    `bson:"role" json:"role"`
	TokenHash string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// IsAdmin reports whether the user may perform admin-only operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
