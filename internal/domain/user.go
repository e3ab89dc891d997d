package domain

import "time"

// Role values stored on User
const (
	RoleAdmin = "admin" // Full access, including the user listing
	RoleUser  = "user"  // Default role for registered accounts
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// User Model
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                                   // Primary key
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`             // Unique email
	Password  string     `gorm:"not null" json:"-"`                                      // Hashed password
	Role      string     `gorm:"size:16;not null;default:user" json:"role"`              // Role: user or admin
	Favorites []Favorite `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-many relationship with Favorite
	CreatedAt time.Time  `json:"createdAt"`                                              // Creation time
	UpdatedAt time.Time  `json:"updatedAt"`                                              // Last update time
}

// IsAdmin reports whether the user holds the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
