// Package model defines database models
package model

import "time"

// Role determines which workflow operations an account may invoke.
// The set is closed, anything else is rejected at the boundary.
type Role string

const (
	RoleUser   Role = "USER"
	RoleEditor Role = "EDITOR"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole validates a wire value against the closed role set
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleEditor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// SubscriptionActive is the only subscription value that lets a
// non-admin submit videos. Anything else counts as inactive.
const SubscriptionActive = "ACTIVE"

type User struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Email       string `gorm:"unique;not null" json:"email"`
	DisplayName string `json:"display_name"`
	// Empty for accounts created through an identity provider
	PasswordHash string `json:"-"`
	Role         Role   `gorm:"default:USER" json:"role"`
	Subscription string `json:"subscription"`
	Verified     bool   `gorm:"default:false" json:"-"`

	ContractAccepted   bool       `json:"contract_accepted"`
	ContractAcceptedAt *time.Time `json:"contract_accepted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Videos []Video `gorm:"foreignKey:UserID" json:"-"`
}

// CanUpload reports whether the account may submit new videos.
// Admins bypass the subscription check
func (u *User) CanUpload() bool {
	return u.Role == RoleAdmin || u.Subscription == SubscriptionActive
}
