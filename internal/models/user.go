// Package models contains data structures for the application's domain models.
package models

import "time"

// Role defines the access level of a user account.
type Role string

const (
	// RoleAdmin manages SKPD records, categories, users and compliance reports.
	RoleAdmin Role = "admin"
	// RoleOperator reviews submitted content and issues verification verdicts.
	RoleOperator Role = "operator"
	// RolePublisher submits publication records on behalf of exactly one SKPD.
	RolePublisher Role = "publisher"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RolePublisher:
		return true
	}
	return false
}

// User is an application account. Publishers belong to exactly one SKPD;
// admins and operators have no SKPD.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:60;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	SkpdID    *uint     `gorm:"index" json:"skpd_id,omitempty"`
	Skpd      *Skpd     `gorm:"foreignKey:SkpdID" json:"skpd,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
