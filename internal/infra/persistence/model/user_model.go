// Package model defines the GORM persistence models. They mirror the database
// schema and stay out of the domain layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel maps the users table. Email uniqueness is enforced by the
// database, which is the backstop behind the duplicate check at registration.
type UserModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Name         string    `gorm:"column:name;type:varchar(255);not null;default:''"`
	Role         string    `gorm:"column:role;type:varchar(32);not null;default:'user'"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}
