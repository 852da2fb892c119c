package models

import "time"

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleFarmer   UserRole = "farmer"
	UserRoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCustomer, UserRoleFarmer, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID int64 `db:"id" json:"id"`

	Username     string   `db:"username" json:"username"`
	Email        string   `db:"email" json:"email"`
	PasswordHash string   `db:"password_hash" json:"-"`
	Role         UserRole `db:"role" json:"role"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
