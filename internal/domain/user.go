package domain

import "time"

const (
	UserRoleMember = "member"
	UserRoleAdmin  = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	Address      *string   `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepository interface {
	FindByID(id int64) (*User, error)
	FindByEmail(email string) (*User, error)
	Create(user *User) error
	UpdateProfile(id int64, fullName string, phone, address *string) error
	UpdatePassword(id int64, passwordHash string) error
	FindAll(role string) ([]*User, error)
	Delete(id int64) error
}

type UserService interface {
	Register(fullName, email, password, role string, phone, address *string) (*User, error)
	Authenticate(email, password string) (*User, error)
	GetUserByID(id int64) (*User, error)
	UpdateProfile(id int64, fullName string, phone, address *string) error
	ChangePassword(id int64, newPassword string) error
	ListUsers(role string) ([]*User, error)
	DeleteUser(id int64) error
}
