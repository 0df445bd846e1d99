package builder

import (
	"driveshare/internal/domain/user"
)

// UserBuilder assembles domain users for tests with sane defaults.
type UserBuilder struct {
	email    string
	password string
	role     string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    "renter@example.com",
		password: "hashed_password",
		role:     "renter",
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.role = role
	return b
}

func (b *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(b.email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(b.role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(email, b.password, role), nil
}
