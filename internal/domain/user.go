package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nexgen/taskbuddy/internal/infrastructure/validate"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type User struct {
	ID        string    `bson:"_id" json:"_id"`
	Fullname  string    `bson:"fullname" json:"fullname"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EnsureIndexes(ctx context.Context) error
}

// NewUser expects the password to be hashed by the caller.
func NewUser(fullname, email, passwordHash string) (*User, error) {
	validateFullname := validate.Field("fullname", validate.Compose(
		validate.Required(),
		validate.MinLength(2),
		validate.MaxLength(64),
	))
	validateEmail := validate.Field("email", validate.Compose(
		validate.Required(),
		validate.Email(),
	))

	if err := validateFullname(fullname); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}

	return &User{
		ID:        uuid.NewString(),
		Fullname:  strings.TrimSpace(fullname),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  passwordHash,
		CreatedAt: time.Now(),
	}, nil
}
