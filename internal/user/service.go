package user

import (
	"errors"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength = 254
	minEmailLength = 3
	bcryptCost     = 12
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Service interface {
	Register(email, password string) (*User, error)
	Authenticate(email, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return nil, ErrInvalidEmail
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	if _, err := s.repo.getUserByEmail(email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.createUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Authenticate(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.getUserByEmail(email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}
