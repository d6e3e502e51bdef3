package user

import (
	"database/sql"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	createUser(user *User) error
	getUserByEmail(email string) (*User, error)
	getUserByID(id string) (*User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) createUser(user *User) error {
	query := `INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3) RETURNING created_at`
	return r.db.QueryRow(query, user.ID, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
}

func (r *userRepository) getUserByEmail(email string) (*User, error) {
	var user User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	err := r.db.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	var user User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
