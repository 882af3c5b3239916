package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Gauhar-1/Ludo-game/internal/auth"
	"github.com/Gauhar-1/Ludo-game/internal/models"
)

// CreateUser inserts a user row, hashing the password first. Ephemeral guest
// users carry empty credentials and a placeholder name.
func CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("failed to generate user id: %w", err)
		}
		user.ID = id
	}

	hash, err := auth.CreateHash(user.Password, auth.Params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash

	q := `INSERT INTO users (id, email, password, username, is_ephemeral, is_admin)
	      VALUES ($1, $2, $3, $4, $5, $6)`

	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q,
			user.ID, user.Email, user.Password, user.Username,
			user.IsEphemeral, user.IsAdmin,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID fetches a user row by id.
func GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := `SELECT id, email, password, username, is_ephemeral, is_admin FROM users WHERE id = $1`
	var u models.User
	err := DB.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.Password, &u.Username, &u.IsEphemeral, &u.IsAdmin,
	)
	if err != nil {
		return nil, fmt.Errorf("user %s not found: %w", id, err)
	}
	return &u, nil
}

// AuthenticateUser checks email/password credentials and mints a session
// token on success.
func AuthenticateUser(ctx context.Context, email, password string) (string, error) {
	q := `SELECT id, password FROM users WHERE email = $1`
	var id uuid.UUID
	var hash string
	if err := DB.QueryRow(ctx, q, email).Scan(&id, &hash); err != nil {
		return "", fmt.Errorf("lookup user by email: %w", err)
	}

	match, err := auth.ComparePasswordAndHash(password, hash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return "", fmt.Errorf("incorrect password")
	}

	return auth.CreateJWT(id.String())
}
