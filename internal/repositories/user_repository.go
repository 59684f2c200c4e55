package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	intconfig "sparetime/internal/config"
	"sparetime/internal/domain"
	"sparetime/internal/domain/models"
)

// UserRepository stores user accounts, their interest set, and the opaque
// average-video summary cached for the recommendation service.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create inserts a new account and returns its opaque identity.
func (r UserRepository) Create(ctx context.Context, username, passwordHash string) (string, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		return "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// UsernameTaken reports whether a username is already registered.
func (r UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Credentials loads the identity and password hash for a username.
func (r UserRepository) Credentials(ctx context.Context, username string) (string, string, error) {
	var (
		id   int64
		hash string
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT id, password_hash FROM users WHERE username = ?`, username).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return "", "", err
	}
	return strconv.FormatInt(id, 10), hash, nil
}

// PasswordHash loads the stored hash for a user id.
func (r UserRepository) PasswordHash(ctx context.Context, userID string) (string, error) {
	var hash string
	err := r.db().QueryRowContext(ctx, `
		SELECT password_hash FROM users WHERE id = ?`, userID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// UpdatePassword replaces the stored hash.
func (r UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// Profile loads username, interest set, and the cached average-video summary.
func (r UserRepository) Profile(ctx context.Context, userID string) (models.UserProfile, error) {
	var (
		p       models.UserProfile
		avgJSON sql.NullString
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT username, average_video FROM users WHERE id = ?`, userID).Scan(&p.Username, &avgJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return p, err
	}
	p.ID = userID
	if avgJSON.Valid && avgJSON.String != "" {
		p.AverageVideo = json.RawMessage(avgJSON.String)
	}

	p.Interests, err = r.Interests(ctx, userID)
	if err != nil {
		return p, err
	}
	return p, nil
}

// Interests returns the interest set in insertion order.
func (r UserRepository) Interests(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT interest FROM user_interests
		WHERE user_id = ?
		ORDER BY created_at ASC, interest ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interests := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		interests = append(interests, v)
	}
	return interests, rows.Err()
}

// UpdateUsername renames the account.
func (r UserRepository) UpdateUsername(ctx context.Context, userID, username string) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE users SET username = ? WHERE id = ?`, username, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// AddInterest adds one interest if absent; the bool reports whether this call
// inserted it (mirrors the queue's add-if-absent semantics).
func (r UserRepository) AddInterest(ctx context.Context, userID, interest string) (bool, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT IGNORE INTO user_interests (user_id, interest) VALUES (?, ?)`,
		userID, interest,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RemoveInterest removes one interest if present.
func (r UserRepository) RemoveInterest(ctx context.Context, userID, interest string) (bool, error) {
	res, err := r.db().ExecContext(ctx, `
		DELETE FROM user_interests WHERE user_id = ? AND interest = ?`,
		userID, interest,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReplaceInterests swaps the whole interest set inside one transaction (used
// by the wholesale profile update, not by the incremental add/remove path).
func (r UserRepository) ReplaceInterests(ctx context.Context, userID string, interests []string) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_interests WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, interest := range interests {
		if _, err := tx.ExecContext(ctx, `
			INSERT IGNORE INTO user_interests (user_id, interest) VALUES (?, ?)`,
			userID, interest,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
