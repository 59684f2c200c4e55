package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// schemaStatements bootstrap the tables this service owns. Queue and interest
// rows carry a unique key per (user, member) so mutations stay single-statement
// conditional updates (INSERT IGNORE / DELETE) with RowsAffected as the signal.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username VARCHAR(190) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		average_video JSON NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username)
	)`,
	`CREATE TABLE IF NOT EXISTS user_interests (
		user_id VARCHAR(64) NOT NULL,
		interest VARCHAR(190) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, interest)
	)`,
	`CREATE TABLE IF NOT EXISTS rating_queue (
		user_id VARCHAR(64) NOT NULL,
		video_id VARCHAR(64) NOT NULL,
		title VARCHAR(500) NOT NULL DEFAULT '',
		channel_title VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT NULL,
		enqueued_at TIMESTAMP(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		PRIMARY KEY (user_id, video_id)
	)`,
}

// EnsureSchema creates missing tables at startup.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}
