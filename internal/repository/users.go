package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nexuspos/internal/domain"
)

const userColumns = `
	id,
	telegram_id,
	name,
	role,
	avatar_url,
	username,
	phone,
	created_at
`

func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// UpsertUser inserts or refreshes a user row keyed by telegram id. The role
// is only written on insert; role changes go through an admin flow, not the
// login sync.
func (r *Repository) UpsertUser(ctx context.Context, u domain.User) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, telegram_id, name, role, avatar_url, username, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (telegram_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url,
			username = EXCLUDED.username,
			phone = EXCLUDED.phone
		RETURNING `+userColumns+`
	`, u.ID, u.TelegramID, u.Name, u.Role, u.AvatarURL, u.Username, u.Phone)

	saved, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return saved, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u         domain.User
		avatarURL sql.NullString
		username  sql.NullString
		phone     sql.NullString
	)
	if err := row.Scan(
		&u.ID,
		&u.TelegramID,
		&u.Name,
		&u.Role,
		&avatarURL,
		&username,
		&phone,
		&u.CreatedAt,
	); err != nil {
		return domain.User{}, err
	}
	if avatarURL.Valid {
		value := avatarURL.String
		u.AvatarURL = &value
	}
	if username.Valid {
		value := username.String
		u.Username = &value
	}
	if phone.Valid {
		value := phone.String
		u.Phone = &value
	}
	return u, nil
}
