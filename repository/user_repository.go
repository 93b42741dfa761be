package repository

import (
	"context"
	"errors"
	"fmt"

	"partyboard/database"
	"partyboard/domain/entities"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// NewUserRepositoryWithTx creates a new user repository bound to a transaction
func NewUserRepositoryWithTx(tx Queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByID retrieves a user by their id
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	query := `
		SELECT id, display_name, avatar_url, push_token, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user entities.User
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.DisplayName, &user.AvatarURL,
		&user.PushToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return &user, nil
}

// GetByIDs retrieves multiple users keyed by id
func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []string) (map[string]*entities.User, error) {
	users := make(map[string]*entities.User, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	query := `
		SELECT id, display_name, avatar_url, push_token, created_at, updated_at
		FROM users
		WHERE id = ANY($1)`

	rows, err := r.q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user entities.User
		err := rows.Scan(
			&user.ID, &user.DisplayName, &user.AvatarURL,
			&user.PushToken, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[user.ID] = &user
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over user rows: %w", err)
	}
	return users, nil
}

// GetGameAccount returns the user's linked account for a game
func (r *UserRepository) GetGameAccount(ctx context.Context, userID string, game entities.Game) (*entities.GameAccount, error) {
	query := `
		SELECT user_id, game, account_ref, linked_at
		FROM game_accounts
		WHERE user_id = $1 AND game = $2`

	var account entities.GameAccount
	err := r.q.QueryRow(ctx, query, userID, game).Scan(
		&account.UserID, &account.Game, &account.AccountRef, &account.LinkedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game account for user %s: %w", userID, err)
	}
	return &account, nil
}

// SetPushToken stores or replaces a user's push address
func (r *UserRepository) SetPushToken(ctx context.Context, userID string, token string) error {
	query := `
		UPDATE users
		SET push_token = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.q.Exec(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("failed to set push token for user %s: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no user found with id %s", userID)
	}
	return nil
}

// ClearPushToken removes a user's push address. Clearing a user that has no
// token is a no-op, not an error: concurrent dispatch passes may both retire
// the same dead address.
func (r *UserRepository) ClearPushToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET push_token = NULL, updated_at = NOW()
		WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear push token for user %s: %w", userID, err)
	}
	return nil
}
