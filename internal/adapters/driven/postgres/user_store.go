package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// UserStore implements driven.UserStore using PostgreSQL
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `
	id, email, name, avatar_url, google_id, github_id,
	additional_emails, preferred_provider,
	gh_username, gh_email,
	gh_access_token_hash, gh_access_token_iv,
	gh_refresh_token_hash, gh_refresh_token_iv,
	gh_connected, gh_connected_at,
	created_at, updated_at, last_login_at
`

// Save creates or updates a user. Connection columns are managed
// through SaveConnection/ClearConnection and left untouched here.
func (s *UserStore) Save(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, avatar_url, google_id, github_id,
			additional_emails, preferred_provider, created_at, updated_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url,
			google_id = EXCLUDED.google_id,
			github_id = EXCLUDED.github_id,
			additional_emails = EXCLUDED.additional_emails,
			preferred_provider = EXCLUDED.preferred_provider,
			updated_at = EXCLUDED.updated_at,
			last_login_at = EXCLUDED.last_login_at
	`

	additional := user.AdditionalEmails
	if additional == nil {
		additional = []string{}
	}

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.AvatarURL,
		user.GoogleID,
		user.GitHubID,
		pq.Array(additional),
		string(user.PreferredProvider),
		user.CreatedAt,
		user.UpdatedAt,
		NullTime(user.LastLoginAt),
	)
	return err
}

// Get retrieves a user by ID
func (s *UserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.queryOne(ctx, query, id)
}

// GetByEmail retrieves a user by primary email
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.queryOne(ctx, query, email)
}

// GetByAnyEmail retrieves a user whose primary or additional emails
// include the given address
func (s *UserStore) GetByAnyEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR $1 = ANY(additional_emails)`
	return s.queryOne(ctx, query, email)
}

// GetByProviderID retrieves a user by identity provider account id
func (s *UserStore) GetByProviderID(ctx context.Context, provider domain.Provider, providerID string) (*domain.User, error) {
	var column string
	switch provider {
	case domain.ProviderGoogle:
		column = "google_id"
	case domain.ProviderGitHub:
		column = "github_id"
	default:
		return nil, domain.ErrInvalidInput
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1 AND ` + column + ` <> ''`
	return s.queryOne(ctx, query, providerID)
}

// Delete deletes a user
func (s *UserStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// UpdateLastLogin updates the last login timestamp
func (s *UserStore) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login_at = $1, updated_at = $1 WHERE id = $2`
	result, err := s.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// SaveConnection writes the GitHub connection in a single UPDATE so a
// concurrent reader never sees a partial token pair.
func (s *UserStore) SaveConnection(ctx context.Context, userID string, conn *domain.GitHubConnection) error {
	query := `
		UPDATE users SET
			gh_username = $1,
			gh_email = $2,
			gh_access_token_hash = $3,
			gh_access_token_iv = $4,
			gh_refresh_token_hash = $5,
			gh_refresh_token_iv = $6,
			gh_connected = $7,
			gh_connected_at = $8,
			updated_at = $9
		WHERE id = $10
	`

	now := time.Now()
	connectedAt := conn.ConnectedAt
	if connectedAt == nil && conn.Connected {
		connectedAt = &now
	}

	result, err := s.db.ExecContext(ctx, query,
		conn.Username,
		conn.Email,
		conn.AccessTokenHash,
		conn.AccessTokenIV,
		conn.RefreshTokenHash,
		conn.RefreshTokenIV,
		conn.Connected,
		NullTime(connectedAt),
		now,
		userID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// ClearConnection removes all connection fields. Clearing a user who
// was never connected succeeds, so disconnect stays idempotent.
func (s *UserStore) ClearConnection(ctx context.Context, userID string) error {
	query := `
		UPDATE users SET
			gh_username = '',
			gh_email = '',
			gh_access_token_hash = '',
			gh_access_token_iv = '',
			gh_refresh_token_hash = '',
			gh_refresh_token_iv = '',
			gh_connected = FALSE,
			gh_connected_at = NULL,
			updated_at = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, time.Now(), userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (s *UserStore) queryOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var conn domain.GitHubConnection
	var additional pq.StringArray
	var preferred string
	var connectedAt, lastLoginAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.AvatarURL,
		&user.GoogleID,
		&user.GitHubID,
		&additional,
		&preferred,
		&conn.Username,
		&conn.Email,
		&conn.AccessTokenHash,
		&conn.AccessTokenIV,
		&conn.RefreshTokenHash,
		&conn.RefreshTokenIV,
		&conn.Connected,
		&connectedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	user.AdditionalEmails = additional
	user.PreferredProvider = domain.Provider(preferred)
	user.LastLoginAt = TimePtr(lastLoginAt)
	conn.ConnectedAt = TimePtr(connectedAt)

	// Only surface a connection when something was ever stored
	if conn.Username != "" || conn.Connected || conn.HasToken() {
		user.GitHub = &conn
	}

	return &user, nil
}
