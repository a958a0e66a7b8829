package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
)

const (
	insertSessionSQL = `
		INSERT INTO user_session (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	getSessionByTokenHashSQL = `
		SELECT id, user_id, token_hash, expires_at, created_at
		  FROM user_session
		 WHERE token_hash = $1`

	deleteSessionSQL = `
		DELETE FROM user_session WHERE id = $1`

	deleteExpiredSessionsSQL = `
		DELETE FROM user_session WHERE expires_at < NOW()`
)

// SessionRepositoryImpl stores server-side sessions. Only the SHA-256 hash of
// the session token is persisted; the raw token lives in the cookie.
type SessionRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.SessionRepository = (*SessionRepositoryImpl)(nil)

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepositoryImpl {
	return &SessionRepositoryImpl{pool: pool}
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.UserSession) error {
	return exec(ctx, r.pool, insertSessionSQL,
		session.ID.UUID, session.UserID.UUID, session.TokenHash, session.ExpiresAt, session.CreatedAt)
}

func (r *SessionRepositoryImpl) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.UserSession, error) {
	return queryOne(ctx, r.pool, "user_session", decode.UserSessionFromBackend, getSessionByTokenHashSQL, tokenHash)
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, id domain.UserSessionID) error {
	return exec(ctx, r.pool, deleteSessionSQL, id.UUID)
}

func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, deleteExpiredSessionsSQL)
	if err != nil {
		return 0, classify(err)
	}
	return tag.RowsAffected(), nil
}
