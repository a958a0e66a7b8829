package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	"github.com/him-Tech/web2-backend-sub000/internal/domain"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

const (
	insertLocalUserSQL = `
		INSERT INTO app_user (id, kind, role, name, email, is_email_verified, hashed_password, created_at, updated_at)
		VALUES ($1, 'local', $2, $3, $4, $5, $6, NOW(), NOW())`

	upsertGithubOwnerSQL = `
		INSERT INTO github_owner (github_login, github_id, type, name, html_url, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (github_id) DO UPDATE SET
			github_login = EXCLUDED.github_login,
			type         = EXCLUDED.type,
			name         = EXCLUDED.name,
			html_url     = EXCLUDED.html_url,
			avatar_url   = EXCLUDED.avatar_url,
			updated_at   = NOW()`

	upsertGithubUserSQL = `
		INSERT INTO app_user (id, kind, role, provider, third_party_id, emails, github_owner_login, created_at, updated_at)
		VALUES ($1, 'third_party', $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (provider, third_party_id) DO UPDATE SET
			emails             = EXCLUDED.emails,
			github_owner_login = EXCLUDED.github_owner_login,
			updated_at         = NOW()
		RETURNING id`

	selectUserSQL = `
		SELECT u.id, u.kind, u.role, u.name, u.email, u.is_email_verified, u.hashed_password,
		       u.provider, u.third_party_id, u.emails, u.github_owner_login,
		       o.github_id  AS owner_github_id,
		       o.type       AS owner_type,
		       o.name       AS owner_name,
		       o.html_url   AS owner_html_url,
		       o.avatar_url AS owner_avatar_url
		  FROM app_user u
		  LEFT JOIN github_owner o ON o.github_login = u.github_owner_login`

	getUserByIDSQL          = selectUserSQL + ` WHERE u.id = $1`
	getUserByEmailSQL       = selectUserSQL + ` WHERE u.email = $1 AND u.kind = 'local'`
	findUserByThirdPartySQL = selectUserSQL + ` WHERE u.provider = $1 AND u.third_party_id = $2`
	getAllUsersSQL          = selectUserSQL + ` ORDER BY u.created_at`

	setEmailVerifiedSQL = `UPDATE app_user SET is_email_verified = TRUE, updated_at = NOW() WHERE id = $1`
)

// UserRepositoryImpl persists both user variants in a single app_user table
// with an explicit kind discriminator.
type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

var _ ports.UserRepository = (*UserRepositoryImpl)(nil)

func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryImpl {
	return &UserRepositoryImpl{pool: pool}
}

func (r *UserRepositoryImpl) InsertLocal(ctx context.Context, user *domain.User) error {
	local := user.Local()
	if local == nil {
		return domerrors.NewValidationError("kind", "local user", user.Data)
	}
	err := exec(ctx, r.pool, insertLocalUserSQL,
		user.ID.UUID, string(user.Role), local.Name, local.Email, local.IsEmailVerified, local.HashedPassword)
	if domerrors.IsConstraint(err, domerrors.ConstraintUnique) {
		return domerrors.ErrUserExists
	}
	return err
}

// InsertGithub upserts the owner profile and the user row in one transaction,
// keyed by (provider, third_party_id). A returning user keeps their id; the
// profile columns are refreshed from the latest OAuth payload.
func (r *UserRepositoryImpl) InsertGithub(ctx context.Context, user *domain.User) (*domain.User, error) {
	tp := user.ThirdParty()
	if tp == nil {
		return nil, domerrors.NewValidationError("kind", "third-party user", user.Data)
	}
	if !tp.Provider.Valid() {
		return nil, domerrors.ErrInvalidProvider
	}

	var id = user.ID.UUID
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var ownerLogin *string
		if owner := tp.GithubOwner; owner != nil {
			if err := exec(ctx, tx, upsertGithubOwnerSQL,
				owner.ID.Login, owner.ID.GithubID, string(owner.Type), owner.Name, owner.HTMLURL, owner.AvatarURL); err != nil {
				return err
			}
			ownerLogin = &owner.ID.Login
		}
		// A nil slice encodes as SQL NULL, which the check constraint on
		// third-party rows rejects. An empty array is the valid "no email" form.
		emails := tp.Emails
		if emails == nil {
			emails = []string{}
		}
		row := tx.QueryRow(ctx, upsertGithubUserSQL,
			user.ID.UUID, string(user.Role), string(tp.Provider), tp.ExternalID.String(), emails, ownerLogin)
		if err := row.Scan(&id); err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, domain.NewUserID(id))
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return queryOne(ctx, r.pool, "user", decode.UserFromBackend, getUserByIDSQL, id.UUID)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return queryOne(ctx, r.pool, "user", decode.UserFromBackend, getUserByEmailSQL, email)
}

func (r *UserRepositoryImpl) FindByThirdPartyID(ctx context.Context, provider domain.Provider, id domain.ThirdPartyUserID) (*domain.User, error) {
	return queryOne(ctx, r.pool, "user", decode.UserFromBackend, findUserByThirdPartySQL, string(provider), id.String())
}

func (r *UserRepositoryImpl) SetEmailVerified(ctx context.Context, id domain.UserID) error {
	return exec(ctx, r.pool, setEmailVerifiedSQL, id.UUID)
}

func (r *UserRepositoryImpl) GetAll(ctx context.Context) ([]*domain.User, error) {
	return queryAll(ctx, r.pool, decode.UserFromBackend, getAllUsersSQL)
}
