// Package migrate creates and drops the database schema. Statements run in
// order inside one transaction, so a failed migration leaves the schema
// untouched.
package migrate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var upStatements = []string{
	`CREATE TABLE IF NOT EXISTS github_owner (
		github_login TEXT PRIMARY KEY,
		github_id    BIGINT NOT NULL UNIQUE,
		type         TEXT NOT NULL CHECK (type IN ('User', 'Organization')),
		name         TEXT,
		html_url     TEXT NOT NULL,
		avatar_url   TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS github_repository (
		github_owner_login TEXT NOT NULL REFERENCES github_owner (github_login),
		github_name        TEXT NOT NULL,
		github_id          BIGINT NOT NULL UNIQUE,
		html_url           TEXT NOT NULL,
		description        TEXT,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (github_owner_login, github_name)
	)`,

	`CREATE TABLE IF NOT EXISTS github_issue (
		github_owner_login     TEXT NOT NULL,
		github_repository_name TEXT NOT NULL,
		github_number          INTEGER NOT NULL CHECK (github_number > 0),
		github_id              BIGINT NOT NULL UNIQUE,
		title                  TEXT NOT NULL,
		html_url               TEXT NOT NULL,
		created_at             TIMESTAMPTZ NOT NULL,
		closed_at              TIMESTAMPTZ,
		open_by_owner_login    TEXT NOT NULL,
		body                   TEXT,
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (github_owner_login, github_repository_name, github_number),
		FOREIGN KEY (github_owner_login, github_repository_name)
			REFERENCES github_repository (github_owner_login, github_name)
	)`,

	// Both user variants share one table; the kind column discriminates and
	// the per-variant checks keep each row's columns consistent.
	`CREATE TABLE IF NOT EXISTS app_user (
		id                 UUID PRIMARY KEY,
		kind               TEXT NOT NULL CHECK (kind IN ('local', 'third_party')),
		role               TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin', 'superadmin')),
		name               TEXT,
		email              TEXT,
		is_email_verified  BOOLEAN,
		hashed_password    TEXT,
		provider           TEXT,
		third_party_id     TEXT,
		emails             TEXT[],
		github_owner_login TEXT REFERENCES github_owner (github_login),
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_local_user CHECK (
			kind <> 'local'
			OR (email IS NOT NULL AND is_email_verified IS NOT NULL AND hashed_password IS NOT NULL
				AND provider IS NULL AND third_party_id IS NULL AND emails IS NULL)
		),
		CONSTRAINT chk_third_party_user CHECK (
			kind <> 'third_party'
			OR (provider IS NOT NULL AND third_party_id IS NOT NULL AND emails IS NOT NULL
				AND email IS NULL AND hashed_password IS NULL)
		),
		CONSTRAINT uq_app_user_third_party UNIQUE (provider, third_party_id),
		CONSTRAINT uq_app_user_third_party_id UNIQUE (third_party_id)
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS uq_app_user_local_email
		ON app_user (LOWER(email)) WHERE kind = 'local'`,

	`CREATE TABLE IF NOT EXISTS company_address (
		id          UUID PRIMARY KEY,
		name        TEXT,
		line_1      TEXT,
		line_2      TEXT,
		city        TEXT,
		state       TEXT,
		postal_code TEXT,
		country     TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS company (
		id                            UUID PRIMARY KEY,
		tax_id                        TEXT,
		name                          TEXT,
		contact_person_user_id        UUID,
		contact_person_third_party_id TEXT,
		address_id                    UUID REFERENCES company_address (id),
		created_at                    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at                    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_one_contact CHECK (
			contact_person_user_id IS NULL OR contact_person_third_party_id IS NULL
		)
	)`,

	`CREATE TABLE IF NOT EXISTS user_company (
		user_id    UUID NOT NULL REFERENCES app_user (id),
		company_id UUID NOT NULL REFERENCES company (id),
		role       TEXT NOT NULL CHECK (role IN ('admin', 'suggest', 'read')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, company_id)
	)`,

	`CREATE TABLE IF NOT EXISTS third_party_user_company (
		third_party_id TEXT NOT NULL REFERENCES app_user (third_party_id),
		company_id     UUID NOT NULL REFERENCES company (id),
		role           TEXT NOT NULL CHECK (role IN ('admin', 'suggest', 'read')),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (third_party_id, company_id)
	)`,

	// The contact person must be a member, enforced by pointing the contact
	// columns at the junction rows. Added after the junctions exist because
	// the tables reference each other.
	`DO $$ BEGIN
		ALTER TABLE company ADD CONSTRAINT fk_company_contact_user
			FOREIGN KEY (contact_person_user_id, id)
			REFERENCES user_company (user_id, company_id);
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,

	`DO $$ BEGIN
		ALTER TABLE company ADD CONSTRAINT fk_company_contact_third_party
			FOREIGN KEY (contact_person_third_party_id, id)
			REFERENCES third_party_user_company (third_party_id, company_id);
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,

	`CREATE TABLE IF NOT EXISTS stripe_customer (
		stripe_id  TEXT PRIMARY KEY,
		user_id    UUID NOT NULL UNIQUE REFERENCES app_user (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS stripe_product (
		stripe_id   TEXT PRIMARY KEY,
		unit        TEXT NOT NULL,
		unit_amount BIGINT NOT NULL CHECK (unit_amount >= 0),
		recurring   BOOLEAN NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS stripe_invoice (
		stripe_id      TEXT PRIMARY KEY,
		customer_id    TEXT NOT NULL REFERENCES stripe_customer (stripe_id),
		paid           BOOLEAN NOT NULL,
		currency       TEXT NOT NULL,
		total_excl_tax BIGINT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS stripe_invoice_line (
		stripe_id   TEXT PRIMARY KEY,
		invoice_id  TEXT NOT NULL REFERENCES stripe_invoice (stripe_id),
		customer_id TEXT NOT NULL REFERENCES stripe_customer (stripe_id),
		product_id  TEXT NOT NULL REFERENCES stripe_product (stripe_id),
		price_id    TEXT,
		quantity    BIGINT NOT NULL CHECK (quantity > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS manual_invoice (
		id         UUID PRIMARY KEY,
		number     INTEGER NOT NULL UNIQUE,
		company_id UUID REFERENCES company (id),
		user_id    UUID REFERENCES app_user (id),
		paid       BOOLEAN NOT NULL DEFAULT FALSE,
		dow_amount BIGINT NOT NULL CHECK (dow_amount > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_company_nor_user CHECK (company_id IS NULL OR user_id IS NULL)
	)`,

	`CREATE TABLE IF NOT EXISTS managed_issue (
		id                     UUID PRIMARY KEY,
		github_owner_login     TEXT NOT NULL,
		github_repository_name TEXT NOT NULL,
		github_number          INTEGER NOT NULL,
		requested_dow_amount   BIGINT NOT NULL CHECK (requested_dow_amount >= 0),
		manager_id             UUID NOT NULL REFERENCES app_user (id),
		contributor_visibility TEXT NOT NULL CHECK (contributor_visibility IN ('public', 'private')),
		state                  TEXT NOT NULL CHECK (state IN ('open', 'rejected', 'solved')),
		created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		FOREIGN KEY (github_owner_login, github_repository_name, github_number)
			REFERENCES github_issue (github_owner_login, github_repository_name, github_number)
	)`,

	// One live managed record per issue; rejected history rows don't count.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_managed_issue_active
		ON managed_issue (github_owner_login, github_repository_name, github_number)
		WHERE state <> 'rejected'`,

	`CREATE TABLE IF NOT EXISTS issue_funding (
		id                     UUID PRIMARY KEY,
		github_owner_login     TEXT NOT NULL,
		github_repository_name TEXT NOT NULL,
		github_number          INTEGER NOT NULL,
		user_id                UUID NOT NULL REFERENCES app_user (id),
		product_id             TEXT NOT NULL REFERENCES stripe_product (stripe_id),
		dow_amount             BIGINT NOT NULL CHECK (dow_amount > 0),
		created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		FOREIGN KEY (github_owner_login, github_repository_name, github_number)
			REFERENCES github_issue (github_owner_login, github_repository_name, github_number)
	)`,

	`CREATE TABLE IF NOT EXISTS company_user_permission_token (
		id            UUID PRIMARY KEY,
		token         TEXT NOT NULL UNIQUE,
		user_name     TEXT,
		user_email    TEXT NOT NULL,
		company_id    UUID NOT NULL REFERENCES company (id),
		role          TEXT NOT NULL CHECK (role IN ('admin', 'suggest', 'read')),
		expires_at    TIMESTAMPTZ NOT NULL,
		has_been_used BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS repository_user_permission_token (
		id                      UUID PRIMARY KEY,
		token                   TEXT NOT NULL UNIQUE,
		user_name               TEXT,
		user_email              TEXT,
		user_github_owner_login TEXT NOT NULL,
		github_owner_login      TEXT NOT NULL,
		github_repository_name  TEXT NOT NULL,
		role                    TEXT NOT NULL CHECK (role IN ('admin', 'read')),
		dow_rate                BIGINT CHECK (dow_rate > 0),
		dow_currency            TEXT,
		expires_at              TIMESTAMPTZ NOT NULL,
		has_been_used           BOOLEAN NOT NULL DEFAULT FALSE,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		FOREIGN KEY (github_owner_login, github_repository_name)
			REFERENCES github_repository (github_owner_login, github_name)
	)`,

	`CREATE TABLE IF NOT EXISTS user_session (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES app_user (id),
		token_hash TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_session_expires_at ON user_session (expires_at)`,
}

var downStatements = []string{
	`DROP TABLE IF EXISTS user_session`,
	`DROP TABLE IF EXISTS repository_user_permission_token`,
	`DROP TABLE IF EXISTS company_user_permission_token`,
	`DROP TABLE IF EXISTS issue_funding`,
	`DROP TABLE IF EXISTS managed_issue`,
	`DROP TABLE IF EXISTS manual_invoice`,
	`DROP TABLE IF EXISTS stripe_invoice_line`,
	`DROP TABLE IF EXISTS stripe_invoice`,
	`DROP TABLE IF EXISTS stripe_product`,
	`DROP TABLE IF EXISTS stripe_customer`,
	`ALTER TABLE IF EXISTS company DROP CONSTRAINT IF EXISTS fk_company_contact_user`,
	`ALTER TABLE IF EXISTS company DROP CONSTRAINT IF EXISTS fk_company_contact_third_party`,
	`DROP TABLE IF EXISTS third_party_user_company`,
	`DROP TABLE IF EXISTS user_company`,
	`DROP TABLE IF EXISTS company`,
	`DROP TABLE IF EXISTS company_address`,
	`DROP TABLE IF EXISTS app_user`,
	`DROP TABLE IF EXISTS github_issue`,
	`DROP TABLE IF EXISTS github_repository`,
	`DROP TABLE IF EXISTS github_owner`,
}

// Up creates the full schema. Statements are idempotent, so running Up on an
// already-migrated database is safe.
func Up(ctx context.Context, pool *pgxpool.Pool) error {
	return run(ctx, pool, upStatements)
}

// Down drops everything, children before parents.
func Down(ctx context.Context, pool *pgxpool.Pool) error {
	return run(ctx, pool, downStatements)
}

func run(ctx context.Context, pool *pgxpool.Pool, statements []string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for i, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
