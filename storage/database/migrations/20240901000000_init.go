package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			stmts := []string{
				`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

				`CREATE TYPE role AS ENUM ('student', 'member', 'core_member', 'deputy_convener', 'convener')`,
				`CREATE TYPE event_type AS ENUM ('hackathon', 'cp_solo', 'cp_team', 'mentorship', 'team_event', 'solo_event')`,
				`CREATE TYPE event_status AS ENUM ('upcoming', 'live', 'past')`,

				`CREATE TABLE "user" (
					id             uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					email          text NOT NULL UNIQUE,
					name           text,
					image          text,
					role           role NOT NULL DEFAULT 'student',
					college_id     text,
					xp_points      integer NOT NULL DEFAULT 0,
					bio            text,
					github_id      text,
					linkedin_id    text,
					email_verified timestamptz,
					created_at     timestamptz NOT NULL DEFAULT now()
				)`,

				`CREATE TABLE session (
					id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					session_token text NOT NULL UNIQUE,
					user_id       uuid NOT NULL REFERENCES "user" (id) ON DELETE CASCADE,
					expires       timestamptz NOT NULL
				)`,

				`CREATE TABLE account (
					user_id             uuid NOT NULL REFERENCES "user" (id) ON DELETE CASCADE,
					type                text NOT NULL,
					provider            text NOT NULL,
					provider_account_id text NOT NULL,
					refresh_token       text,
					access_token        text,
					expires_at          integer,
					token_type          text,
					scope               text,
					id_token            text,
					session_state       text,
					PRIMARY KEY (provider, provider_account_id)
				)`,

				`CREATE TABLE verification_token (
					identifier text NOT NULL,
					token      text NOT NULL,
					expires    timestamptz NOT NULL,
					PRIMARY KEY (identifier, token)
				)`,

				`CREATE TABLE events (
					id                      uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					slug                    text NOT NULL UNIQUE,
					title                   text NOT NULL,
					type                    event_type NOT NULL,
					status                  event_status NOT NULL DEFAULT 'upcoming',
					poster_url              text,
					description             text,
					rules                   text,
					theme                   text,
					config                  jsonb,
					timeline                jsonb,
					start_date              timestamptz,
					end_date                timestamptz,
					registration_start_date timestamptz,
					registration_end_date   timestamptz,
					created_at              timestamptz NOT NULL DEFAULT now()
				)`,

				`CREATE TABLE teams (
					id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					event_id   uuid NOT NULL REFERENCES events (id) ON DELETE CASCADE,
					name       text NOT NULL,
					join_code  text NOT NULL UNIQUE,
					created_by uuid NOT NULL REFERENCES "user" (id),
					created_at timestamptz NOT NULL DEFAULT now()
				)`,

				`CREATE TABLE registrations (
					id                uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id           uuid NOT NULL REFERENCES "user" (id) ON DELETE CASCADE,
					event_id          uuid NOT NULL REFERENCES events (id) ON DELETE CASCADE,
					team_id           uuid REFERENCES teams (id) ON DELETE SET NULL,
					status            text NOT NULL DEFAULT 'pending',
					custom_answers    jsonb,
					domain_priorities jsonb,
					assigned_domain   text,
					created_at        timestamptz NOT NULL DEFAULT now(),
					UNIQUE (user_id, event_id)
				)`,

				`CREATE TABLE roadmaps (
					id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					event_id   uuid NOT NULL REFERENCES events (id) ON DELETE CASCADE,
					domain     text,
					content    jsonb NOT NULL,
					created_at timestamptz NOT NULL DEFAULT now()
				)`,

				`CREATE TABLE checkpoints (
					id                 uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					registration_id    uuid NOT NULL REFERENCES registrations (id) ON DELETE CASCADE,
					week_number        integer NOT NULL,
					submission_content text NOT NULL,
					mentor_feedback    text,
					is_approved        boolean,
					created_at         timestamptz NOT NULL DEFAULT now()
				)`,

				`CREATE INDEX checkpoints_registration_idx ON checkpoints (registration_id, week_number)`,

				`CREATE TABLE event_awards (
					id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					event_id    uuid NOT NULL REFERENCES events (id) ON DELETE CASCADE,
					team_id     uuid REFERENCES teams (id) ON DELETE SET NULL,
					user_id     uuid REFERENCES "user" (id) ON DELETE SET NULL,
					title       text NOT NULL,
					rank        integer NOT NULL DEFAULT 0,
					description text,
					category    text,
					created_at  timestamptz NOT NULL DEFAULT now()
				)`,

				`CREATE TABLE mentors (
					id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					name        text NOT NULL,
					role        text NOT NULL,
					image       text,
					linkedin_id text,
					github_id   text,
					created_at  timestamptz NOT NULL DEFAULT now()
				)`,

				`CREATE TABLE team_photos (
					id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					url         text NOT NULL,
					description text,
					is_header   boolean NOT NULL DEFAULT false,
					created_at  timestamptz NOT NULL DEFAULT now()
				)`,

				`CREATE TABLE legacy_notes (
					id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id    uuid NOT NULL REFERENCES "user" (id) ON DELETE CASCADE,
					content    text NOT NULL,
					role       text,
					tenure     text,
					created_at timestamptz NOT NULL DEFAULT now()
				)`,

				`CREATE TABLE system_settings (
					key         text PRIMARY KEY,
					value       text NOT NULL,
					description text
				)`,
			}
			for _, stmt := range stmts {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			stmts := []string{
				`DROP TABLE IF EXISTS system_settings`,
				`DROP TABLE IF EXISTS legacy_notes`,
				`DROP TABLE IF EXISTS team_photos`,
				`DROP TABLE IF EXISTS mentors`,
				`DROP TABLE IF EXISTS event_awards`,
				`DROP TABLE IF EXISTS checkpoints`,
				`DROP TABLE IF EXISTS roadmaps`,
				`DROP TABLE IF EXISTS registrations`,
				`DROP TABLE IF EXISTS teams`,
				`DROP TABLE IF EXISTS events`,
				`DROP TABLE IF EXISTS verification_token`,
				`DROP TABLE IF EXISTS account`,
				`DROP TABLE IF EXISTS session`,
				`DROP TABLE IF EXISTS "user"`,
				`DROP TYPE IF EXISTS event_status`,
				`DROP TYPE IF EXISTS event_type`,
				`DROP TYPE IF EXISTS role`,
			}
			for _, stmt := range stmts {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		})
	})
}
