package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"medicine-reminder/internal/domain/profiles"
)

// conditions es TEXT[]; database/sql no sabe escanear arrays, usamos el
// type map de pgx.
var typeMap = pgtype.NewMap()

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Get(ctx context.Context, userID string) (profiles.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profiles.Profile{}, profiles.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, age, conditions, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID)

	var p profiles.Profile
	var conditions []string
	if err := row.Scan(
		&p.UserID,
		&p.Name,
		&p.Age,
		typeMap.SQLScanner(&conditions),
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, err
	}
	p.Conditions = conditions

	return p, nil
}

func (r *ProfilesRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	conditions := p.Conditions
	if conditions == nil {
		conditions = []string{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, name, age, conditions, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE
		SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			conditions = EXCLUDED.conditions,
			updated_at = EXCLUDED.updated_at
	`,
		p.UserID,
		p.Name,
		p.Age,
		conditions,
		p.UpdatedAt,
	)
	return err
}
