package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"medicine-reminder/internal/domain/medicines"
)

type MedicinesRepo struct {
	db *sql.DB
}

func NewMedicinesRepo(db *sql.DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

const medicineColumns = `
	id, user_id,
	name, dosage, time, duration,
	status,
	created_at, updated_at
`

func (r *MedicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medicines (`+medicineColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		m.Time,
		m.Duration,
		string(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicinesRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []medicines.Medicine{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE user_id = $1
		ORDER BY time ASC, created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *MedicinesRepo) UpdateStatus(ctx context.Context, userID, id string, status medicines.Status, at time.Time) (medicines.Medicine, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE medicines
		SET status = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
		RETURNING `+medicineColumns,
		id,
		userID,
		string(status),
		at,
	)

	m, err := scanMedicine(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medicines.Medicine{}, medicines.ErrNotFound
		}
		return medicines.Medicine{}, err
	}
	return m, nil
}

func (r *MedicinesRepo) UpdateTimeByName(ctx context.Context, userID, name, clock string, at time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medicines
		SET time = $3, updated_at = $4
		WHERE user_id = $1 AND name = $2
	`, userID, name, clock, at)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *MedicinesRepo) ResetStatuses(ctx context.Context, status medicines.Status, at time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medicines
		SET status = $1, updated_at = $2
		WHERE status <> $1
	`, string(status), at)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedicine(s rowScanner) (medicines.Medicine, error) {
	var m medicines.Medicine
	var status string
	if err := s.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Dosage,
		&m.Time,
		&m.Duration,
		&status,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medicines.Medicine{}, err
	}
	m.Status = medicines.Status(status)
	return m, nil
}
