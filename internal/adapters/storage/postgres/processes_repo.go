package postgres

import (
	"context"
	"database/sql"
	"strings"

	"procurement-timeline/internal/domain/processes"
)

type ProcessesRepo struct {
	db *sql.DB
}

func NewProcessesRepo(db *sql.DB) *ProcessesRepo {
	return &ProcessesRepo{db: db}
}

func (r *ProcessesRepo) Create(ctx context.Context, p processes.Process) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO procurement_processes (
			id, owner_user_id,
			code, object,
			modality, status, department,
			notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID,
		p.OwnerUserID,
		p.Code,
		p.Object,
		string(p.Modality),
		string(p.Status),
		p.Department,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProcessesRepo) GetByID(ctx context.Context, id string) (processes.Process, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return processes.Process{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			code, object,
			modality, status, department,
			notes,
			created_at, updated_at
		FROM procurement_processes
		WHERE id = $1
	`, id)

	var p processes.Process
	var modality, status string
	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Code,
		&p.Object,
		&modality,
		&status,
		&p.Department,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return processes.Process{}, ErrNotFound
		}
		return processes.Process{}, err
	}

	p.Modality = processes.Modality(modality)
	p.Status = processes.Status(status)

	return p, nil
}

func (r *ProcessesRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]processes.Process, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			code, object,
			modality, status, department,
			notes,
			created_at, updated_at
		FROM procurement_processes
		WHERE owner_user_id = $1
		ORDER BY created_at DESC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]processes.Process, 0)
	for rows.Next() {
		var p processes.Process
		var modality, status string

		if err := rows.Scan(
			&p.ID,
			&p.OwnerUserID,
			&p.Code,
			&p.Object,
			&modality,
			&status,
			&p.Department,
			&p.Notes,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}

		p.Modality = processes.Modality(modality)
		p.Status = processes.Status(status)

		out = append(out, p)
	}

	return out, rows.Err()
}
