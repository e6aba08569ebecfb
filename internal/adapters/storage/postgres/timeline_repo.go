package postgres

import (
	"context"
	"database/sql"
	"strings"

	"procurement-timeline/internal/domain/timeline"
)

type TimelineRepo struct {
	db *sql.DB
}

func NewTimelineRepo(db *sql.DB) *TimelineRepo {
	return &TimelineRepo{db: db}
}

// Los timestamps del timeline se guardan como texto crudo: el parser
// flexible del motor es el único punto de verdad sobre su semántica.
// occurred_ts es una columna derivada (nullable) solo para que el
// ORDER BY de SQL coincida con el orden por recencia del motor;
// timestamps no parseables quedan NULL y ordenan al fondo.
func (r *TimelineRepo) Create(ctx context.Context, e timeline.TimelineEvent) error {
	var occurredTS any
	if t, ok := timeline.ParseWhen(e.OccurredAt); ok {
		occurredTS = t
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO timeline_events (
			id, process_id,
			title, description,
			category, severity,
			occurred_at, occurred_ts,
			author_id, author_name, author_role,
			is_deadline, due_at,
			openable
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		e.ID,
		e.ProcessID,
		e.Title,
		e.Description,
		string(e.Category),
		string(e.Severity),
		e.OccurredAt,
		occurredTS,
		e.Author.ID,
		e.Author.Name,
		e.Author.Role,
		e.Deadline.IsDeadline,
		e.Deadline.DueAt,
		e.Openable,
	)
	return err
}

func (r *TimelineRepo) GetByID(ctx context.Context, id string) (timeline.TimelineEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return timeline.TimelineEvent{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, process_id,
			title, description,
			category, severity,
			occurred_at,
			author_id, author_name, author_role,
			is_deadline, due_at,
			openable
		FROM timeline_events
		WHERE id = $1
	`, id)

	e, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return timeline.TimelineEvent{}, ErrNotFound
		}
		return timeline.TimelineEvent{}, err
	}
	return e, nil
}

func (r *TimelineRepo) ListByProcess(ctx context.Context, processID string) ([]timeline.TimelineEvent, error) {
	processID = strings.TrimSpace(processID)
	if processID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, process_id,
			title, description,
			category, severity,
			occurred_at,
			author_id, author_name, author_role,
			is_deadline, due_at,
			openable
		FROM timeline_events
		WHERE process_id = $1
		ORDER BY occurred_ts DESC NULLS LAST
	`, processID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]timeline.TimelineEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Re-sort en memoria con el comparador del motor: SQL ordena por la
	// columna derivada, pero el orden canónico lo define el parser flexible.
	timeline.SortByRecency(out)
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (timeline.TimelineEvent, error) {
	var e timeline.TimelineEvent
	var category, severity string

	if err := row.Scan(
		&e.ID,
		&e.ProcessID,
		&e.Title,
		&e.Description,
		&category,
		&severity,
		&e.OccurredAt,
		&e.Author.ID,
		&e.Author.Name,
		&e.Author.Role,
		&e.Deadline.IsDeadline,
		&e.Deadline.DueAt,
		&e.Openable,
	); err != nil {
		return timeline.TimelineEvent{}, err
	}

	e.Category = timeline.Category(category)
	e.Severity = timeline.Severity(severity)

	return e, nil
}
