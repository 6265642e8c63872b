package attendance

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffsync/internal/platform/keymutex"
)

type Store struct {
	DB    *pgxpool.Pool
	locks *keymutex.KeyMutex
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db, locks: keymutex.New()}
}

// Create inserts the day record; the date is the unique key.
func (s *Store) Create(ctx context.Context, rec *Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (day, present, absent)
    VALUES ($1,$2,$3)
    RETURNING id::text
  `, rec.Date, emptySetIfNil(rec.Present), emptySetIfNil(rec.Absent)).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicateDay
		}
		return "", err
	}
	return id, nil
}

func (s *Store) GetByDate(ctx context.Context, date string) (*Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    SELECT id::text, day, present, absent, created_at, updated_at
    FROM attendance
    WHERE day = $1
  `, date).Scan(&rec.ID, &rec.Date, &rec.Present, &rec.Absent, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id::text, day, present, absent, created_at, updated_at
    FROM attendance
    ORDER BY day
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Present, &rec.Absent, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Mark runs the per-date state machine: missing day records are created with
// the user in the matching set, existing ones are mutated. The whole
// read-modify-write is serialized per date.
func (s *Store) Mark(ctx context.Context, date, userID, action string) (*Record, error) {
	if action != ActionPresent && action != ActionAbsent {
		return nil, ErrInvalidAction
	}

	s.locks.Lock(date)
	defer s.locks.Unlock(date)

	rec, err := s.GetByDate(ctx, date)
	if errors.Is(err, ErrNotFound) {
		rec = &Record{Date: date}
		if err := rec.Apply(userID, action); err != nil {
			return nil, err
		}
		id, err := s.Create(ctx, rec)
		if err != nil {
			return nil, err
		}
		rec.ID = id
		return rec, nil
	}
	if err != nil {
		return nil, err
	}

	if err := rec.Apply(userID, action); err != nil {
		return nil, err
	}
	if _, err := s.DB.Exec(ctx, `
    UPDATE attendance SET present = $1, absent = $2, updated_at = now() WHERE day = $3
  `, emptySetIfNil(rec.Present), emptySetIfNil(rec.Absent), date); err != nil {
		return nil, err
	}
	return rec, nil
}

func emptySetIfNil(set []string) []string {
	if set == nil {
		return []string{}
	}
	return set
}
