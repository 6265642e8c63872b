package leave

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, lv *Leave) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leaves (employee_id, date, leave_type, reason, from_date, to_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id::text
  `, lv.EmployeeID, lv.Date, lv.LeaveType, lv.Reason, lv.FromDate, lv.ToDate, StatusPending).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Leave, error) {
	var lv Leave
	err := s.DB.QueryRow(ctx, `
    SELECT id::text, employee_id::text, date, leave_type, reason, from_date, to_date,
           status, COALESCE(comment, ''), created_at, updated_at
    FROM leaves
    WHERE id = $1
  `, id).Scan(
		&lv.ID, &lv.EmployeeID, &lv.Date, &lv.LeaveType, &lv.Reason, &lv.FromDate, &lv.ToDate,
		&lv.Status, &lv.Comment, &lv.CreatedAt, &lv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lv, nil
}

// List returns every leave with the referenced user's display projection
// resolved in the same query.
func (s *Store) List(ctx context.Context) ([]Leave, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT l.id::text, l.employee_id::text, l.date, l.leave_type, l.reason, l.from_date, l.to_date,
           l.status, COALESCE(l.comment, ''), l.created_at, l.updated_at,
           u.first_name, u.last_name, u.salary, u.todos
    FROM leaves l
    JOIN users u ON l.employee_id = u.id
    ORDER BY l.created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Leave, 0)
	for rows.Next() {
		var lv Leave
		var ref EmployeeRef
		if err := rows.Scan(
			&lv.ID, &lv.EmployeeID, &lv.Date, &lv.LeaveType, &lv.Reason, &lv.FromDate, &lv.ToDate,
			&lv.Status, &lv.Comment, &lv.CreatedAt, &lv.UpdatedAt,
			&ref.FirstName, &ref.LastName, &ref.Salary, &ref.Todos,
		); err != nil {
			return nil, err
		}
		lv.Employee = &ref
		out = append(out, lv)
	}
	return out, rows.Err()
}

// Decide loads the leave, applies the action and persists status/comment.
func (s *Store) Decide(ctx context.Context, id, action, comment string) error {
	lv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	ApplyDecision(lv, action, comment)

	cmd, err := s.DB.Exec(ctx, `
    UPDATE leaves SET status = $1, comment = $2, updated_at = now() WHERE id = $3
  `, lv.Status, lv.Comment, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
