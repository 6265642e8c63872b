package user

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

const userColumns = `
    id::text, first_name, last_name, email, phone, emp_id, password_hash, role,
    joining_date, department, designation,
    COALESCE(avatar_url, ''), COALESCE(cover_image_url, ''),
    COALESCE(dob, ''), COALESCE(marital_status, ''), COALESCE(anniversary_date, ''),
    education, experience, address, emergency, salary, todos,
    COALESCE(refresh_token, ''), COALESCE(mfa_secret, ''), mfa_enabled,
    created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.EmpID, &u.PasswordHash, &u.Role,
		&u.JoiningDate, &u.Department, &u.Designation,
		&u.AvatarURL, &u.CoverImageURL,
		&u.DOB, &u.MaritalStatus, &u.AnniversaryDate,
		&u.Education, &u.Experience, &u.Address, &u.Emergency, &u.Salary, &u.Todos,
		&u.RefreshToken, &u.MFASecret, &u.MFAEnabled,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. The salary document is persisted with its
// derived totals already recomputed; duplicate email/phone/empID surfaces
// as ErrDuplicate.
func (s *Store) Create(ctx context.Context, u *User) (string, error) {
	if u.Role == "" {
		u.Role = DefaultRole
	}
	u.Salary.Recompute()

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (first_name, last_name, email, phone, emp_id, password_hash, role,
      joining_date, department, designation, education, experience, address, emergency, salary, todos)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
    RETURNING id::text
  `,
		u.FirstName, u.LastName, u.Email, u.Phone, u.EmpID, u.PasswordHash, u.Role,
		u.JoiningDate, u.Department, u.Designation,
		emptyIfNil(u.Education), emptyExperienceIfNil(u.Experience), u.Address, u.Emergency, u.Salary, emptyTodosIfNil(u.Todos),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicate
		}
		return "", err
	}
	return id, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	return scanUser(s.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(s.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *Store) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE email = $1 OR phone = $2`, email, phone).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) List(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// UpdateProfile merges the patch into the stored document and writes every
// profile column back in one statement.
func (s *Store) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(u)

	_, err = s.DB.Exec(ctx, `
    UPDATE users
    SET first_name = $1, last_name = $2, email = $3, phone = $4, emp_id = $5,
        joining_date = $6, department = $7, designation = $8,
        education = $9, experience = $10, address = $11, emergency = $12,
        dob = $13, marital_status = $14, anniversary_date = $15,
        updated_at = now()
    WHERE id = $16
  `,
		u.FirstName, u.LastName, u.Email, u.Phone, u.EmpID,
		u.JoiningDate, u.Department, u.Designation,
		emptyIfNil(u.Education), emptyExperienceIfNil(u.Experience), u.Address, u.Emergency,
		u.DOB, u.MaritalStatus, u.AnniversaryDate, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

// UpdatePassword overwrites the stored hash; callers hash first.
func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := s.DB.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRefreshToken stores the current refresh token; an empty value clears it.
func (s *Store) SetRefreshToken(ctx context.Context, id, token string) error {
	cmd, err := s.DB.Exec(ctx, `UPDATE users SET refresh_token = $1, updated_at = now() WHERE id = $2`, nullIfEmpty(token), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetAvatarURL(ctx context.Context, id, url string) error {
	cmd, err := s.DB.Exec(ctx, `UPDATE users SET avatar_url = $1, updated_at = now() WHERE id = $2`, url, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetCoverImageURL(ctx context.Context, id, url string) error {
	cmd, err := s.DB.Exec(ctx, `UPDATE users SET cover_image_url = $1, updated_at = now() WHERE id = $2`, url, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSalary merges the provided inputs into the stored salary document,
// recomputes the derived totals and persists the result.
func (s *Store) UpdateSalary(ctx context.Context, id string, patch SalaryPatch) (*Salary, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(&u.Salary)

	if _, err := s.DB.Exec(ctx, `UPDATE users SET salary = $1, updated_at = now() WHERE id = $2`, u.Salary, id); err != nil {
		return nil, err
	}
	return &u.Salary, nil
}

func (s *Store) SetMFASecret(ctx context.Context, id, secret string) error {
	cmd, err := s.DB.Exec(ctx, `UPDATE users SET mfa_secret = $1, mfa_enabled = false, updated_at = now() WHERE id = $2`, secret, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) EnableMFA(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, `UPDATE users SET mfa_enabled = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// JSONB columns are NOT NULL; nil slices must land as [] rather than null.
func emptyIfNil(entries []Education) []Education {
	if entries == nil {
		return []Education{}
	}
	return entries
}

func emptyExperienceIfNil(entries []Experience) []Experience {
	if entries == nil {
		return []Experience{}
	}
	return entries
}

func emptyTodosIfNil(entries []TodoItem) []TodoItem {
	if entries == nil {
		return []TodoItem{}
	}
	return entries
}
