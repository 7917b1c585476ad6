package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ats/internal/domain/applicant"

	"github.com/google/uuid"
)

// ApplicantRepository keeps prepared statements on the pool's database/sql
// handle; the applicants table is small and read on every seed and lookup.
type ApplicantRepository struct {
	stmtUpsert     *sql.Stmt
	stmtGetByID    *sql.Stmt
	stmtGetByEmail *sql.Stmt
}

func NewApplicantRepository(ctx context.Context, db *sql.DB) (*ApplicantRepository, error) {
	if db == nil {
		return nil, errors.New("nil sql db")
	}
	r := &ApplicantRepository{}

	var err error
	r.stmtUpsert, err = db.PrepareContext(ctx,
		`INSERT INTO applicants (id, name, email) VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = db.PrepareContext(ctx,
		`SELECT id, name, email, created_at FROM applicants WHERE id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = db.PrepareContext(ctx,
		`SELECT id, name, email, created_at FROM applicants WHERE email = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *ApplicantRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtUpsert)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)

	return firstErr
}

func (r *ApplicantRepository) Upsert(ctx context.Context, a applicant.Applicant) error {
	_, err := r.stmtUpsert.ExecContext(ctx, a.ID, strings.TrimSpace(a.Name), strings.ToLower(strings.TrimSpace(a.Email)))
	return err
}

func (r *ApplicantRepository) GetByID(ctx context.Context, id uuid.UUID) (applicant.Applicant, error) {
	return scanApplicant(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *ApplicantRepository) GetByEmail(ctx context.Context, email string) (applicant.Applicant, error) {
	return scanApplicant(r.stmtGetByEmail.QueryRowContext(ctx, strings.ToLower(strings.TrimSpace(email))))
}

func scanApplicant(row *sql.Row) (applicant.Applicant, error) {
	var a applicant.Applicant
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return applicant.Applicant{}, applicant.ErrNotFound
		}
		return applicant.Applicant{}, err
	}
	return a, nil
}
