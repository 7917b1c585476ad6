package seeder

import (
	"context"
	"fmt"

	"ats/internal/database"

	"github.com/google/uuid"
)

type JobRolesSeeder struct{}

func (JobRolesSeeder) Name() string { return "job_roles" }

func (JobRolesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_roles", "id", "title", "description", "location", "experience_required", "is_technical", "department"); err != nil {
		return err
	}

	// Fixed ids keep reseeding idempotent.
	items := []struct {
		ID          string
		Title       string
		Description string
		Location    string
		Experience  string
		Technical   bool
		Department  string
	}{
		{"0b9a4f56-3c1e-4d8a-9d0e-6f1b2a3c4d01", "Backend Engineer", "Build and operate Go services.", "Jakarta", "3+ years", true, "Engineering"},
		{"0b9a4f56-3c1e-4d8a-9d0e-6f1b2a3c4d02", "Frontend Engineer", "Own the applicant portal.", "Remote", "2+ years", true, "Engineering"},
		{"0b9a4f56-3c1e-4d8a-9d0e-6f1b2a3c4d03", "Data Engineer", "Maintain reporting pipelines.", "Bandung", "2+ years", true, "Data"},
		{"0b9a4f56-3c1e-4d8a-9d0e-6f1b2a3c4d04", "HR Generalist", "Coordinate hiring across teams.", "Jakarta", "1+ years", false, "People"},
		{"0b9a4f56-3c1e-4d8a-9d0e-6f1b2a3c4d05", "Account Executive", "Grow enterprise accounts.", "Surabaya", "3+ years", false, "Sales"},
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO job_roles (id, title, description, location, experience_required, is_technical, department)
				 VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`,
				uuid.MustParse(it.ID),
				it.Title,
				it.Description,
				it.Location,
				it.Experience,
				it.Technical,
				it.Department,
			); err != nil {
				return fmt.Errorf("insert %s: %w", it.Title, err)
			}
		}
		return nil
	})
}
