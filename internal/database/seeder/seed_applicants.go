package seeder

import (
	"context"
	"fmt"

	"ats/internal/database"
	"ats/internal/domain/applicant"
	"ats/internal/infrastructure/persistence/postgres"

	"github.com/google/uuid"
)

// ApplicantsSeeder mirrors a few identity-service users so local tokens
// resolve to names.
type ApplicantsSeeder struct{}

func (ApplicantsSeeder) Name() string { return "applicants" }

func (ApplicantsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "applicants", "id", "name", "email"); err != nil {
		return err
	}

	repo, err := postgres.NewApplicantRepository(ctx, db.SQLDB())
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	items := []applicant.Applicant{
		{ID: uuid.MustParse("5d7c1e2a-8b3f-4a6d-b1c2-7e8f9a0b1c01"), Name: "Ayu Lestari", Email: "ayu@example.com"},
		{ID: uuid.MustParse("5d7c1e2a-8b3f-4a6d-b1c2-7e8f9a0b1c02"), Name: "Budi Santoso", Email: "budi@example.com"},
		{ID: uuid.MustParse("5d7c1e2a-8b3f-4a6d-b1c2-7e8f9a0b1c03"), Name: "Citra Dewi", Email: "citra@example.com"},
	}

	for _, it := range items {
		if err := repo.Upsert(ctx, it); err != nil {
			return fmt.Errorf("upsert %s: %w", it.Email, err)
		}
		// An existing row keeps its id; the email is the identity key.
		if _, err := repo.GetByEmail(ctx, it.Email); err != nil {
			return fmt.Errorf("verify %s: %w", it.Email, err)
		}
	}
	return nil
}
