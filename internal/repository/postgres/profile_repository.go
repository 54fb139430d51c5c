package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-autofiller-backend/internal/domain"
	"go-autofiller-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepository{db: db}
}

// EnsureSchema creates the tables on startup when they do not exist yet.
// "references" is a reserved word in Postgres and stays quoted everywhere.
func (r *profileRepository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id                 SERIAL PRIMARY KEY,
			created_at         TIMESTAMP NOT NULL DEFAULT NOW(),
			last_updated       TIMESTAMP,
			first_name         VARCHAR(100),
			last_name          VARCHAR(100),
			email              VARCHAR(255),
			phone              VARCHAR(50),
			address            TEXT,
			city               VARCHAR(100),
			state              VARCHAR(100),
			zip_code           VARCHAR(20),
			country            VARCHAR(100),
			linkedin           VARCHAR(255),
			portfolio          VARCHAR(255),
			current_title      VARCHAR(255),
			current_company    VARCHAR(255),
			summary            TEXT,
			skills             TEXT[],
			degree             VARCHAR(255),
			field_of_study     VARCHAR(255),
			university         VARCHAR(255),
			graduation_year    VARCHAR(20),
			gpa                VARCHAR(20),
			resume_url         TEXT,
			resume_file_name   VARCHAR(255),
			cover_letter       TEXT,
			availability       VARCHAR(100),
			salary_expectation VARCHAR(100),
			work_authorization VARCHAR(100),
			languages          TEXT[],
			CONSTRAINT uq_profile_email UNIQUE (email)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles (email)`,
		`CREATE TABLE IF NOT EXISTS experiences (
			id          SERIAL PRIMARY KEY,
			profile_id  INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			title       VARCHAR(255),
			company     VARCHAR(255),
			start_date  VARCHAR(50),
			end_date    VARCHAR(50),
			current     BOOLEAN DEFAULT FALSE,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS "references" (
			id         SERIAL PRIMARY KEY,
			profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			name       VARCHAR(255),
			title      VARCHAR(255),
			company    VARCHAR(255),
			email      VARCHAR(255),
			phone      VARCHAR(50)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `
		SELECT
			id, created_at, last_updated,
			first_name, last_name, email, phone, address, city, state,
			zip_code, country, linkedin, portfolio,
			current_title, current_company, summary, skills,
			degree, field_of_study, university, graduation_year, gpa,
			resume_url, resume_file_name, cover_letter,
			availability, salary_expectation, work_authorization, languages
		FROM profiles WHERE email = $1`

	var p domain.Profile
	var skills, languages []string

	err := r.db.QueryRow(ctx, query, email).Scan(
		&p.ID, &p.CreatedAt, &p.LastUpdated,
		&p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Address, &p.City, &p.State,
		&p.ZipCode, &p.Country, &p.Linkedin, &p.Portfolio,
		&p.CurrentTitle, &p.CurrentCompany, &p.Summary, pq.Array(&skills),
		&p.Degree, &p.FieldOfStudy, &p.University, &p.GraduationYear, &p.GPA,
		&p.ResumeURL, &p.ResumeFileName, &p.CoverLetter,
		&p.Availability, &p.SalaryExpectation, &p.WorkAuthorization, pq.Array(&languages),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Skills = skills
	p.Languages = languages
	return &p, nil
}

// Save writes the whole aggregate in one transaction. A new profile is
// inserted and gets its id and created_at assigned by the database; an
// existing one is overwritten in full and has its child rows deleted and
// rebuilt from the incoming lists, in input order.
func (r *profileRepository) Save(ctx context.Context, p *domain.Profile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	scalars := []interface{}{
		p.FirstName, p.LastName, p.Email, p.Phone, p.Address, p.City, p.State,
		p.ZipCode, p.Country, p.Linkedin, p.Portfolio,
		p.CurrentTitle, p.CurrentCompany, p.Summary, pq.Array(p.Skills),
		p.Degree, p.FieldOfStudy, p.University, p.GraduationYear, p.GPA,
		p.ResumeURL, p.ResumeFileName, p.CoverLetter,
		p.Availability, p.SalaryExpectation, p.WorkAuthorization, pq.Array(p.Languages),
		p.LastUpdated,
	}

	if p.ID == 0 {
		insertQuery := `
			INSERT INTO profiles (
				first_name, last_name, email, phone, address, city, state,
				zip_code, country, linkedin, portfolio,
				current_title, current_company, summary, skills,
				degree, field_of_study, university, graduation_year, gpa,
				resume_url, resume_file_name, cover_letter,
				availability, salary_expectation, work_authorization, languages,
				last_updated
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28
			) RETURNING id, created_at`

		err := tx.QueryRow(ctx, insertQuery, scalars...).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return mapSaveError(err)
		}
	} else {
		updateQuery := `
			UPDATE profiles SET
				first_name = $1, last_name = $2, email = $3, phone = $4,
				address = $5, city = $6, state = $7, zip_code = $8,
				country = $9, linkedin = $10, portfolio = $11,
				current_title = $12, current_company = $13, summary = $14,
				skills = $15, degree = $16, field_of_study = $17,
				university = $18, graduation_year = $19, gpa = $20,
				resume_url = $21, resume_file_name = $22, cover_letter = $23,
				availability = $24, salary_expectation = $25,
				work_authorization = $26, languages = $27, last_updated = $28
			WHERE id = $29`

		args := append(scalars, p.ID)
		if _, err := tx.Exec(ctx, updateQuery, args...); err != nil {
			return mapSaveError(err)
		}

		// Full replacement of child collections, never a merge
		if _, err := tx.Exec(ctx, `DELETE FROM experiences WHERE profile_id = $1`, p.ID); err != nil {
			return fmt.Errorf("failed to clear experiences: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM "references" WHERE profile_id = $1`, p.ID); err != nil {
			return fmt.Errorf("failed to clear references: %w", err)
		}
	}

	expInsert := `
		INSERT INTO experiences (
			profile_id, title, company, start_date, end_date, current, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i := range p.Experiences {
		e := &p.Experiences[i]
		e.ProfileID = p.ID
		_, err := tx.Exec(ctx, expInsert,
			p.ID, e.Title, e.Company, e.StartDate, e.EndDate, e.Current, e.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert experience: %w", err)
		}
	}

	refInsert := `
		INSERT INTO "references" (
			profile_id, name, title, company, email, phone
		) VALUES ($1, $2, $3, $4, $5, $6)`

	for i := range p.References {
		ref := &p.References[i]
		ref.ProfileID = p.ID
		_, err := tx.Exec(ctx, refInsert,
			p.ID, ref.Name, ref.Title, ref.Company, ref.Email, ref.Phone,
		)
		if err != nil {
			return fmt.Errorf("failed to insert reference: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return mapSaveError(err)
	}
	return nil
}

// mapSaveError surfaces the email uniqueness constraint as a Conflict so a
// losing concurrent create fails loudly instead of being merged.
func mapSaveError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperror.Conflict("A profile with this email already exists")
	}
	return err
}
