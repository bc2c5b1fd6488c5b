package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openhire/apiserver/types"
)

const applicationSelectColumns = `
		a.id, a.job_id, a.resume_path, a.cover_letter_path, a.submitted_at,
		a.applicant_id, a.status, a.updated_at,
		u.id, u.username, u.role, u.created_at, u.updated_at,
		j.id, j.date_posted, j.title, j.description, j.location,
		j.min_salary, j.max_salary, j.job_type, j.employer_id, j.updated_at`

const applicationFromClause = `
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		JOIN jobs j ON j.id = a.job_id`

// ApplicationRepository handles persistence for applications.
type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Get(ctx context.Context, id int) (types.Application, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE a.id = $1", applicationSelectColumns, applicationFromClause)
	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Application{}, ErrNotFound
		}
		return types.Application{}, err
	}
	return app, nil
}

// Create inserts the application optimistically. The unique index on
// (job_id, applicant_id) is the only guard against duplicate submissions;
// a unique violation from the insert is reported as ErrDuplicate so that
// concurrent submissions for the same pair resolve to one winner.
func (r *ApplicationRepository) Create(ctx context.Context, app types.Application) (types.Application, error) {
	now := time.Now()
	app.SubmittedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = types.StatusPending
	}

	const query = `
		INSERT INTO applications (job_id, resume_path, cover_letter_path, submitted_at, applicant_id, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		app.JobID,
		app.ResumePath,
		nullString(app.CoverLetterPath),
		app.SubmittedAt,
		app.ApplicantID,
		app.Status,
		app.UpdatedAt,
	).Scan(&app.ID); err != nil {
		if isUniqueViolation(err) {
			return types.Application{}, ErrDuplicate
		}
		return types.Application{}, err
	}
	return app, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, app types.Application) (types.Application, error) {
	app.UpdatedAt = time.Now()

	const query = `
		UPDATE applications
		SET resume_path = $1,
			cover_letter_path = $2,
			status = $3,
			updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		app.ResumePath,
		nullString(app.CoverLetterPath),
		app.Status,
		app.UpdatedAt,
		app.ID,
	)
	if err != nil {
		return types.Application{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Application{}, err
	}
	if affected == 0 {
		return types.Application{}, ErrNotFound
	}
	return app, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM applications WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByApplicant returns the applications submitted by one job seeker.
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID int) ([]types.Application, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE a.applicant_id = $1 ORDER BY a.submitted_at DESC",
		applicationSelectColumns, applicationFromClause)
	return r.list(ctx, query, applicantID)
}

// ListByEmployer returns the applications to any job owned by the employer.
func (r *ApplicationRepository) ListByEmployer(ctx context.Context, employerID int) ([]types.Application, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE j.employer_id = $1 ORDER BY a.submitted_at DESC",
		applicationSelectColumns, applicationFromClause)
	return r.list(ctx, query, employerID)
}

// ListByJob returns the applications to one job. Ownership of the job is
// checked by the caller before this runs.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int) ([]types.Application, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE a.job_id = $1 ORDER BY a.submitted_at DESC",
		applicationSelectColumns, applicationFromClause)
	return r.list(ctx, query, jobID)
}

// ListAll returns every application in the system.
func (r *ApplicationRepository) ListAll(ctx context.Context) ([]types.Application, error) {
	query := fmt.Sprintf("SELECT %s %s ORDER BY a.submitted_at DESC",
		applicationSelectColumns, applicationFromClause)
	return r.list(ctx, query)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]types.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]types.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

func scanApplication(row rowScanner) (types.Application, error) {
	var app types.Application
	var coverLetter sql.NullString
	var applicant types.User
	var job types.Job
	var jobDescription sql.NullString
	if err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.ResumePath,
		&coverLetter,
		&app.SubmittedAt,
		&app.ApplicantID,
		&app.Status,
		&app.UpdatedAt,
		&applicant.ID,
		&applicant.Username,
		&applicant.Role,
		&applicant.CreatedAt,
		&applicant.UpdatedAt,
		&job.ID,
		&job.DatePosted,
		&job.Title,
		&jobDescription,
		&job.Location,
		&job.MinSalary,
		&job.MaxSalary,
		&job.JobType,
		&job.EmployerID,
		&job.UpdatedAt,
	); err != nil {
		return types.Application{}, err
	}
	app.CoverLetterPath = coverLetter.String
	job.Description = jobDescription.String
	app.Applicant = &applicant
	app.Job = &job
	return app, nil
}
