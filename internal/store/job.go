package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openhire/apiserver/types"
)

// Sort fields are resolved to column names through this table; anything not
// listed here can never reach the ORDER BY clause.
var jobSortColumns = map[types.SortField]string{
	types.SortByTitle:     "j.title",
	types.SortByLocation:  "j.location",
	types.SortByMinSalary: "j.min_salary",
	types.SortByMaxSalary: "j.max_salary",
	types.SortByJobType:   "j.job_type",
	types.SortByDate:      "j.date_posted",
}

const jobSelectColumns = `
		j.id, j.date_posted, j.title, j.description, j.location,
		j.min_salary, j.max_salary, j.job_type, j.employer_id, j.updated_at,
		u.id, u.username, u.role, u.created_at, u.updated_at`

// JobRepository handles persistence for jobs.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// List returns one page of jobs under the query's filters together with the
// total count of matching jobs ignoring pagination. Filter values are always
// bound parameters. The ORDER BY carries a secondary tie-break on
// date_posted DESC so that pages stay stable when the primary sort key has
// duplicate values.
func (r *JobRepository) List(ctx context.Context, q types.JobQuery) ([]types.Job, int, error) {
	q.Normalize()

	var conds []string
	var args []any
	addCond := func(clause string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(clause, len(args)))
	}

	if q.JobType != "" {
		addCond("j.job_type = $%d", string(q.JobType))
	}
	if q.Title != "" {
		addCond("j.title ILIKE '%%' || $%d || '%%'", q.Title)
	}
	if q.Location != "" {
		addCond("j.location ILIKE '%%' || $%d || '%%'", q.Location)
	}
	if q.MinSalary != nil {
		addCond("j.min_salary >= $%d", *q.MinSalary)
	}
	if q.MaxSalary != nil {
		addCond("j.max_salary <= $%d", *q.MaxSalary)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := "SELECT COUNT(1) FROM jobs j" + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortColumn, ok := jobSortColumns[q.SortBy]
	if !ok {
		sortColumn = jobSortColumns[types.SortByDate]
	}
	direction := "DESC"
	if q.SortOrder == types.SortAsc {
		direction = "ASC"
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM jobs j
		JOIN users u ON u.id = j.employer_id%s
		ORDER BY %s %s, j.date_posted DESC
		OFFSET $%d LIMIT $%d`,
		jobSelectColumns, where, sortColumn, direction, len(args)+1, len(args)+2)
	args = append(args, q.Offset(), q.Limit)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := make([]types.Job, 0, q.Limit)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *JobRepository) Get(ctx context.Context, id int) (types.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs j
		JOIN users u ON u.id = j.employer_id
		WHERE j.id = $1`, jobSelectColumns)
	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Job{}, ErrNotFound
		}
		return types.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	now := time.Now()
	job.DatePosted = now
	job.UpdatedAt = now

	const query = `
		INSERT INTO jobs (date_posted, title, description, location, min_salary, max_salary, job_type, employer_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		job.DatePosted,
		job.Title,
		nullString(job.Description),
		job.Location,
		job.MinSalary,
		job.MaxSalary,
		job.JobType,
		job.EmployerID,
		job.UpdatedAt,
	).Scan(&job.ID); err != nil {
		return types.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) Update(ctx context.Context, job types.Job) (types.Job, error) {
	job.UpdatedAt = time.Now()

	const query = `
		UPDATE jobs
		SET title = $1,
			description = $2,
			location = $3,
			min_salary = $4,
			max_salary = $5,
			job_type = $6,
			updated_at = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(
		ctx,
		query,
		job.Title,
		nullString(job.Description),
		job.Location,
		job.MinSalary,
		job.MaxSalary,
		job.JobType,
		job.UpdatedAt,
		job.ID,
	)
	if err != nil {
		return types.Job{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Job{}, err
	}
	if affected == 0 {
		return types.Job{}, ErrNotFound
	}
	return job, nil
}

// Delete removes a job. Dependent applications are removed by the
// ON DELETE CASCADE constraint on applications.job_id.
func (r *JobRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM jobs WHERE id = $1`
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (types.Job, error) {
	var job types.Job
	var description sql.NullString
	var employer types.User
	if err := row.Scan(
		&job.ID,
		&job.DatePosted,
		&job.Title,
		&description,
		&job.Location,
		&job.MinSalary,
		&job.MaxSalary,
		&job.JobType,
		&job.EmployerID,
		&job.UpdatedAt,
		&employer.ID,
		&employer.Username,
		&employer.Role,
		&employer.CreatedAt,
		&employer.UpdatedAt,
	); err != nil {
		return types.Job{}, err
	}
	job.Description = description.String
	job.Employer = &employer
	return job, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
