package services

import (
	"context"
	"errors"

	"github.com/openhire/apiserver/internal/policy"
	"github.com/openhire/apiserver/types"
)

// ErrNotEmployer is returned when a job references a user who exists but
// does not carry the employer role.
var ErrNotEmployer = errors.New("user is not an employer")

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	List(ctx context.Context, q types.JobQuery) ([]types.Job, int, error)
	Get(ctx context.Context, id int) (types.Job, error)
	Create(ctx context.Context, job types.Job) (types.Job, error)
	Update(ctx context.Context, job types.Job) (types.Job, error)
	Delete(ctx context.Context, id int) error
}

// JobUpdate carries the partial field changes of a job update. Nil fields
// are left untouched. DatePosted and the owning employer never change.
type JobUpdate struct {
	Title       *string
	Description *string
	Location    *string
	MinSalary   *int64
	MaxSalary   *int64
	JobType     *types.JobType
}

// JobService encapsulates job use-cases.
type JobService struct {
	jobs  JobRepository
	users UserRepository
}

func NewJobService(jobs JobRepository, users UserRepository) *JobService {
	return &JobService{jobs: jobs, users: users}
}

// Create posts a new job. Only employers may post, and the owning user must
// carry the employer role at creation time; the posting defaults to the
// caller when no employer id is given. No ordering between MinSalary and
// MaxSalary is enforced.
func (s *JobService) Create(ctx context.Context, caller types.Caller, job types.Job) (types.Job, error) {
	if err := policy.CanCreateJob(caller); err != nil {
		return types.Job{}, err
	}

	if job.EmployerID == 0 {
		job.EmployerID = caller.ID
	}
	employer, err := s.users.GetByID(ctx, job.EmployerID)
	if err != nil {
		return types.Job{}, err
	}
	if employer.Role != types.RoleEmployer {
		return types.Job{}, ErrNotEmployer
	}

	if job.JobType == "" {
		job.JobType = types.JobTypeFullTime
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		return types.Job{}, err
	}
	created.Employer = &employer
	return created, nil
}

// List returns one page of jobs plus the pagination metadata of the full
// filtered result. Absent or out-of-range page/limit fall back to defaults.
func (s *JobService) List(ctx context.Context, q types.JobQuery) (types.JobPage, error) {
	q.Normalize()

	jobs, total, err := s.jobs.List(ctx, q)
	if err != nil {
		return types.JobPage{}, err
	}

	totalPages := (total + q.Limit - 1) / q.Limit
	return types.JobPage{
		Jobs:        jobs,
		TotalJobs:   total,
		TotalPages:  totalPages,
		CurrentPage: q.Page,
		HasNextPage: q.Page < totalPages,
	}, nil
}

func (s *JobService) Get(ctx context.Context, id int) (types.Job, error) {
	return s.jobs.Get(ctx, id)
}

// Update applies partial changes to a job owned by the caller (or any job,
// for admins).
func (s *JobService) Update(ctx context.Context, caller types.Caller, id int, update JobUpdate) (types.Job, error) {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		return types.Job{}, err
	}
	if err := policy.CanMutateJob(caller, job.EmployerID); err != nil {
		return types.Job{}, err
	}

	if update.Title != nil {
		job.Title = *update.Title
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.Location != nil {
		job.Location = *update.Location
	}
	if update.MinSalary != nil {
		job.MinSalary = *update.MinSalary
	}
	if update.MaxSalary != nil {
		job.MaxSalary = *update.MaxSalary
	}
	if update.JobType != nil {
		job.JobType = *update.JobType
	}

	return s.jobs.Update(ctx, job)
}

// Delete removes a job owned by the caller (or any job, for admins).
// Dependent applications go with it at the storage layer.
func (s *JobService) Delete(ctx context.Context, caller types.Caller, id int) error {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanMutateJob(caller, job.EmployerID); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}
