package types

import "time"

// JobType is the employment kind of a job posting.
type JobType string

// Supported job types.
const (
	JobTypeFullTime  JobType = "full-time"
	JobTypePartTime  JobType = "part-time"
	JobTypeContract  JobType = "contract"
	JobTypeIntern    JobType = "intern"
	JobTypeVolunteer JobType = "volunteer"
)

// Valid reports whether the job type is one of the supported values.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeIntern, JobTypeVolunteer:
		return true
	default:
		return false
	}
}

// Job represents a job posting created by an employer.
type Job struct {
	// ID is the unique identifier of the job.
	ID int `json:"id" db:"id"`

	// DatePosted is set once when the job is created and never changes.
	DatePosted time.Time `json:"date_posted" db:"date_posted"`

	// Title is the human-readable name of the position.
	Title string `json:"title" db:"title"`

	// Description is an optional free-form description of the position.
	Description string `json:"description,omitempty" db:"description"`

	// Location is where the position is based.
	Location string `json:"location" db:"location"`

	// MinSalary is the lower end of the advertised salary range.
	// No ordering relative to MaxSalary is enforced.
	MinSalary int64 `json:"min_salary" db:"min_salary"`

	// MaxSalary is the upper end of the advertised salary range.
	MaxSalary int64 `json:"max_salary" db:"max_salary"`

	// JobType is the employment kind of the posting.
	JobType JobType `json:"job_type" db:"job_type"`

	// EmployerID identifies the employer who owns this job. Only a user
	// with the employer role may own a job.
	EmployerID int `json:"employer_id" db:"employer_id"`

	// Employer is the owning user, populated on reads that join users.
	Employer *User `json:"employer,omitempty" db:"-"`

	// UpdatedAt is the timestamp of the most recent update to the job.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Sort fields accepted by the job listing.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByLocation  SortField = "location"
	SortByMinSalary SortField = "min-salary"
	SortByMaxSalary SortField = "max-salary"
	SortByJobType   SortField = "job-type"
	SortByDate      SortField = "date"
)

// Valid reports whether the sort field is one of the supported values.
func (f SortField) Valid() bool {
	switch f {
	case SortByTitle, SortByLocation, SortByMinSalary, SortByMaxSalary, SortByJobType, SortByDate:
		return true
	default:
		return false
	}
}

// SortOrder is the direction of the primary sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether the sort order is one of the supported values.
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// Listing defaults.
const (
	DefaultJobPage  = 1
	DefaultJobLimit = 10
)

// JobQuery is the untrusted filter/sort/pagination input for job listings.
// All filters are optional and combine conjunctively. Values are carried as
// bound parameters to the store, never as SQL fragments.
type JobQuery struct {
	// JobType keeps jobs whose type matches exactly.
	JobType JobType

	// Title keeps jobs whose title contains the value, case-insensitively.
	Title string

	// Location keeps jobs whose location contains the value, case-insensitively.
	Location string

	// MinSalary keeps jobs whose own min_salary is at least this value.
	MinSalary *int64

	// MaxSalary keeps jobs whose own max_salary is at most this value.
	MaxSalary *int64

	SortBy    SortField
	SortOrder SortOrder

	// Page is 1-based.
	Page  int
	Limit int
}

// Normalize fills in defaults for absent or out-of-range pagination and
// sorting values. Out-of-range page/limit fall back to defaults rather
// than erroring.
func (q *JobQuery) Normalize() {
	if q.SortBy == "" {
		q.SortBy = SortByDate
	}
	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}
	if q.Page < 1 {
		q.Page = DefaultJobPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultJobLimit
	}
}

// Offset returns the row offset implied by the page and limit.
func (q JobQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// JobPage is one page of a job listing plus the pagination metadata the
// listing endpoint reports.
type JobPage struct {
	Jobs        []Job `json:"jobs"`
	TotalJobs   int   `json:"total_jobs"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	HasNextPage bool  `json:"has_next_page"`
}
