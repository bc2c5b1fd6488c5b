package types

import "time"

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

// Supported application statuses. An application starts out pending and may
// be moved to shortlisted or rejected; no transition back to pending exists.
const (
	StatusPending     ApplicationStatus = "pending"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
)

// Valid reports whether the status is one of the supported values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShortlisted, StatusRejected:
		return true
	default:
		return false
	}
}

// Application represents a job seeker's application to a job. At most one
// application per (job, applicant) pair can exist; the constraint is
// enforced by a unique index at the storage layer.
type Application struct {
	// ID is the unique identifier of the application.
	ID int `json:"id" db:"id"`

	// JobID identifies the job this application is for.
	JobID int `json:"job_id" db:"job_id"`

	// ResumePath is the storage reference of the applicant's resume.
	// It is required and never empty.
	ResumePath string `json:"resume_path" db:"resume_path"`

	// CoverLetterPath is the optional storage reference of a cover letter.
	CoverLetterPath string `json:"cover_letter_path,omitempty" db:"cover_letter_path"`

	// SubmittedAt is set once when the application is created.
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`

	// ApplicantID identifies the job seeker who submitted the application.
	ApplicantID int `json:"applicant_id" db:"applicant_id"`

	// Status is the review state of the application.
	Status ApplicationStatus `json:"status" db:"status"`

	// UpdatedAt is the timestamp of the most recent update to the application.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Applicant is the submitting user, populated on reads that join users.
	Applicant *User `json:"applicant,omitempty" db:"-"`

	// Job is the applied-to job, populated on reads that join jobs.
	Job *Job `json:"job,omitempty" db:"-"`
}
