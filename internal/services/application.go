package services

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/openhire/apiserver/internal/events"
	"github.com/openhire/apiserver/internal/policy"
	"github.com/openhire/apiserver/internal/storage"
	"github.com/openhire/apiserver/types"
)

// ErrResumeRequired is returned when an application is submitted without a
// resume file.
var ErrResumeRequired = errors.New("resume is required")

// ErrInvalidStatus is returned when a status change names an unknown state.
var ErrInvalidStatus = errors.New("invalid application status")

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Get(ctx context.Context, id int) (types.Application, error)
	Create(ctx context.Context, app types.Application) (types.Application, error)
	Update(ctx context.Context, app types.Application) (types.Application, error)
	Delete(ctx context.Context, id int) error
	ListByApplicant(ctx context.Context, applicantID int) ([]types.Application, error)
	ListByEmployer(ctx context.Context, employerID int) ([]types.Application, error)
	ListByJob(ctx context.Context, jobID int) ([]types.Application, error)
	ListAll(ctx context.Context) ([]types.Application, error)
}

// FileStore persists uploaded file bytes under a key.
type FileStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// EventPublisher emits domain events after successful writes.
type EventPublisher interface {
	ApplicationSubmitted(ctx context.Context, event events.ApplicationSubmitted) error
}

// FileUpload is an uploaded attachment held in memory until it is handed to
// the file store.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ApplicationUpdate carries the partial changes of an application update.
// A supplied file replaces the stored path outright; the record never
// references two files for the same slot.
type ApplicationUpdate struct {
	Status      *types.ApplicationStatus
	Resume      *FileUpload
	CoverLetter *FileUpload
}

// ApplicationService encapsulates the application lifecycle: creation
// invariants, visibility, attachment replacement, and deletion.
type ApplicationService struct {
	apps      ApplicationRepository
	jobs      JobRepository
	files     FileStore
	publisher EventPublisher
}

// NewApplicationService constructs the service. publisher may be nil, in
// which case no events are emitted.
func NewApplicationService(apps ApplicationRepository, jobs JobRepository, files FileStore, publisher EventPublisher) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, files: files, publisher: publisher}
}

// Create submits an application to a job. Only job seekers may apply, a
// resume is mandatory, and the job must exist. The insert itself is the
// duplicate check: the store's unique (job, applicant) index turns a second
// submission into store.ErrDuplicate, so two concurrent submissions resolve
// to exactly one winner without a read-before-write.
func (s *ApplicationService) Create(ctx context.Context, caller types.Caller, jobID int, resume, coverLetter *FileUpload) (types.Application, error) {
	if err := policy.CanCreateApplication(caller); err != nil {
		return types.Application{}, err
	}
	if resume == nil || len(resume.Data) == 0 {
		return types.Application{}, ErrResumeRequired
	}

	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return types.Application{}, err
	}

	resumePath, err := s.storeFile(ctx, "resumes", resume)
	if err != nil {
		return types.Application{}, err
	}
	coverLetterPath := ""
	if coverLetter != nil && len(coverLetter.Data) > 0 {
		coverLetterPath, err = s.storeFile(ctx, "cover-letters", coverLetter)
		if err != nil {
			return types.Application{}, err
		}
	}

	created, err := s.apps.Create(ctx, types.Application{
		JobID:           jobID,
		ApplicantID:     caller.ID,
		ResumePath:      resumePath,
		CoverLetterPath: coverLetterPath,
		Status:          types.StatusPending,
	})
	if err != nil {
		return types.Application{}, err
	}

	if s.publisher != nil {
		// Best effort; the application is already committed.
		_ = s.publisher.ApplicationSubmitted(ctx, events.ApplicationSubmitted{
			ApplicationID: created.ID,
			JobID:         job.ID,
			ApplicantID:   caller.ID,
			EmployerID:    job.EmployerID,
			SubmittedAt:   created.SubmittedAt,
		})
	}

	return created, nil
}

// Get returns one application if the caller is its applicant, the employer
// owning the applied-to job, or an admin. A missing row is reported as not
// found before ownership is considered.
func (s *ApplicationService) Get(ctx context.Context, caller types.Caller, id int) (types.Application, error) {
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		return types.Application{}, err
	}
	if err := policy.CanAccessApplication(caller, app.ApplicantID, app.Job.EmployerID); err != nil {
		return types.Application{}, err
	}
	return app, nil
}

// List returns the applications visible to the caller: their own for job
// seekers, those for their jobs for employers, everything for admins. A role
// with no visible rows gets an empty list, not an error.
func (s *ApplicationService) List(ctx context.Context, caller types.Caller) ([]types.Application, error) {
	switch policy.ListApplicationsScope(caller) {
	case policy.ScopeOwn:
		return s.apps.ListByApplicant(ctx, caller.ID)
	case policy.ScopeEmployer:
		return s.apps.ListByEmployer(ctx, caller.ID)
	case policy.ScopeAll:
		return s.apps.ListAll(ctx)
	default:
		return nil, policy.ErrRoleNotEligible
	}
}

// ListMine returns the caller's own applications. Job seekers only.
func (s *ApplicationService) ListMine(ctx context.Context, caller types.Caller) ([]types.Application, error) {
	if err := policy.CanListOwnApplications(caller); err != nil {
		return nil, err
	}
	return s.apps.ListByApplicant(ctx, caller.ID)
}

// ListForJob returns the applications to one job. The caller must be the
// employer owning that job.
func (s *ApplicationService) ListForJob(ctx context.Context, caller types.Caller, jobID int) ([]types.Application, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanListApplicationsForJob(caller, job.EmployerID); err != nil {
		return nil, err
	}
	return s.apps.ListByJob(ctx, jobID)
}

// Update applies partial changes under the same ownership rule as Get.
// Status changes are additionally restricted to the owning employer or an
// admin. New files replace the stored paths; the superseded object is the
// storage collaborator's cleanup concern.
func (s *ApplicationService) Update(ctx context.Context, caller types.Caller, id int, update ApplicationUpdate) (types.Application, error) {
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		return types.Application{}, err
	}
	if err := policy.CanAccessApplication(caller, app.ApplicantID, app.Job.EmployerID); err != nil {
		return types.Application{}, err
	}

	if update.Status != nil {
		if !update.Status.Valid() {
			return types.Application{}, ErrInvalidStatus
		}
		if err := policy.CanChangeApplicationStatus(caller, app.Job.EmployerID); err != nil {
			return types.Application{}, err
		}
		app.Status = *update.Status
	}

	if update.Resume != nil && len(update.Resume.Data) > 0 {
		path, err := s.storeFile(ctx, "resumes", update.Resume)
		if err != nil {
			return types.Application{}, err
		}
		app.ResumePath = path
	}
	if update.CoverLetter != nil && len(update.CoverLetter.Data) > 0 {
		path, err := s.storeFile(ctx, "cover-letters", update.CoverLetter)
		if err != nil {
			return types.Application{}, err
		}
		app.CoverLetterPath = path
	}

	return s.apps.Update(ctx, app)
}

// Delete removes an application under the same ownership rule as Get. A row
// deleted by a concurrent request surfaces as not found, never as a silent
// success.
func (s *ApplicationService) Delete(ctx context.Context, caller types.Caller, id int) error {
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanAccessApplication(caller, app.ApplicantID, app.Job.EmployerID); err != nil {
		return err
	}
	return s.apps.Delete(ctx, id)
}

func (s *ApplicationService) storeFile(ctx context.Context, kind string, file *FileUpload) (string, error) {
	key := storage.NewObjectKey(kind, file.Filename)
	if err := s.files.Put(ctx, key, bytes.NewReader(file.Data), int64(len(file.Data)), file.ContentType); err != nil {
		return "", err
	}
	return storage.PathForKey(key), nil
}
