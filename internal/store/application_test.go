package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/openhire/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationRows(ids ...int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "job_id", "resume_path", "cover_letter_path", "submitted_at",
		"applicant_id", "status", "updated_at",
		"u_id", "u_username", "u_role", "u_created_at", "u_updated_at",
		"j_id", "j_date_posted", "j_title", "j_description", "j_location",
		"j_min_salary", "j_max_salary", "j_job_type", "j_employer_id", "j_updated_at",
	})
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(id, 4, "/uploads/resumes/r.pdf", nil, now,
			9, "pending", now,
			9, "alice", "job-seeker", now, now,
			4, now, "Engineer", nil, "Berlin", 60000, 90000, "full-time", 7, now)
	}
	return rows
}

func TestApplicationCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO applications`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "applications_job_applicant_idx"})

	repo := NewApplicationRepository(db)
	_, err = repo.Create(context.Background(), types.Application{
		JobID:       4,
		ApplicantID: 9,
		ResumePath:  "/uploads/resumes/r.pdf",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationCreateDefaultsStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO applications`).
		WithArgs(4, "/uploads/resumes/r.pdf", sqlmock.AnyArg(), sqlmock.AnyArg(), 9, "pending", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	repo := NewApplicationRepository(db)
	app, err := repo.Create(context.Background(), types.Application{
		JobID:       4,
		ApplicantID: 9,
		ResumePath:  "/uploads/resumes/r.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, 11, app.ID)
	assert.Equal(t, types.StatusPending, app.Status)
	assert.False(t, app.SubmittedAt.IsZero())
}

func TestApplicationGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE a\.id = \$1`).
		WithArgs(11).
		WillReturnRows(applicationRows(11))

	repo := NewApplicationRepository(db)
	app, err := repo.Get(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, 11, app.ID)
	require.NotNil(t, app.Applicant)
	assert.Equal(t, "alice", app.Applicant.Username)
	require.NotNil(t, app.Job)
	assert.Equal(t, "Engineer", app.Job.Title)
	assert.Empty(t, app.CoverLetterPath)
}

func TestApplicationGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE a\.id = \$1`).
		WithArgs(404).
		WillReturnRows(applicationRows())

	repo := NewApplicationRepository(db)
	_, err = repo.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationDeleteGone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM applications WHERE id = \$1`).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewApplicationRepository(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), 11), ErrNotFound)
}

func TestApplicationListByEmployerOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE j\.employer_id = \$1 ORDER BY a\.submitted_at DESC`).
		WithArgs(7).
		WillReturnRows(applicationRows(12, 11))

	repo := NewApplicationRepository(db)
	apps, err := repo.ListByEmployer(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, 12, apps[0].ID)
}
