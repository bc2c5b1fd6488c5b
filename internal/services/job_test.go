package services

import (
	"context"
	"testing"

	"github.com/openhire/apiserver/internal/policy"
	"github.com/openhire/apiserver/internal/store"
	"github.com/openhire/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employerUser() types.User {
	return types.User{ID: 7, Username: "acme", Role: types.RoleEmployer}
}

func TestJobCreate(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), newFakeUserRepo(employerUser()))

	job, err := svc.Create(context.Background(), owner, types.Job{Title: "Engineer", Location: "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, job.EmployerID)
	assert.Equal(t, types.JobTypeFullTime, job.JobType)
	require.NotNil(t, job.Employer)
	assert.Equal(t, "acme", job.Employer.Username)
}

func TestJobCreateRoleChecks(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), newFakeUserRepo(employerUser()))

	for _, caller := range []types.Caller{seeker, admin} {
		_, err := svc.Create(context.Background(), caller, types.Job{Title: "Engineer"})
		assert.ErrorIs(t, err, policy.ErrRoleNotEligible)
	}
}

func TestJobCreateEmployerMustExist(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), newFakeUserRepo(employerUser()))

	_, err := svc.Create(context.Background(), owner, types.Job{Title: "Engineer", EmployerID: 99})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestJobCreateEmployerMustHoldRole(t *testing.T) {
	users := newFakeUserRepo(employerUser(), types.User{ID: 9, Username: "alice", Role: types.RoleJobSeeker})
	svc := NewJobService(newFakeJobRepo(), users)

	_, err := svc.Create(context.Background(), owner, types.Job{Title: "Engineer", EmployerID: 9})
	assert.ErrorIs(t, err, ErrNotEmployer)
}

func TestJobListPagination(t *testing.T) {
	repo := newFakeJobRepo()
	repo.listOut = make([]types.Job, 10)
	repo.total = 23
	svc := NewJobService(repo, newFakeUserRepo())

	page, err := svc.List(context.Background(), types.JobQuery{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 23, page.TotalJobs)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.True(t, page.HasNextPage)

	page, err = svc.List(context.Background(), types.JobQuery{Page: 3})
	require.NoError(t, err)
	assert.False(t, page.HasNextPage)
}

func TestJobListDefaults(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo, newFakeUserRepo())

	// Zero and negative page/limit fall back to the defaults before the
	// repository sees the query.
	page, err := svc.List(context.Background(), types.JobQuery{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, types.DefaultJobPage, repo.lastQ.Page)
	assert.Equal(t, types.DefaultJobLimit, repo.lastQ.Limit)
	assert.Equal(t, types.SortByDate, repo.lastQ.SortBy)
	assert.Equal(t, types.SortDesc, repo.lastQ.SortOrder)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNextPage)
}

func TestJobUpdate(t *testing.T) {
	repo := newFakeJobRepo(types.Job{ID: 4, Title: "Engineer", Location: "Berlin", EmployerID: 7})
	svc := NewJobService(repo, newFakeUserRepo())

	title := "Senior Engineer"
	minSalary := int64(80000)
	job, err := svc.Update(context.Background(), owner, 4, JobUpdate{Title: &title, MinSalary: &minSalary})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", job.Title)
	assert.Equal(t, int64(80000), job.MinSalary)
	assert.Equal(t, "Berlin", job.Location)
}

func TestJobUpdateOwnership(t *testing.T) {
	repo := newFakeJobRepo(types.Job{ID: 4, Title: "Engineer", EmployerID: 7})
	svc := NewJobService(repo, newFakeUserRepo())

	title := "Revised"
	_, err := svc.Update(context.Background(), otherEmployer, 4, JobUpdate{Title: &title})
	assert.ErrorIs(t, err, policy.ErrNotOwner)

	_, err = svc.Update(context.Background(), seeker, 4, JobUpdate{Title: &title})
	assert.ErrorIs(t, err, policy.ErrRoleNotEligible)

	_, err = svc.Update(context.Background(), admin, 4, JobUpdate{Title: &title})
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), owner, 404, JobUpdate{Title: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestJobDelete(t *testing.T) {
	repo := newFakeJobRepo(types.Job{ID: 4, EmployerID: 7})
	svc := NewJobService(repo, newFakeUserRepo())

	assert.ErrorIs(t, svc.Delete(context.Background(), otherEmployer, 4), policy.ErrNotOwner)
	assert.NoError(t, svc.Delete(context.Background(), owner, 4))
	assert.ErrorIs(t, svc.Delete(context.Background(), owner, 4), store.ErrNotFound)
}
