package policy

import (
	"testing"

	"github.com/openhire/apiserver/types"
	"github.com/stretchr/testify/assert"
)

func TestCanCreateJob(t *testing.T) {
	assert.NoError(t, CanCreateJob(types.Caller{ID: 1, Role: types.RoleEmployer}))
	assert.ErrorIs(t, CanCreateJob(types.Caller{ID: 1, Role: types.RoleJobSeeker}), ErrRoleNotEligible)
	assert.ErrorIs(t, CanCreateJob(types.Caller{ID: 1, Role: types.RoleAdmin}), ErrRoleNotEligible)
}

func TestCanMutateJob(t *testing.T) {
	const employerID = 7

	tests := []struct {
		name   string
		caller types.Caller
		want   error
	}{
		{"owning employer", types.Caller{ID: employerID, Role: types.RoleEmployer}, nil},
		{"other employer", types.Caller{ID: 8, Role: types.RoleEmployer}, ErrNotOwner},
		{"admin", types.Caller{ID: 99, Role: types.RoleAdmin}, nil},
		{"job seeker", types.Caller{ID: employerID, Role: types.RoleJobSeeker}, ErrRoleNotEligible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanMutateJob(tt.caller, employerID)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestCanCreateApplication(t *testing.T) {
	assert.NoError(t, CanCreateApplication(types.Caller{ID: 1, Role: types.RoleJobSeeker}))
	assert.ErrorIs(t, CanCreateApplication(types.Caller{ID: 1, Role: types.RoleEmployer}), ErrRoleNotEligible)
	assert.ErrorIs(t, CanCreateApplication(types.Caller{ID: 1, Role: types.RoleAdmin}), ErrRoleNotEligible)
}

func TestCanAccessApplication(t *testing.T) {
	const (
		applicantID   = 3
		jobEmployerID = 7
	)

	tests := []struct {
		name   string
		caller types.Caller
		want   error
	}{
		{"applicant", types.Caller{ID: applicantID, Role: types.RoleJobSeeker}, nil},
		{"other job seeker", types.Caller{ID: 4, Role: types.RoleJobSeeker}, ErrNotOwner},
		{"owning employer", types.Caller{ID: jobEmployerID, Role: types.RoleEmployer}, nil},
		{"other employer", types.Caller{ID: 8, Role: types.RoleEmployer}, ErrNotOwner},
		{"admin", types.Caller{ID: 99, Role: types.RoleAdmin}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAccessApplication(tt.caller, applicantID, jobEmployerID)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestCanChangeApplicationStatus(t *testing.T) {
	const jobEmployerID = 7

	assert.NoError(t, CanChangeApplicationStatus(types.Caller{ID: jobEmployerID, Role: types.RoleEmployer}, jobEmployerID))
	assert.NoError(t, CanChangeApplicationStatus(types.Caller{ID: 99, Role: types.RoleAdmin}, jobEmployerID))
	assert.ErrorIs(t, CanChangeApplicationStatus(types.Caller{ID: 8, Role: types.RoleEmployer}, jobEmployerID), ErrNotOwner)

	// Applicants never move their own application between review states.
	assert.ErrorIs(t, CanChangeApplicationStatus(types.Caller{ID: 3, Role: types.RoleJobSeeker}, jobEmployerID), ErrRoleNotEligible)
}

func TestCanListApplicationsForJob(t *testing.T) {
	const jobEmployerID = 7

	assert.NoError(t, CanListApplicationsForJob(types.Caller{ID: jobEmployerID, Role: types.RoleEmployer}, jobEmployerID))
	assert.ErrorIs(t, CanListApplicationsForJob(types.Caller{ID: 8, Role: types.RoleEmployer}, jobEmployerID), ErrNotOwner)
	assert.ErrorIs(t, CanListApplicationsForJob(types.Caller{ID: 3, Role: types.RoleJobSeeker}, jobEmployerID), ErrRoleNotEligible)
}

func TestCanMutateUser(t *testing.T) {
	assert.NoError(t, CanMutateUser(types.Caller{ID: 5, Role: types.RoleJobSeeker}, 5))
	assert.ErrorIs(t, CanMutateUser(types.Caller{ID: 5, Role: types.RoleJobSeeker}, 6), ErrNotOwner)

	// No admin override on the user surface: self only.
	assert.ErrorIs(t, CanMutateUser(types.Caller{ID: 99, Role: types.RoleAdmin}, 5), ErrNotOwner)
}

func TestListApplicationsScope(t *testing.T) {
	assert.Equal(t, ScopeOwn, ListApplicationsScope(types.Caller{ID: 1, Role: types.RoleJobSeeker}))
	assert.Equal(t, ScopeEmployer, ListApplicationsScope(types.Caller{ID: 1, Role: types.RoleEmployer}))
	assert.Equal(t, ScopeAll, ListApplicationsScope(types.Caller{ID: 1, Role: types.RoleAdmin}))
	assert.Equal(t, ScopeNone, ListApplicationsScope(types.Caller{ID: 1, Role: "visitor"}))
}
