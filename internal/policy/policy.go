// Package policy holds the access-control decisions for jobs, applications,
// and users in one place. Every function is a pure check over the caller
// identity and the ownership facts of the target resource; callers load the
// resource first and translate a denial into the HTTP failure they want.
package policy

import (
	"errors"

	"github.com/openhire/apiserver/types"
)

// ErrRoleNotEligible means the caller's role can never perform the operation.
var ErrRoleNotEligible = errors.New("role not eligible")

// ErrNotOwner means the caller's role could perform the operation, but the
// resource belongs to someone else.
var ErrNotOwner = errors.New("not owner")

// CanCreateJob allows only employers to post jobs.
func CanCreateJob(caller types.Caller) error {
	if caller.Role != types.RoleEmployer {
		return ErrRoleNotEligible
	}
	return nil
}

// CanMutateJob allows the owning employer or an admin to update or delete
// a job.
func CanMutateJob(caller types.Caller, employerID int) error {
	switch caller.Role {
	case types.RoleAdmin:
		return nil
	case types.RoleEmployer:
		if caller.ID != employerID {
			return ErrNotOwner
		}
		return nil
	default:
		return ErrRoleNotEligible
	}
}

// CanCreateApplication allows only job seekers to apply.
func CanCreateApplication(caller types.Caller) error {
	if caller.Role != types.RoleJobSeeker {
		return ErrRoleNotEligible
	}
	return nil
}

// CanAccessApplication decides single-application visibility, shared by
// read, update, and delete: the applicant, the employer owning the applied-to
// job, or an admin.
func CanAccessApplication(caller types.Caller, applicantID, jobEmployerID int) error {
	switch caller.Role {
	case types.RoleAdmin:
		return nil
	case types.RoleJobSeeker:
		if caller.ID != applicantID {
			return ErrNotOwner
		}
		return nil
	case types.RoleEmployer:
		if caller.ID != jobEmployerID {
			return ErrNotOwner
		}
		return nil
	default:
		return ErrRoleNotEligible
	}
}

// CanChangeApplicationStatus allows the employer owning the applied-to job
// or an admin to move an application between review states. Applicants may
// update their attachments but never their own status.
func CanChangeApplicationStatus(caller types.Caller, jobEmployerID int) error {
	switch caller.Role {
	case types.RoleAdmin:
		return nil
	case types.RoleEmployer:
		if caller.ID != jobEmployerID {
			return ErrNotOwner
		}
		return nil
	default:
		return ErrRoleNotEligible
	}
}

// CanListApplicationsForJob allows the employer owning the job to list its
// applications.
func CanListApplicationsForJob(caller types.Caller, jobEmployerID int) error {
	if caller.Role != types.RoleEmployer {
		return ErrRoleNotEligible
	}
	if caller.ID != jobEmployerID {
		return ErrNotOwner
	}
	return nil
}

// CanListOwnApplications allows job seekers to list their own applications.
func CanListOwnApplications(caller types.Caller) error {
	if caller.Role != types.RoleJobSeeker {
		return ErrRoleNotEligible
	}
	return nil
}

// CanMutateUser allows a user to update or delete only their own account.
func CanMutateUser(caller types.Caller, targetID int) error {
	if caller.ID != targetID {
		return ErrNotOwner
	}
	return nil
}

// ApplicationScope is the visibility window a role gets over the application
// collection on an unqualified list.
type ApplicationScope int

const (
	// ScopeNone means the caller sees nothing.
	ScopeNone ApplicationScope = iota

	// ScopeOwn limits the list to the caller's own applications.
	ScopeOwn

	// ScopeEmployer limits the list to applications for jobs the caller owns.
	ScopeEmployer

	// ScopeAll is the unrestricted admin view.
	ScopeAll
)

// ListApplicationsScope maps a caller role onto its visibility window.
func ListApplicationsScope(caller types.Caller) ApplicationScope {
	switch caller.Role {
	case types.RoleJobSeeker:
		return ScopeOwn
	case types.RoleEmployer:
		return ScopeEmployer
	case types.RoleAdmin:
		return ScopeAll
	default:
		return ScopeNone
	}
}
