package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/openhire/apiserver/internal/policy"
	"github.com/openhire/apiserver/internal/services"
	"github.com/openhire/apiserver/internal/store"
	"github.com/openhire/apiserver/types"
)

type contextKey string

const (
	contextSubjectKey contextKey = "sub"
	contextCallerKey  contextKey = "caller"
)

func userIDFromContext(ctx context.Context) (int, error) {
	value := ctx.Value(contextSubjectKey)
	switch subject := value.(type) {
	case int:
		if subject < 1 {
			return 0, errors.New("invalid subject")
		}
		return subject, nil
	case int64:
		if subject < 1 {
			return 0, errors.New("invalid subject")
		}
		return int(subject), nil
	case float64:
		if subject < 1 {
			return 0, errors.New("invalid subject")
		}
		return int(subject), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(subject))
		if err != nil || parsed < 1 {
			return 0, errors.New("invalid subject")
		}
		return parsed, nil
	default:
		return 0, errors.New("missing subject")
	}
}

func callerFromContext(ctx context.Context) (types.Caller, error) {
	caller, ok := ctx.Value(contextCallerKey).(types.Caller)
	if !ok || caller.ID < 1 {
		return types.Caller{}, errors.New("missing caller")
	}
	return caller, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeDomainError maps service and store failures onto the HTTP taxonomy
// in one place so the job and application surfaces cannot drift apart:
// missing rows are 404, policy denials 403, bad input 400, uniqueness
// conflicts 409, everything else 500.
func writeDomainError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, "duplicate "+resource)
	case errors.Is(err, policy.ErrRoleNotEligible), errors.Is(err, policy.ErrNotOwner):
		writeError(w, http.StatusForbidden, "you do not have permission to access this "+resource)
	case errors.Is(err, services.ErrResumeRequired):
		writeError(w, http.StatusBadRequest, "resume is required")
	case errors.Is(err, services.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid application status")
	case errors.Is(err, services.ErrNotEmployer):
		writeError(w, http.StatusBadRequest, "referenced user is not an employer")
	default:
		writeError(w, http.StatusInternalServerError, "failed to process "+resource)
	}
}

func parseIDParam(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
