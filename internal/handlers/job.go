package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/openhire/apiserver/internal/services"
	"github.com/openhire/apiserver/types"
)

// JobHandler provides HTTP handlers for job postings.
type JobHandler struct {
	jobService         *services.JobService
	applicationService *services.ApplicationService
}

// NewJobHandler constructs a handler with the provided services.
func NewJobHandler(jobService *services.JobService, applicationService *services.ApplicationService) *JobHandler {
	return &JobHandler{
		jobService:         jobService,
		applicationService: applicationService,
	}
}

// JobRouter registers job routes on the given router. Listing and single
// reads are public; everything else requires an authenticated caller.
func JobRouter(
	r chi.Router,
	jobService *services.JobService,
	applicationService *services.ApplicationService,
	authMiddleware func(http.Handler) http.Handler,
	callerMiddleware func(http.Handler) http.Handler,
) {
	handler := NewJobHandler(jobService, applicationService)

	r.Get("/", handler.ListJobs)
	r.With(authMiddleware, callerMiddleware).Post("/", handler.CreateJob)
	r.Route("/{jobID}", func(r chi.Router) {
		r.Get("/", handler.GetJob)
		r.With(authMiddleware, callerMiddleware).Patch("/", handler.UpdateJob)
		r.With(authMiddleware, callerMiddleware).Delete("/", handler.DeleteJob)
		r.With(authMiddleware, callerMiddleware).Get("/applications", handler.ListJobApplications)
	})
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query, err := parseJobQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.jobService.List(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := h.jobService.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "job")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	if req.Title == "" || req.Location == "" {
		writeError(w, http.StatusBadRequest, "title and location are required")
		return
	}
	if req.JobType != "" && !req.JobType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid job type")
		return
	}

	created, err := h.jobService.Create(r.Context(), caller, types.Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		MinSalary:   req.MinSalary,
		MaxSalary:   req.MaxSalary,
		JobType:     req.JobType,
		EmployerID:  req.EmployerID,
	})
	if err != nil {
		writeDomainError(w, err, "job")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.JobType != nil && !req.JobType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid job type")
		return
	}

	updated, err := h.jobService.Update(r.Context(), caller, id, services.JobUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		MinSalary:   req.MinSalary,
		MaxSalary:   req.MaxSalary,
		JobType:     req.JobType,
	})
	if err != nil {
		writeDomainError(w, err, "job")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	if err := h.jobService.Delete(r.Context(), caller, id); err != nil {
		writeDomainError(w, err, "job")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "job deleted successfully"})
}

// ListJobApplications returns the applications submitted to one job, for the
// employer owning it.
func (h *JobHandler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	apps, err := h.applicationService.ListForJob(r.Context(), caller, id)
	if err != nil {
		writeDomainError(w, err, "application")
		return
	}

	writeJSON(w, http.StatusOK, apps)
}

// CreateJobRequest is the JSON payload for posting a job. EmployerID is
// optional and defaults to the caller.
type CreateJobRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	MinSalary   int64         `json:"min_salary"`
	MaxSalary   int64         `json:"max_salary"`
	JobType     types.JobType `json:"job_type"`
	EmployerID  int           `json:"employer_id"`
}

// UpdateJobRequest is the JSON payload for a partial job update.
type UpdateJobRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Location    *string        `json:"location"`
	MinSalary   *int64         `json:"min_salary"`
	MaxSalary   *int64         `json:"max_salary"`
	JobType     *types.JobType `json:"job_type"`
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// parseJobQuery builds the listing query from untrusted URL parameters.
// Malformed values are rejected; out-of-range page/limit fall back to
// defaults inside Normalize.
func parseJobQuery(r *http.Request) (types.JobQuery, error) {
	values := r.URL.Query()
	var q types.JobQuery

	if raw := strings.TrimSpace(values.Get("jobType")); raw != "" {
		jobType := types.JobType(raw)
		if !jobType.Valid() {
			return types.JobQuery{}, errors.New("invalid job type filter")
		}
		q.JobType = jobType
	}

	q.Title = strings.TrimSpace(values.Get("title"))
	q.Location = strings.TrimSpace(values.Get("location"))

	var err error
	if q.MinSalary, err = parseOptionalSalary(values.Get("minSalary")); err != nil {
		return types.JobQuery{}, errors.New("invalid minSalary")
	}
	if q.MaxSalary, err = parseOptionalSalary(values.Get("maxSalary")); err != nil {
		return types.JobQuery{}, errors.New("invalid maxSalary")
	}

	if raw := strings.TrimSpace(values.Get("sortBy")); raw != "" {
		sortBy := types.SortField(raw)
		if !sortBy.Valid() {
			return types.JobQuery{}, errors.New("invalid sortBy")
		}
		q.SortBy = sortBy
	}
	if raw := strings.TrimSpace(values.Get("sortOrder")); raw != "" {
		sortOrder := types.SortOrder(raw)
		if !sortOrder.Valid() {
			return types.JobQuery{}, errors.New("invalid sortOrder")
		}
		q.SortOrder = sortOrder
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if q.Page, err = strconv.Atoi(raw); err != nil {
			return types.JobQuery{}, errors.New("invalid page")
		}
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		if q.Limit, err = strconv.Atoi(raw); err != nil {
			return types.JobQuery{}, errors.New("invalid limit")
		}
	}

	q.Normalize()
	return q, nil
}

func parseOptionalSalary(value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
