package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/openhire/apiserver/internal/services"
	"github.com/openhire/apiserver/types"
)

const (
	maxMultipartMemory = 32 << 20
	maxAttachmentBytes = 16 << 20

	formFieldResume      = "resume"
	formFieldCoverLetter = "coverLetter"
	formFieldStatus      = "status"
)

// ApplicationHandler provides HTTP handlers for applications.
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

// NewApplicationHandler constructs a handler with the provided service.
func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// ApplicationRouter registers application routes on the given router. Every
// route requires an authenticated caller.
func ApplicationRouter(
	r chi.Router,
	applicationService *services.ApplicationService,
	authMiddleware func(http.Handler) http.Handler,
	callerMiddleware func(http.Handler) http.Handler,
) {
	handler := NewApplicationHandler(applicationService)

	r.Use(authMiddleware, callerMiddleware)
	r.Post("/{jobID}", handler.CreateApplication)
	r.Get("/", handler.ListApplications)
	r.Route("/{applicationID}", func(r chi.Router) {
		r.Get("/", handler.GetApplication)
		r.Patch("/", handler.UpdateApplication)
		r.Delete("/", handler.DeleteApplication)
	})
}

// CreateApplication submits an application to a job. The body is a
// multipart form with a required resume file and an optional cover letter.
func (h *ApplicationHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobID, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	resume, err := parseUploadFile(r.MultipartForm, formFieldResume)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	coverLetter, err := parseUploadFile(r.MultipartForm, formFieldCoverLetter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.applicationService.Create(r.Context(), caller, jobID, resume, coverLetter)
	if err != nil {
		writeDomainError(w, err, "application")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListApplications returns the applications visible to the caller's role.
func (h *ApplicationHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	apps, err := h.applicationService.List(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err, "application")
		return
	}

	writeJSON(w, http.StatusOK, apps)
}

// ListMyApplications returns the caller's own applications.
func (h *ApplicationHandler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	apps, err := h.applicationService.ListMine(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err, "application")
		return
	}

	writeJSON(w, http.StatusOK, apps)
}

func (h *ApplicationHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	app, err := h.applicationService.Get(r.Context(), caller, id)
	if err != nil {
		writeDomainError(w, err, "application")
		return
	}

	writeJSON(w, http.StatusOK, app)
}

// UpdateApplication applies partial changes: a status move and/or
// replacement attachments. It accepts a multipart form (files plus a status
// field) or a plain JSON body for status-only updates.
func (h *ApplicationHandler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	update, err := parseApplicationUpdate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.applicationService.Update(r.Context(), caller, id, update)
	if err != nil {
		writeDomainError(w, err, "application")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	if err := h.applicationService.Delete(r.Context(), caller, id); err != nil {
		writeDomainError(w, err, "application")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "application deleted successfully"})
}

// UpdateApplicationRequest is the JSON form of a status-only update.
type UpdateApplicationRequest struct {
	Status *types.ApplicationStatus `json:"status"`
}

func parseApplicationUpdate(r *http.Request) (services.ApplicationUpdate, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req UpdateApplicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return services.ApplicationUpdate{}, errors.New("invalid request")
		}
		return services.ApplicationUpdate{Status: req.Status}, nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return services.ApplicationUpdate{}, errors.New("invalid multipart form")
	}

	var update services.ApplicationUpdate
	if raw := strings.TrimSpace(r.FormValue(formFieldStatus)); raw != "" {
		status := types.ApplicationStatus(raw)
		update.Status = &status
	}

	var err error
	if update.Resume, err = parseUploadFile(r.MultipartForm, formFieldResume); err != nil {
		return services.ApplicationUpdate{}, err
	}
	if update.CoverLetter, err = parseUploadFile(r.MultipartForm, formFieldCoverLetter); err != nil {
		return services.ApplicationUpdate{}, err
	}

	return update, nil
}

// parseUploadFile reads one optional attachment from the form. A missing
// field yields nil; the caller decides whether the attachment was required.
func parseUploadFile(form *multipart.Form, field string) (*services.FileUpload, error) {
	if form == nil {
		return nil, nil
	}

	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > 1 {
		return nil, fmt.Errorf("only one %s file is allowed", field)
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file", field)
	}

	data, err := readFileLimited(file, maxAttachmentBytes)
	_ = file.Close()
	if err != nil {
		return nil, err
	}

	return &services.FileUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
