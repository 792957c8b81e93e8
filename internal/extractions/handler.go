package extractions

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/syllascan/internal/documents"
	"github.com/JaimeStill/syllascan/internal/usage"
	"github.com/JaimeStill/syllascan/internal/workflow"
	"github.com/JaimeStill/syllascan/pkg/auth"
	"github.com/JaimeStill/syllascan/pkg/handlers"
	"github.com/JaimeStill/syllascan/pkg/routes"
	"github.com/JaimeStill/syllascan/pkg/storage"
)

const formMemory = 32 << 20

// Handler provides the extraction endpoint.
type Handler struct {
	rt      *workflow.Runtime
	meter   Meter
	archive Archive
	cfg     Config
	logger  *slog.Logger
}

// NewHandler creates a Handler. meter and archive may be nil, in which case
// every request uses the server credential and uploads are not archived.
func NewHandler(rt *workflow.Runtime, meter Meter, archive Archive, cfg Config, logger *slog.Logger) *Handler {
	return &Handler{
		rt:      rt,
		meter:   meter,
		archive: archive,
		cfg:     cfg,
		logger:  logger.With("handler", "extractions"),
	}
}

// Routes returns the route group for the extraction endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/extract-events",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Extract},
		},
	}
}

// Extract runs the pipeline over every file field in the multipart body.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, identified := auth.FromContext(ctx)
	if h.cfg.RequireAuth && !identified {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthenticated)
		return
	}

	if h.cfg.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	}
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, documents.ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, rejected := documents.Collect(r.MultipartForm, h.cfg.Limits)
	fileErrors := make([]workflow.FileError, 0, len(rejected))
	for _, rej := range rejected {
		fileErrors = append(fileErrors, workflow.NewFileError(rej.Name, rej.Err))
	}

	if len(files) == 0 {
		body := map[string]any{"error": documents.ErrNoFiles.Error()}
		if len(fileErrors) > 0 {
			body["errors"] = fileErrors
		}
		h.logger.WarnContext(ctx, "no files accepted", "rejected", len(fileErrors))
		handlers.RespondJSON(w, http.StatusBadRequest, body)
		return
	}

	cred := usage.Credential{Source: usage.SourceServer}
	if identified && h.meter != nil {
		resolved, err := h.meter.Resolve(ctx, caller.UserID)
		if errors.Is(err, usage.ErrKeyRequired) {
			respondKeyRequired(w, err, nil)
			return
		}
		if err != nil {
			respondFailure(w, h.logger, err)
			return
		}
		cred = resolved
	}

	if identified {
		h.archiveFiles(r, caller.UserID, files)
	}

	h.logger.InfoContext(ctx, "extraction started",
		"files", len(files),
		"rejected", len(fileErrors),
		"credential", cred.Source,
	)

	result := workflow.Execute(ctx, h.rt, files, cred.Token)
	fileErrors = append(fileErrors, result.Errors...)

	if len(result.Events) > 0 && identified && h.meter != nil && cred.Metered() {
		if _, err := h.meter.Increment(ctx, caller.UserID, caller.Email); err != nil {
			h.logger.ErrorContext(ctx, "usage not recorded", "user", caller.UserID, "error", err)
		}
	}

	if len(result.Events) == 0 {
		h.respondEmpty(w, files, result, fileErrors)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Events: result.Events,
		Count:  len(result.Events),
		Errors: fileErrors,
	})
}

func (h *Handler) respondEmpty(w http.ResponseWriter, files []documents.File, result *workflow.Result, fileErrors []workflow.FileError) {
	allFailed := len(result.Errors) == len(files)

	if allFailed && result.RequiresKey() {
		respondKeyRequired(w, result.KeyError(), fileErrors)
		return
	}

	if allFailed && errors.Is(result.Errors[0].Err, workflow.ErrNotConfigured) {
		handlers.RespondJSON(w, workflow.MapHTTPStatus(workflow.ErrNotConfigured), map[string]any{
			"error":   "Failed to process files",
			"details": result.Errors[0].Error,
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Message: "No events found in the uploaded files",
		Errors:  fileErrors,
	})
}

func (h *Handler) archiveFiles(r *http.Request, userID string, files []documents.File) {
	if h.archive == nil {
		return
	}

	for i := range files {
		key := storage.Key("uploads", userID, uuid.NewString(), files[i].Name)
		if err := h.archive.Upload(r.Context(), key, bytes.NewReader(files[i].Data), files[i].ContentType); err != nil {
			h.logger.WarnContext(r.Context(), "upload not archived", "file", files[i].Name, "error", err)
			continue
		}
		files[i].Key = key
	}
}

func respondKeyRequired(w http.ResponseWriter, err error, fileErrors []workflow.FileError) {
	body := map[string]any{
		"error":       err.Error(),
		"requiresKey": true,
	}
	if len(fileErrors) > 0 {
		body["errors"] = fileErrors
	}
	handlers.RespondJSON(w, http.StatusForbidden, body)
}

func respondFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("extraction failed", "error", err)
	handlers.RespondJSON(w, http.StatusInternalServerError, map[string]any{
		"error":   "Failed to process files",
		"details": err.Error(),
	})
}
