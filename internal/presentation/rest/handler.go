package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/application/usecase"
	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
	"github.com/gagankishoreint-glitch/credai/pkg/auth"
)

// maxBodyBytes bounds request bodies; a full batch fits comfortably.
const maxBodyBytes = 4 << 20

// APIHandler serves the JSON API over HTTP.
type APIHandler struct {
	submit   *usecase.SubmitApplicationUseCase
	get      *usecase.GetApplicationUseCase
	list     *usecase.ListApplicationsUseCase
	decide   *usecase.DecideApplicationUseCase
	score    *usecase.ScoreApplicationUseCase
	batch    *usecase.ScoreBatchUseCase
	describe *usecase.DescribeModelUseCase
	logger   *slog.Logger
}

// NewAPIHandler creates the HTTP API handler.
func NewAPIHandler(
	submit *usecase.SubmitApplicationUseCase,
	get *usecase.GetApplicationUseCase,
	list *usecase.ListApplicationsUseCase,
	decide *usecase.DecideApplicationUseCase,
	score *usecase.ScoreApplicationUseCase,
	batch *usecase.ScoreBatchUseCase,
	describe *usecase.DescribeModelUseCase,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		submit:   submit,
		get:      get,
		list:     list,
		decide:   decide,
		score:    score,
		batch:    batch,
		describe: describe,
		logger:   logger,
	}
}

// RegisterRoutes attaches the API routes to the given mux.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/applications", h.submitApplication)
	mux.HandleFunc("GET /api/applications", h.listApplications)
	mux.HandleFunc("GET /api/applications/{id}", h.getApplication)
	mux.HandleFunc("POST /api/applications/{id}/decision", h.decideApplication)

	mux.HandleFunc("POST /api/score", h.scoreApplication)
	mux.HandleFunc("POST /api/score/batch", h.scoreBatch)
	mux.HandleFunc("GET /api/model", h.describeModel)
}

func (h *APIHandler) submitApplication(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromRequest(w, r)
	if !ok {
		return
	}
	var req dto.SubmitApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.UserID = requester.UserID

	resp, err := h.submit.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *APIHandler) listApplications(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := dto.ListApplicationsRequest{
		Requester: requester,
		Status:    q.Get("status"),
	}
	var err error
	if v := q.Get("userId"); v != "" {
		if req.UserID, err = uuid.Parse(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid userId")
			return
		}
	}
	if req.Limit, err = intParam(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if req.Offset, err = intParam(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	resp, err := h.list.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) getApplication(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromRequest(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	resp, err := h.get.Execute(r.Context(), dto.GetApplicationRequest{ApplicationID: id, Requester: requester})
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) decideApplication(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromRequest(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}
	var req dto.DecideApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ApplicationID = id
	req.Requester = requester

	resp, err := h.decide.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) scoreApplication(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if v := r.URL.Query().Get("explain"); v != "" {
		req.Explain, _ = strconv.ParseBool(v)
	}

	resp, err := h.score.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) scoreBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreBatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.batch.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) describeModel(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.describe.Execute())
}

// writeUseCaseError maps use-case errors onto HTTP statuses. Unexpected
// errors are logged and reported without detail.
func (h *APIHandler) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, code, "internal server error")
		return
	}
	writeError(w, code, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, valueobject.ErrApplicationNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, valueobject.ErrVersionConflict),
		errors.Is(err, model.ErrAlreadyDecided),
		errors.Is(err, model.ErrNotScored):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidApplication),
		errors.Is(err, model.ErrDecisionNotFinal),
		errors.Is(err, model.ErrMissingUnderwriter),
		errors.Is(err, valueobject.ErrInvalidDecision),
		errors.Is(err, valueobject.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func requesterFromRequest(w http.ResponseWriter, r *http.Request) (dto.Requester, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return dto.Requester{}, false
	}
	return dto.Requester{UserID: claims.UserID, Roles: claims.Roles}, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
