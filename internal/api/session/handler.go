package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vocaprep/interview-engine/internal/entity"
	"github.com/vocaprep/interview-engine/internal/pkg/formatter"
	"github.com/vocaprep/interview-engine/internal/pkg/logger"
	"github.com/vocaprep/interview-engine/internal/pkg/response"
	"github.com/vocaprep/interview-engine/internal/pkg/validator"
	"github.com/vocaprep/interview-engine/internal/usecase/report"
	"go.uber.org/zap"
)

// maxAudioFormBytes caps the in-memory part of multipart parsing.
const maxAudioFormBytes = 10 << 20

type Handler struct {
	usecase   SessionUsecase
	validator *validator.Validator
}

func NewHandler(usecase SessionUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartSession handles POST /interview-session - Start new session
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	var req entity.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStartSession(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, response.StatusFromError(err), err.Error())
		return
	}

	session, question, err := h.usecase.StartSession(ctx, &req)
	if err != nil {
		h.respondUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, entity.StartSessionResponse{
		SessionID: session.ID,
		DomainID:  session.DomainID,
		Question:  *question,
	})
}

// GetSession handles GET /interview-session/{id} - Get session status
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", chi.URLParam(r, "id")),
		zap.String("action", "GetSession"),
	)

	session, err := h.usecase.GetSession(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.respondUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// SubmitTextAnswer handles POST /interview-session/{id}/answer - Submit text answer
func (h *Handler) SubmitTextAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SubmitTextAnswer"),
	)

	var req entity.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateSubmitAnswer(&req); err != nil {
		response.Error(w, response.StatusFromError(err), err.Error())
		return
	}

	feedback, exhausted, err := h.usecase.SubmitTextAnswer(ctx, sessionID, req.Answer)
	if err != nil {
		h.respondUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.SubmitAnswerResponse{
		Feedback:  *feedback,
		Exhausted: exhausted,
	})
}

// SubmitAudioAnswer handles POST /interview-session/{id}/answer/audio - Submit audio answer
func (h *Handler) SubmitAudioAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SubmitAudioAnswer"),
	)

	if err := r.ParseMultipartForm(maxAudioFormBytes); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		ctxzap.Error(ctx, "missing audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	req := entity.SubmitAudioAnswerRequest{AudioFile: header}
	if err := h.validator.ValidateSubmitAudioAnswer(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate audio file", zap.Error(err))
		response.Error(w, response.StatusFromError(err), err.Error())
		return
	}

	audioData, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	ctxzap.Info(ctx, "submitting audio answer", zap.Int64("size_bytes", header.Size))

	feedback, exhausted, err := h.usecase.SubmitAudioAnswer(ctx, sessionID, audioData, header.Filename)
	if err != nil {
		h.respondUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.SubmitAnswerResponse{
		Feedback:  *feedback,
		Exhausted: exhausted,
	})
}

// NextQuestion handles POST /interview-session/{id}/next-question - Issue next question
func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "NextQuestion"),
	)

	question, err := h.usecase.NextQuestion(ctx, sessionID)
	if err != nil {
		h.respondUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, question)
}

// EndSession handles POST /interview-session/{id}/end - Complete session and get report
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "EndSession"),
	)

	session, err := h.usecase.EndSession(ctx, sessionID)
	if err != nil {
		h.respondUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, session.Report)
}

// GetReport handles GET /interview-session/{id}/report - Export report as md/pdf/docx
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetReport"),
	)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	factory := formatter.NewFactory()
	fmtr, err := factory.Create(entity.ReportFormat(formatParam))
	if err != nil {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		response.Error(w, http.StatusBadRequest, "format must be one of: md, pdf, docx")
		return
	}

	rep, err := h.usecase.GetReport(ctx, sessionID)
	if err != nil {
		h.respondUsecaseError(ctx, w, err)
		return
	}

	body, err := fmtr.Format(report.Render(rep))
	if err != nil {
		ctxzap.Error(ctx, "failed to format report", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to format report")
		return
	}

	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"interview-report-%s%s\"", sessionID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) respondUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	status := response.StatusFromError(err)
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, "usecase call failed", zap.Error(err))
	} else {
		ctxzap.Warn(ctx, "usecase call rejected", zap.Error(err))
	}
	response.Error(w, status, err.Error())
}
