package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	reviewengine "codecomp/contexts/competition/review-engine"
	"codecomp/contexts/competition/review-engine/application/dispatcher"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	enginehttp "codecomp/contexts/competition/review-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "codecomp/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	engine  reviewengine.Module
	isAdmin func(slackUserID string) bool
	slack   *slackRoutes
}

type Options struct {
	Engine        reviewengine.Module
	IsAdmin       func(slackUserID string) bool
	Slack         SlackOptions
	Logger        *slog.Logger
	Addr          string
	EnableSwagger bool
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}
	isAdmin := opts.IsAdmin
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		engine:  opts.Engine,
		isAdmin: isAdmin,
		slack: &slackRoutes{
			engine:  opts.Engine,
			isAdmin: isAdmin,
			opts:    opts.Slack,
			logger:  logger,
		},
	}
	s.registerRoutes(opts.EnableSwagger)
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes(enableSwagger bool) {
	if enableSwagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	s.mux.HandleFunc("POST /slack/events", s.slack.handleEvents)
	s.mux.HandleFunc("POST /slack/actions", s.slack.handleActions)

	s.mux.HandleFunc("POST /v1/submissions", s.handleCreateSubmission)
	s.mux.HandleFunc("GET /v1/submissions", s.handleListSubmissions)
	s.mux.HandleFunc("GET /v1/submissions/{submission_id}", s.handleGetSubmission)
	s.mux.HandleFunc("POST /v1/submissions/{submission_id}/approve", s.handleApproveSubmission)
	s.mux.HandleFunc("POST /v1/submissions/{submission_id}/reject", s.handleRejectSubmission)
	s.mux.HandleFunc("POST /v1/reviews/claim", s.handleClaimReview)
	s.mux.HandleFunc("GET /v1/standings", s.handleStandings)
	s.mux.HandleFunc("GET /v1/challenges/left", s.handleChallengesLeft)
	s.mux.HandleFunc("GET /v1/challenges/random", s.handleRandomChallenge)
	s.mux.HandleFunc("POST /v1/challenges/surprise", s.handleSurpriseChallenge)
	s.mux.HandleFunc("POST /v1/queue/ensure", s.handleQueueMessage)
	s.mux.HandleFunc("POST /v1/semester/reset", s.handleResetSemester)
}

func (s *Server) identity(r *http.Request) (string, bool, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-Slack-User-Id"))
	if userID == "" {
		return "", false, false
	}
	return userID, s.isAdmin(userID), true
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := s.identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-Slack-User-Id header is required")
		return
	}
	var req enginehttp.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.CreateSubmissionHandler(r.Context(), userID, isAdmin, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.engine.Handler.ListSubmissionsHandler(
		r.Context(),
		query.Get("status"),
		query.Get("team"),
		query.Get("challenge_key"),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.GetSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveSubmission(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := s.identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-Slack-User-Id header is required")
		return
	}
	var req enginehttp.ApproveSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.ApproveSubmissionHandler(r.Context(), userID, isAdmin, r.PathValue("submission_id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectSubmission(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := s.identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-Slack-User-Id header is required")
		return
	}
	var req enginehttp.RejectSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.RejectSubmissionHandler(r.Context(), userID, isAdmin, r.PathValue("submission_id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClaimReview(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := s.identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-Slack-User-Id header is required")
		return
	}
	resp, err := s.engine.Handler.ClaimReviewHandler(r.Context(), userID, isAdmin)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := s.identity(r)
	resp, err := s.engine.Handler.StandingsHandler(r.Context(), userID, isAdmin)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChallengesLeft(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := s.identity(r)
	query := r.URL.Query()

	var pointsFilter *int
	if raw := query.Get("points"); raw != "" {
		points, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_points", "points must be an integer")
			return
		}
		pointsFilter = &points
	}

	resp, err := s.engine.Handler.ChallengesLeftHandler(r.Context(), userID, isAdmin, query.Get("team"), pointsFilter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRandomChallenge(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := s.identity(r)
	scope := dispatcher.RandomScopeUnclaimed
	if r.URL.Query().Get("scope") == "team" {
		scope = dispatcher.RandomScopeTeam
	}
	resp, err := s.engine.Handler.RandomChallengeHandler(r.Context(), userID, isAdmin, scope)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSurpriseChallenge(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := s.identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-Slack-User-Id header is required")
		return
	}
	var req enginehttp.SurpriseChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.SurpriseChallengeHandler(r.Context(), userID, isAdmin, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQueueMessage(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := s.identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-Slack-User-Id header is required")
		return
	}
	resp, err := s.engine.Handler.QueueMessageHandler(r.Context(), userID, isAdmin)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResetSemester(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := s.identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-Slack-User-Id header is required")
		return
	}
	resp, err := s.engine.Handler.ResetSemesterHandler(r.Context(), userID, isAdmin)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrMemberNotOnTeam):
		writeError(w, http.StatusNotFound, "member_not_on_team", err.Error())
	case errors.Is(err, domainerrors.ErrUnknownTeam):
		writeError(w, http.StatusNotFound, "unknown_team", err.Error())
	case errors.Is(err, domainerrors.ErrUnknownChallenge):
		writeError(w, http.StatusNotFound, "unknown_challenge", err.Error())
	case errors.Is(err, domainerrors.ErrMissingAttachment):
		writeError(w, http.StatusBadRequest, "missing_attachment", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domainerrors.ErrNotPending),
		errors.Is(err, domainerrors.ErrAlreadyReviewed):
		writeError(w, http.StatusConflict, "not_pending", err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyClaimed):
		writeError(w, http.StatusConflict, "already_claimed", err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, domainerrors.ErrWrongChannel):
		writeError(w, http.StatusForbidden, "wrong_channel", err.Error())
	case errors.Is(err, domainerrors.ErrStoreUnavailable),
		errors.Is(err, domainerrors.ErrPartialResetFailure):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, enginehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
