package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zawlinnphyo/wordstake/internal/config"
	"github.com/zawlinnphyo/wordstake/internal/domain"
	"github.com/zawlinnphyo/wordstake/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Milestones usecase.MilestoneService
	Validation usecase.ValidationService
	Refunds    usecase.RefundService
	Evals      domain.EvaluationRepository
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, milestones usecase.MilestoneService, validation usecase.ValidationService, refunds usecase.RefundService, evals domain.EvaluationRepository, dbCheck, redisCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Milestones: milestones, Validation: validation, Refunds: refunds, Evals: evals, DBCheck: dbCheck, RedisCheck: redisCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// decodeValid decodes a JSON body into req and runs struct validation.
func decodeValid(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
		return false
	}
	if err := getValidator().Struct(req); err != nil {
		verrs := map[string]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				verrs[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
		return false
	}
	return true
}

func dayParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 {
		writeError(w, r, fmt.Errorf("%w: day must be a positive integer", domain.ErrInvalidArgument), nil)
		return 0, false
	}
	return day, true
}

// ValidateWordsHandler runs the fast per-keystroke word check.
func (s *Server) ValidateWordsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Words []string `json:"words" validate:"required,min=1,max=500"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		results := s.Validation.CheckWords(r.Context(), req.Words)
		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	}
}

// CreateTaskHandler creates a draft task.
func (s *Server) CreateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID        string `json:"user_id" validate:"required"`
			Title         string `json:"title" validate:"required,max=300"`
			TotalWords    int    `json:"total_words" validate:"required,gt=0"`
			DurationDays  int    `json:"duration_days" validate:"required,gt=0"`
			DepositAmount int64  `json:"deposit_amount" validate:"required,gt=0"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		id, err := s.Milestones.CreateTask(r.Context(), req.UserID, req.Title, req.TotalWords, req.DurationDays, req.DepositAmount)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id, "status": string(domain.TaskDraft)})
	}
}

// ActivateTaskHandler flips a draft task to active and returns its schedule.
func (s *Server) ActivateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := s.Milestones.ActivateTask(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"milestones": toMilestoneDTOs(ms)})
	}
}

// MilestonesHandler returns the task schedule with per-day progress.
func (s *Server) MilestonesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := s.Milestones.Schedule(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"milestones": toMilestoneDTOs(ms)})
	}
}

// SaveContentHandler overwrites the day's content blob.
func (s *Server) SaveContentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dayParam(w, r)
		if !ok {
			return
		}
		var req struct {
			Content string `json:"content" validate:"required"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		count, err := s.Validation.SaveContent(r.Context(), chi.URLParam(r, "id"), day, req.Content)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"word_count": count})
	}
}

// SubmitHandler runs the full validation pipeline on the day's saved
// content. The session id keys the single-in-flight guard.
func (s *Server) SubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dayParam(w, r)
		if !ok {
			return
		}
		sessionID := r.Header.Get("X-Session-Id")
		if sessionID == "" {
			writeError(w, r, fmt.Errorf("%w: X-Session-Id header required", domain.ErrInvalidArgument), nil)
			return
		}
		res, err := s.Validation.Submit(r.Context(), chi.URLParam(r, "id"), day, sessionID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toSubmissionDTO(res))
	}
}

// EvaluationsHandler returns the day's audit records.
func (s *Server) EvaluationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dayParam(w, r)
		if !ok {
			return
		}
		recs, err := s.Evals.ListByDay(r.Context(), chi.URLParam(r, "id"), day)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"evaluations": toEvaluationDTOs(recs)})
	}
}

// CreateRefundHandler opens a refund claim for an eligible milestone.
func (s *Server) CreateRefundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TaskID    string `json:"task_id" validate:"required"`
			DayNumber int    `json:"day_number" validate:"required,gt=0"`
			Amount    int64  `json:"amount" validate:"gte=0"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		created, err := s.Refunds.Create(r.Context(), req.TaskID, req.DayNumber, req.Amount)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, toRefundDTO(created))
	}
}

// RefundHandler returns one refund claim.
func (s *Server) RefundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := s.Refunds.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toRefundDTO(req))
	}
}

// RefundBalanceHandler returns the user's cumulative completed refunds.
func (s *Server) RefundBalanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bal, err := s.Refunds.Balance(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"balance": bal})
	}
}

// HealthzHandler is the liveness probe.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler probes the database and Redis.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 2)
		allOK := true
		probe := func(name string, fn func(context.Context) error) {
			if fn == nil {
				return
			}
			if err := fn(ctx); err != nil {
				allOK = false
				checks = append(checks, check{Name: name, OK: false, Details: err.Error()})
				return
			}
			checks = append(checks, check{Name: name, OK: true})
		}
		probe("db", s.DBCheck)
		probe("redis", s.RedisCheck)

		status := http.StatusOK
		if !allOK {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"checks": checks})
	}
}
