package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpserver "github.com/zawlinnphyo/wordstake/internal/adapter/httpserver"
	"github.com/zawlinnphyo/wordstake/internal/config"
	"github.com/zawlinnphyo/wordstake/internal/domain"
	"github.com/zawlinnphyo/wordstake/internal/domain/mocks"
	"github.com/zawlinnphyo/wordstake/internal/usecase"
	"github.com/zawlinnphyo/wordstake/internal/wordcheck"
)

type busySubmitGuard struct{}

func (busySubmitGuard) Acquire(_ domain.Context, _ string) (func(), error) {
	return nil, domain.ErrSubmitInFlight
}

func newMilestoneServer(tasks *mocks.MockTaskRepository, milestones *mocks.MockMilestoneRepository) *httpserver.Server {
	cfg := config.Config{Port: 8080, AppEnv: "dev"}
	svc := usecase.NewMilestoneService(tasks, milestones)
	return httpserver.NewServer(cfg, svc, usecase.ValidationService{}, usecase.RefundService{}, nil, nil, nil)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (code string, details map[string]any) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code, body.Error.Details
}

func TestCreateTaskHandler_ValidationError(t *testing.T) {
	srv := newMilestoneServer(&mocks.MockTaskRepository{}, &mocks.MockMilestoneRepository{})
	router := chi.NewRouter()
	router.Post("/v1/tasks", srv.CreateTaskHandler())

	r := httptest.NewRequest(http.MethodPost, "/v1/tasks", strings.NewReader(`{"user_id":"u1"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	code, details := decodeError(t, w)
	require.Equal(t, "INVALID_ARGUMENT", code)
	require.Contains(t, details, "totalwords")
}

func TestCreateTaskHandler_Success(t *testing.T) {
	tasks := &mocks.MockTaskRepository{}
	tasks.On("Create", mock.Anything, mock.Anything).Return("task-1", nil)
	srv := newMilestoneServer(tasks, &mocks.MockMilestoneRepository{})
	router := chi.NewRouter()
	router.Post("/v1/tasks", srv.CreateTaskHandler())

	body := `{"user_id":"u1","title":"dissertation","total_words":3000,"duration_days":30,"deposit_amount":5000}`
	r := httptest.NewRequest(http.MethodPost, "/v1/tasks", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "task-1", resp["id"])
	require.Equal(t, "draft", resp["status"])
}

func TestMilestonesHandler_NotFound(t *testing.T) {
	milestones := &mocks.MockMilestoneRepository{}
	milestones.On("ListByTask", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	srv := newMilestoneServer(&mocks.MockTaskRepository{}, milestones)
	router := chi.NewRouter()
	router.Get("/v1/tasks/{id}/milestones", srv.MilestonesHandler())

	r := httptest.NewRequest(http.MethodGet, "/v1/tasks/missing/milestones", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	code, _ := decodeError(t, w)
	require.Equal(t, "NOT_FOUND", code)
}

func TestSubmitHandler_MissingSessionHeader(t *testing.T) {
	srv := httpserver.NewServer(config.Config{}, usecase.MilestoneService{}, usecase.ValidationService{}, usecase.RefundService{}, nil, nil, nil)
	router := chi.NewRouter()
	router.Post("/v1/tasks/{id}/days/{day}/submit", srv.SubmitHandler())

	r := httptest.NewRequest(http.MethodPost, "/v1/tasks/t1/days/1/submit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	code, _ := decodeError(t, w)
	require.Equal(t, "INVALID_ARGUMENT", code)
}

func TestSubmitHandler_InFlightConflict(t *testing.T) {
	validation := usecase.ValidationService{Guard: busySubmitGuard{}}
	srv := httpserver.NewServer(config.Config{}, usecase.MilestoneService{}, validation, usecase.RefundService{}, nil, nil, nil)
	router := chi.NewRouter()
	router.Post("/v1/tasks/{id}/days/{day}/submit", srv.SubmitHandler())

	r := httptest.NewRequest(http.MethodPost, "/v1/tasks/t1/days/1/submit", nil)
	r.Header.Set("X-Session-Id", "sess-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusConflict, w.Code)
	code, _ := decodeError(t, w)
	require.Equal(t, "SUBMIT_IN_FLIGHT", code)
}

func TestSubmitHandler_RejectsBadDay(t *testing.T) {
	srv := httpserver.NewServer(config.Config{}, usecase.MilestoneService{}, usecase.ValidationService{}, usecase.RefundService{}, nil, nil, nil)
	router := chi.NewRouter()
	router.Post("/v1/tasks/{id}/days/{day}/submit", srv.SubmitHandler())

	r := httptest.NewRequest(http.MethodPost, "/v1/tasks/t1/days/zero/submit", nil)
	r.Header.Set("X-Session-Id", "sess-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateWordsHandler_ReturnsPerTokenVerdicts(t *testing.T) {
	dict := &mocks.MockDictionaryClient{}
	dict.On("Source").Return("free").Maybe()
	dict.On("Lookup", mock.Anything, "apple").Return(true, nil)
	dict.On("Lookup", mock.Anything, "zzxqv").Return(false, nil)
	validation := usecase.ValidationService{Words: wordcheck.NewValidator(dict)}
	srv := httpserver.NewServer(config.Config{}, usecase.MilestoneService{}, validation, usecase.RefundService{}, nil, nil, nil)
	router := chi.NewRouter()
	router.Post("/v1/words/validate", srv.ValidateWordsHandler())

	r := httptest.NewRequest(http.MethodPost, "/v1/words/validate", strings.NewReader(`{"words":["apple","zzxqv"]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Results []struct {
			Word    string `json:"word"`
			IsValid bool   `json:"isValid"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	require.True(t, resp.Results[0].IsValid)
	require.False(t, resp.Results[1].IsValid)
}

func TestValidateWordsHandler_EmptyListRejected(t *testing.T) {
	srv := httpserver.NewServer(config.Config{}, usecase.MilestoneService{}, usecase.ValidationService{}, usecase.RefundService{}, nil, nil, nil)
	router := chi.NewRouter()
	router.Post("/v1/words/validate", srv.ValidateWordsHandler())

	r := httptest.NewRequest(http.MethodPost, "/v1/words/validate", strings.NewReader(`{"words":[]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
