package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	config "task-market.com/task-market/internal/configs"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
	"task-market.com/task-market/internal/moderation"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/services"
	"task-market.com/task-market/internal/trust"
)

type headerResolver struct{}

func (headerResolver) ResolveIdentity(ctx context.Context, r *http.Request) (string, error) {
	if id := r.Header.Get("X-User"); id != "" {
		return id, nil
	}
	return "", apperrors.ErrUnauthenticated
}

type syncAudit struct {
	logs *repository.ModerationLogRepository
}

func (a syncAudit) Record(entry *model.ModerationLog) {
	_ = a.logs.CreateModerationLog(context.Background(), entry)
}

func setupServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := config.NewDatabase("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tasks := repository.NewTaskRepository(db)
	apps := repository.NewApplicationRepository(db)
	logs := repository.NewModerationLogRepository(db)
	profiles := repository.NewProfileRepository(db)
	for _, id := range []string{"owner", "worker"} {
		if err := profiles.Upsert(context.Background(), &model.Profile{ID: id, Verified: true}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	taskService := services.NewTaskService(tasks, apps, logs, trust.NewScorer(profiles), moderation.NewEngine(nil), syncAudit{logs: logs})
	appService := services.NewApplicationService(tasks, apps, nil)

	e := echo.New()
	Register(e, NewHandler(taskService, appService), headerResolver{}, 1000)
	return e, db
}

func do(e *echo.Echo, method, path, user, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != "" {
		req.Header.Set("X-User", user)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validTask = `{
	"title": "Paint the garden fence",
	"description": "The fence is about twenty metres long and needs two coats of outdoor paint.",
	"category": "garden",
	"location": "Springfield",
	"price": "120"
}`

func createTask(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/tasks", "owner", validTask)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: %d %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Task struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"task"`
		Moderation struct {
			Status string   `json:"status"`
			Issues []string `json:"issues"`
		} `json:"moderation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Task.Status != "active" || body.Moderation.Status != "active" || len(body.Moderation.Issues) != 0 {
		t.Fatalf("unexpected create response %s", rec.Body.String())
	}
	return body.Task.ID
}

func submit(t *testing.T, e *echo.Echo, taskID string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/tasks/"+taskID+"/applications", "worker", `{"message":"I can start tomorrow"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	var app struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &app)
	if app.Status != "pending" {
		t.Fatalf("expected pending application, got %s", rec.Body.String())
	}
	return app.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestCreateTask_Unauthenticated(t *testing.T) {
	e, _ := setupServer(t)

	rec := do(e, http.MethodPost, "/tasks", "", validTask)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateTask_ValidationErrors(t *testing.T) {
	e, _ := setupServer(t)

	rec := do(e, http.MethodPost, "/tasks", "owner", `{"title":"Paint the garden fence"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Error != "validation" || len(body.Fields) != 4 {
		t.Fatalf("unexpected body %+v", body)
	}

	bad := strings.Replace(validTask, `"120"`, `"cheap"`, 1)
	if rec := do(e, http.MethodPost, "/tasks", "owner", bad); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non numeric price, got %d", rec.Code)
	}

	if rec := do(e, http.MethodPost, "/tasks", "owner", `{not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", rec.Code)
	}
}

func TestApplicationFlow(t *testing.T) {
	e, _ := setupServer(t)
	taskID := createTask(t, e)
	appID := submit(t, e, taskID)

	rec := do(e, http.MethodPost, "/tasks/"+taskID+"/applications", "worker", `{"message":"again"}`)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Message != "already applied" {
		t.Fatalf("expected already applied, got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/tasks/"+taskID+"/applications", "owner", `{"message":"me"}`)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Message != "cannot apply to own task" {
		t.Fatalf("expected own task error, got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPatch, "/applications/"+appID, "worker", `{"status":"accepted","taskId":"`+taskID+`"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for applicant, got %d", rec.Code)
	}

	rec = do(e, http.MethodPatch, "/applications/missing", "owner", `{"status":"accepted"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = do(e, http.MethodPatch, "/applications/"+appID, "owner", `{"status":"accepted","taskId":"`+taskID+`","requesterId":"owner"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Application struct {
			Status string `json:"status"`
		} `json:"application"`
		ContactUserID string `json:"contactUserId"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if res.Application.Status != "accepted" || res.ContactUserID != "worker" {
		t.Fatalf("unexpected transition response %s", rec.Body.String())
	}

	rec = do(e, http.MethodPatch, "/applications/"+appID, "owner", `{"status":"rejected"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"rejected"`) {
		t.Fatalf("expected reversal to succeed, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestModerationHistoryAndDelete(t *testing.T) {
	e, _ := setupServer(t)
	taskID := createTask(t, e)

	rec := do(e, http.MethodGet, "/tasks/"+taskID+"/moderation", "owner", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"action":"auto_approved"`) {
		t.Fatalf("unexpected history %d %s", rec.Code, rec.Body.String())
	}

	submit(t, e, taskID)
	rec = do(e, http.MethodDelete, "/tasks/"+taskID, "owner", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 deleting task with applications, got %d", rec.Code)
	}

	other := createTask(t, e)
	if rec := do(e, http.MethodDelete, "/tasks/"+other, "owner", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/tasks/"+other, "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestRepositoryErrorsAreNotLeaked(t *testing.T) {
	e, db := setupServer(t)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	rec := do(e, http.MethodGet, "/tasks", "", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Message != "internal server error" || strings.Contains(rec.Body.String(), "sql") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestListTasks(t *testing.T) {
	e, _ := setupServer(t)
	createTask(t, e)

	rec := do(e, http.MethodGet, "/tasks?category=garden&limit=5", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Fatalf("unexpected list %d %s", rec.Code, rec.Body.String())
	}

	if rec := do(e, http.MethodGet, "/tasks?limit=-1", "", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}
