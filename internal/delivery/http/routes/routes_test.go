package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ats/internal/delivery/http/handler"
	"ats/internal/delivery/http/middleware"
	v1 "ats/internal/delivery/http/routes/v1"
	"ats/internal/domain/application"
	"ats/internal/domain/jobrole"
	"ats/internal/pkg/jwt"
	"ats/internal/repository"
	"ats/internal/usecase"
	"ats/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeApps struct {
	lastActor  usecase.Actor
	lastCreate usecase.CreateApplicationInput
	lastFilter usecase.ListFilter
	lastUpdate usecase.StatusUpdateInput
	detail     repository.ApplicationDetail
	err        error
}

func (f *fakeApps) Create(_ context.Context, actor usecase.Actor, in usecase.CreateApplicationInput) (repository.ApplicationDetail, error) {
	f.lastActor, f.lastCreate = actor, in
	return f.detail, f.err
}

func (f *fakeApps) List(_ context.Context, actor usecase.Actor, filter usecase.ListFilter) ([]repository.ApplicationDetail, error) {
	f.lastActor, f.lastFilter = actor, filter
	if f.err != nil {
		return nil, f.err
	}
	return []repository.ApplicationDetail{f.detail}, nil
}

func (f *fakeApps) Get(_ context.Context, actor usecase.Actor, _ uuid.UUID) (repository.ApplicationDetail, error) {
	f.lastActor = actor
	return f.detail, f.err
}

func (f *fakeApps) UpdateStatusManual(_ context.Context, actor usecase.Actor, in usecase.StatusUpdateInput) (repository.ApplicationDetail, error) {
	f.lastActor, f.lastUpdate = actor, in
	return f.detail, f.err
}

func (f *fakeApps) UpdateStatus(_ context.Context, actor usecase.Actor, in usecase.StatusUpdateInput) (repository.ApplicationDetail, error) {
	f.lastActor, f.lastUpdate = actor, in
	return f.detail, f.err
}

type fakeJobRoles struct {
	items []jobrole.JobRole
	err   error
}

func (f *fakeJobRoles) ListPublic(context.Context) ([]jobrole.JobRole, error) { return f.items, f.err }
func (f *fakeJobRoles) List(context.Context, usecase.Actor) ([]jobrole.JobRole, error) {
	return f.items, f.err
}
func (f *fakeJobRoles) Create(_ context.Context, _ usecase.Actor, in usecase.JobRoleInput) (jobrole.JobRole, error) {
	return jobrole.JobRole{ID: uuid.New(), Title: in.Title}, f.err
}
func (f *fakeJobRoles) Update(_ context.Context, _ usecase.Actor, id uuid.UUID, in usecase.JobRoleInput) (jobrole.JobRole, error) {
	return jobrole.JobRole{ID: id, Title: in.Title}, f.err
}
func (f *fakeJobRoles) Delete(context.Context, usecase.Actor, uuid.UUID) error { return f.err }

type fakeDashboard struct{}

func (fakeDashboard) Stats(context.Context, usecase.Actor) (usecase.DashboardStats, error) {
	return usecase.DashboardStats{
		TotalApplications: 3,
		StatusCounts:      []usecase.StatusCountItem{{Status: application.StatusApplied, Count: 3}},
	}, nil
}

type fakeBot struct {
	err error
}

func (f *fakeBot) RunPass(context.Context, usecase.Actor) (usecase.BotPassResult, error) {
	if f.err != nil {
		return usecase.BotPassResult{}, f.err
	}
	return usecase.BotPassResult{
		ProcessedCount: 1,
		Results: []usecase.BotTransitionResult{{
			ApplicationID: uuid.New(),
			OldStatus:     application.StatusApplied,
			NewStatus:     application.StatusReviewed,
			Comment:       application.BotReviewedComment,
		}},
	}, nil
}

func (f *fakeBot) ListTechnicalApplications(context.Context, usecase.Actor) ([]repository.ApplicationDetail, error) {
	return nil, f.err
}

func (f *fakeBot) ListLogs(context.Context, usecase.Actor) ([]usecase.BotLogEntry, error) {
	return nil, f.err
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type testServer struct {
	app      *fiber.App
	jwt      *jwt.HMACService
	apps     *fakeApps
	jobRoles *fakeJobRoles
	bot      *fakeBot
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	created, err := application.New(application.NewInput{
		ApplicantID: uuid.New(),
		JobRoleID:   uuid.New(),
		IsTechnical: true,
		Experience:  3,
	}, time.Now())
	if err != nil {
		t.Fatalf("new application: %v", err)
	}

	s := &testServer{
		jwt:      jwt.NewHMACService("test-secret", time.Minute),
		apps:     &fakeApps{detail: repository.ApplicationDetail{Application: created, ApplicantName: "Ayu", JobRoleTitle: "Backend Engineer"}},
		jobRoles: &fakeJobRoles{items: []jobrole.JobRole{{ID: uuid.New(), Title: "Backend Engineer", IsTechnical: true}}},
		bot:      &fakeBot{},
	}

	s.app = fiber.New()
	s.app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	NewRegistry(
		handler.NewHealthHandler(pinger{}, pinger{err: errors.New("down")}),
		ws.NewHandler(ws.NewHub(nil), nil),
		middleware.NewAuthMiddleware(s.jwt),
		v1.Handlers{
			JobRoles:     handler.NewJobRoleHandler(s.jobRoles),
			Applications: handler.NewApplicationHandler(s.apps),
			Admin:        handler.NewAdminHandler(s.apps, s.jobRoles, fakeDashboard{}),
			Bot:          handler.NewBotHandler(s.bot),
		},
	).Register(s.app)
	return s
}

func (s *testServer) token(t *testing.T, role application.Role) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(uuid.New(), "user@example.com", role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, semanticResponse) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	if out.Status != resp.StatusCode {
		t.Fatalf("%s %s: envelope status %d != http status %d", method, path, out.Status, resp.StatusCode)
	}
	return resp.StatusCode, out
}

func TestRoutes_PublicJobRolesNeedNoToken(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/v1/job-roles/public", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var items []map[string]any
	if err := json.Unmarshal(body.Data, &items); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(items) != 1 || items[0]["title"] != "Backend Engineer" || items[0]["isTechnical"] != true {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestRoutes_Health(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/health", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var data map[string]string
	if err := json.Unmarshal(body.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["database"] != "up" || data["cache"] != "down" {
		t.Fatalf("unexpected health: %v", data)
	}
}

func TestRoutes_Authorization(t *testing.T) {
	s := newTestServer(t)
	applicant := s.token(t, application.RoleApplicant)
	admin := s.token(t, application.RoleAdmin)
	bot := s.token(t, application.RoleBot)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"missing token", http.MethodGet, "/api/v1/applications", "", fiber.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/applications", "not-a-jwt", fiber.StatusUnauthorized},
		{"applicant lists own", http.MethodGet, "/api/v1/applications", applicant, fiber.StatusOK},
		{"admin cannot list own", http.MethodGet, "/api/v1/applications", admin, fiber.StatusForbidden},
		{"applicant cannot list all", http.MethodGet, "/api/v1/applications/all", applicant, fiber.StatusForbidden},
		{"admin lists all", http.MethodGet, "/api/v1/applications/all", admin, fiber.StatusOK},
		{"applicant cannot see dashboard", http.MethodGet, "/api/v1/admin/dashboard-stats", applicant, fiber.StatusForbidden},
		{"bot cannot see dashboard", http.MethodGet, "/api/v1/admin/dashboard-stats", bot, fiber.StatusForbidden},
		{"admin sees dashboard", http.MethodGet, "/api/v1/admin/dashboard-stats", admin, fiber.StatusOK},
		{"admin cannot trigger bot", http.MethodPost, "/api/v1/bot/trigger", admin, fiber.StatusForbidden},
		{"applicant cannot read bot logs", http.MethodGet, "/api/v1/bot/logs", applicant, fiber.StatusForbidden},
		{"bot reads logs", http.MethodGet, "/api/v1/bot/logs", bot, fiber.StatusOK},
		{"applicant cannot patch status", http.MethodPatch, "/api/v1/applications/" + uuid.NewString(), applicant, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := s.do(t, tt.method, tt.path, tt.token, nil)
			if status != tt.want {
				t.Fatalf("status = %d, want %d", status, tt.want)
			}
		})
	}
}

func TestRoutes_CreateApplication(t *testing.T) {
	s := newTestServer(t)
	jobRoleID := uuid.New()

	status, body := s.do(t, http.MethodPost, "/api/v1/applications", s.token(t, application.RoleApplicant), map[string]any{
		"jobRoleId":  jobRoleID,
		"experience": 4,
		"skills":     []string{"Go", "SQL"},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d (%s)", status, body.Message)
	}
	if s.apps.lastActor.Role != application.RoleApplicant {
		t.Fatalf("actor role = %s", s.apps.lastActor.Role)
	}
	in := s.apps.lastCreate
	if in.JobRoleID != jobRoleID || in.Experience == nil || *in.Experience != 4 || len(in.Skills) != 2 {
		t.Fatalf("unexpected input: %+v", in)
	}

	var data map[string]any
	if err := json.Unmarshal(body.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["status"] != "Applied" {
		t.Fatalf("status field = %v", data["status"])
	}
	logs, _ := data["logs"].([]any)
	if len(logs) != 1 {
		t.Fatalf("logs = %v", data["logs"])
	}
}

func TestRoutes_ManualStatusUpdatePassesInput(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()

	status, _ := s.do(t, http.MethodPatch, "/api/v1/admin/applications/"+id.String()+"/update-status", s.token(t, application.RoleAdmin), map[string]string{
		"status":  "Interview",
		"comment": "phone screen booked",
	})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got := s.apps.lastUpdate; got.ApplicationID != id || got.Status != "Interview" || got.Comment != "phone screen booked" {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestRoutes_NonTechnicalListFilters(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/admin/non-technical-applications", s.token(t, application.RoleAdmin), nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if f := s.apps.lastFilter; f.IsTechnical == nil || *f.IsTechnical {
		t.Fatalf("expected non-technical filter, got %+v", f)
	}
}

func TestRoutes_BotTrigger(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/bot/trigger", s.token(t, application.RoleBot), nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var data struct {
		ProcessedApplications int `json:"processedApplications"`
		Results               []struct {
			OldStatus string `json:"oldStatus"`
			NewStatus string `json:"newStatus"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.ProcessedApplications != 1 || data.Results[0].OldStatus != "Applied" || data.Results[0].NewStatus != "Reviewed" {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestRoutes_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: %w", usecase.ErrValidation, application.ErrInvalidStatus), fiber.StatusBadRequest},
		{"duplicate", usecase.ErrDuplicateApplication, fiber.StatusConflict},
		{"not found", fmt.Errorf("%w: %w", usecase.ErrNotFound, repository.ErrApplicationNotFound), fiber.StatusNotFound},
		{"terminal", fmt.Errorf("%w: %w", usecase.ErrInvalidOperation, application.ErrTerminalStatus), fiber.StatusBadRequest},
		{"forbidden", usecase.ErrForbidden, fiber.StatusForbidden},
		{"persistence", fmt.Errorf("%w: connection refused", usecase.ErrPersistence), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.apps.err = tt.err

			status, body := s.do(t, http.MethodPatch, "/api/v1/applications/"+uuid.NewString(), s.token(t, application.RoleAdmin), map[string]string{"status": "Offer"})
			if status != tt.want {
				t.Fatalf("status = %d, want %d", status, tt.want)
			}
			if status == fiber.StatusInternalServerError && body.Message != "internal server error" {
				t.Fatalf("internal error leaked: %q", body.Message)
			}
		})
	}
}

func TestRoutes_BotPassInProgress(t *testing.T) {
	s := newTestServer(t)
	s.bot.err = usecase.ErrBotPassInProgress

	status, _ := s.do(t, http.MethodPost, "/api/v1/bot/trigger", s.token(t, application.RoleBot), nil)
	if status != fiber.StatusConflict {
		t.Fatalf("status = %d", status)
	}
}

func TestRoutes_InvalidID(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/applications/not-a-uuid", s.token(t, application.RoleAdmin), nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
}

func TestRoutes_DeleteJobRoleInUse(t *testing.T) {
	s := newTestServer(t)
	s.jobRoles.err = fmt.Errorf("%w: %w", usecase.ErrInvalidOperation, repository.ErrJobRoleInUse)

	status, _ := s.do(t, http.MethodDelete, "/api/v1/admin/job-roles/"+uuid.NewString(), s.token(t, application.RoleAdmin), nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
}

func TestRoutes_ApplicationStreamRequiresStaffToken(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"no token", "/ws/applications", http.StatusUnauthorized},
		{"bad token", "/ws/applications?token=garbage", http.StatusUnauthorized},
		{"applicant", "/ws/applications?token=" + s.token(t, application.RoleApplicant), http.StatusForbidden},
		// Authenticated staff reach the upgrader, which rejects a plain GET.
		{"admin", "/ws/applications?token=" + s.token(t, application.RoleAdmin), http.StatusBadRequest},
		{"bot", "/ws/applications?token=" + s.token(t, application.RoleBot), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}
