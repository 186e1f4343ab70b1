package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/babygenie/service-planner/internal/application"
	milestoneDomain "github.com/babygenie/service-planner/internal/domain/milestone"
	"github.com/babygenie/service-planner/internal/domain/planning"
	profileDomain "github.com/babygenie/service-planner/internal/domain/profile"
	"github.com/babygenie/service-planner/internal/platform/domain"
	"github.com/babygenie/service-planner/internal/platform/middleware"
	"github.com/babygenie/service-planner/internal/venues"
)

const testAdminToken = "s3cret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Pagination *struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type memPlanLogs struct {
	mu   sync.Mutex
	logs []*planning.PlanLog
}

func (m *memPlanLogs) Record(_ context.Context, l *planning.PlanLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, l)
	return nil
}

func (m *memPlanLogs) FindByID(_ context.Context, id uuid.UUID) (*planning.PlanLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.logs {
		if l.RequestID() == id {
			return l, nil
		}
	}
	return nil, domain.NewNotFoundError("plan log", id.String())
}

func (m *memPlanLogs) ListAll(_ context.Context, _, _ int) ([]*planning.PlanLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*planning.PlanLog(nil), m.logs...), int64(len(m.logs)), nil
}

func (m *memPlanLogs) CountByTheme(_ context.Context) (map[planning.Theme]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[planning.Theme]int64)
	for _, l := range m.logs {
		for _, t := range l.Plans().Themes() {
			counts[t]++
		}
	}
	return counts, nil
}

type memProfiles struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profileDomain.Profile
}

func (m *memProfiles) FindByID(_ context.Context, id uuid.UUID) (*profileDomain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.NewNotFoundError("profile", id.String())
	}
	return p, nil
}

func (m *memProfiles) Save(_ context.Context, p *profileDomain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID()] = p
	return nil
}

func (m *memProfiles) Update(ctx context.Context, p *profileDomain.Profile) error {
	return m.Save(ctx, p)
}

type memMilestones struct{}

func (memMilestones) ForWeek(_ context.Context, week int) ([]milestoneDomain.Milestone, error) {
	catalog, err := milestoneDomain.Catalog()
	if err != nil {
		return nil, err
	}
	var out []milestoneDomain.Milestone
	for _, m := range catalog {
		if m.Covers(week) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (memMilestones) ReplaceAll(_ context.Context, ms []milestoneDomain.Milestone) (int, error) {
	return len(ms), nil
}

type failingSource struct{}

func (failingSource) Fetch(context.Context, string) ([]planning.VenueCandidate, error) {
	return nil, errors.New("catalog offline")
}

type testServer struct {
	router *gin.Engine
	logs   *memPlanLogs
}

func newTestServer(t *testing.T, source planning.CandidateSource) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if source == nil {
		catalog, err := venues.NewStaticSource()
		require.NoError(t, err)
		source = catalog
	}

	log := zap.NewNop()
	logs := &memPlanLogs{}
	planner := application.NewPlannerService(source, venues.NewStaticWeather(""), logs, nil, time.Second, log)
	profiles := application.NewProfileService(&memProfiles{profiles: map[uuid.UUID]*profileDomain.Profile{}}, log)
	milestones := application.NewMilestoneService(memMilestones{}, log)
	recipes := application.NewRecipeService(nil, log)

	router := gin.New()
	NewPlannerHandler(planner, profiles).RegisterRoutes(&router.RouterGroup)
	NewProfileHandler(profiles).RegisterRoutes(&router.RouterGroup)
	NewMilestoneHandler(milestones).RegisterRoutes(&router.RouterGroup)
	NewRecipeHandler(recipes).RegisterRoutes(&router.RouterGroup)
	NewAdminPlanHandler(planner).RegisterRoutes(&router.RouterGroup, testAdminToken)

	return &testServer{router: router, logs: logs}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func validPlanRequest() planning.PlanningRequest {
	return planning.PlanningRequest{
		Children:      []planning.ChildAge{{AgeYears: 1, AgeMonths: 2}},
		Postcode:      "SW1A 1AA",
		MaxTravelTime: 60,
		TransportMode: "car",
		Budget:        80,
		StartTime:     "2026-10-17T09:00:00",
		EndTime:       "2026-10-17T17:00:00",
	}
}

func TestCreatePlans_ReturnsPlansAndRecordsLog(t *testing.T) {
	srv := newTestServer(t, nil)

	w, env := srv.do(t, http.MethodPost, "/api/v1/weekend/plans", validPlanRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, env.Success)

	var set planning.PlanSet
	require.NoError(t, json.Unmarshal(env.Data, &set))
	assert.NotEmpty(t, set.RequestID)
	assert.NotEmpty(t, set.Plans)
	assert.LessOrEqual(t, len(set.Plans), 3)
	assert.NotEmpty(t, set.WeatherSummary)
	require.Len(t, srv.logs.logs, 1)

	w, env = srv.do(t, http.MethodGet, "/api/v1/weekend/plans/"+set.RequestID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var dto application.PlanLogDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	assert.Equal(t, set.RequestID, dto.RequestID.String())
	assert.Equal(t, len(set.Plans), dto.PlanCount)
}

func TestCreatePlans_ValidationError(t *testing.T) {
	srv := newTestServer(t, nil)

	req := validPlanRequest()
	req.Budget = 5

	w, env := srv.do(t, http.MethodPost, "/api/v1/weekend/plans", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Empty(t, srv.logs.logs)
}

func TestCreatePlans_MalformedBody(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/weekend/plans", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePlans_UpstreamFailure(t *testing.T) {
	srv := newTestServer(t, failingSource{})

	w, env := srv.do(t, http.MethodPost, "/api/v1/weekend/plans", validPlanRequest())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.False(t, env.Success)
}

func TestGetPlanLog_InvalidAndMissing(t *testing.T) {
	srv := newTestServer(t, nil)

	w, _ := srv.do(t, http.MethodGet, "/api/v1/weekend/plans/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = srv.do(t, http.MethodGet, "/api/v1/weekend/plans/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func createProfile(t *testing.T, srv *testServer) application.ProfileDTO {
	t.Helper()
	w, env := srv.do(t, http.MethodPost, "/api/v1/profiles", application.CreateProfileRequest{
		Name:          "The Okafors",
		Email:         "family@example.com",
		Children:      []planning.ChildAge{{AgeYears: 0, AgeMonths: 10}},
		Postcode:      "N1 9GU",
		MaxTravelTime: 45,
		Budget:        60,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var dto application.ProfileDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	return dto
}

func TestProfileLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)
	created := createProfile(t, srv)

	assert.Equal(t, "car", created.TransportMode)
	assert.Equal(t, "09:00", created.StartTime)
	assert.Equal(t, "active", created.Status)

	path := "/api/v1/profiles/" + created.ID.String()

	w, env := srv.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched application.ProfileDTO
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)

	w, env = srv.do(t, http.MethodPut, path, application.UpdateProfileRequest{Budget: 90})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated application.ProfileDTO
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 90.0, updated.Budget)
	assert.Equal(t, created.Version+1, updated.Version)

	w, _ = srv.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = srv.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProfile_Invalid(t *testing.T) {
	srv := newTestServer(t, nil)

	w, _ := srv.do(t, http.MethodPost, "/api/v1/profiles", map[string]interface{}{"name": "No kids"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := srv.do(t, http.MethodPost, "/api/v1/profiles", application.CreateProfileRequest{
		Name:     "Too far",
		Children: []planning.ChildAge{{AgeYears: 1}},
		Postcode: "E1 6AN",
		Budget:   500,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestCreatePlansForProfile(t *testing.T) {
	srv := newTestServer(t, nil)
	created := createProfile(t, srv)

	w, env := srv.do(t, http.MethodPost, "/api/v1/profiles/"+created.ID.String()+"/plans", application.ProfilePlanRequest{
		Date: "2026-10-18",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var set planning.PlanSet
	require.NoError(t, json.Unmarshal(env.Data, &set))
	assert.NotEmpty(t, set.Plans)
	require.Len(t, srv.logs.logs, 1)
	assert.Equal(t, created.ID.String(), srv.logs.logs[0].Input().UserID)
}

func TestCreatePlansForProfile_UnknownProfile(t *testing.T) {
	srv := newTestServer(t, nil)

	w, _ := srv.do(t, http.MethodPost, "/api/v1/profiles/"+uuid.NewString()+"/plans", application.ProfilePlanRequest{
		Date: "2026-10-18",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMilestones(t *testing.T) {
	srv := newTestServer(t, nil)

	w, env := srv.do(t, http.MethodGet, "/api/v1/milestones?week=6", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var milestones []milestoneDomain.Milestone
	require.NoError(t, json.Unmarshal(env.Data, &milestones))
	require.NotEmpty(t, milestones)
	for _, m := range milestones {
		assert.True(t, m.Covers(6))
	}

	w, _ = srv.do(t, http.MethodGet, "/api/v1/milestones?week=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = srv.do(t, http.MethodGet, "/api/v1/milestones?week=53", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecipe(t *testing.T) {
	srv := newTestServer(t, nil)

	w, _ := srv.do(t, http.MethodPost, "/api/v1/recipes", map[string]interface{}{"ingredients": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = srv.do(t, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"ingredients": []map[string]string{{"name": "carrot", "quantity": "2"}},
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	w, _ := srv.do(t, http.MethodGet, "/api/v1/admin/plans", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = srv.do(t, http.MethodGet, "/api/v1/admin/plans", nil, middleware.AdminTokenHeader, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = srv.do(t, http.MethodPost, "/api/v1/weekend/plans", validPlanRequest())
	require.Equal(t, http.StatusOK, w.Code)

	w, env := srv.do(t, http.MethodGet, "/api/v1/admin/plans?page=1&limit=10", nil, middleware.AdminTokenHeader, testAdminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(1), env.Pagination.Total)

	w, env = srv.do(t, http.MethodGet, "/api/v1/admin/stats/plans", nil, middleware.AdminTokenHeader, testAdminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats application.PlanStatsDTO
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.TotalPlans)
	assert.NotEmpty(t, stats.ByTheme)
}
