package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	mu sync.Mutex

	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// parsedToken is safe to call while a test server is running.
func (m *mockAuth) parsedToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastParseToken
}

type mockPackaging struct {
	report    service.ValidationReport
	rec       service.Recommendation
	recErr    error
	run       models.PackagingRun
	startErr  error
	drainErr  error
	drained   int
	startCall int

	lastOperator int
	lastProduct  models.Product
	lastSettings models.PackagingSettings
	lastMaterial models.PackagingMaterial
}

func (m *mockPackaging) Validate(p models.Product, s models.PackagingSettings) service.ValidationReport {
	m.lastProduct = p
	m.lastSettings = s
	return m.report
}

func (m *mockPackaging) Recommend(mat models.PackagingMaterial) (service.Recommendation, error) {
	m.lastMaterial = mat
	return m.rec, m.recErr
}

func (m *mockPackaging) Start(ctx context.Context, operatorID int, p models.Product, s models.PackagingSettings) (models.PackagingRun, error) {
	m.startCall++
	m.lastOperator = operatorID
	m.lastProduct = p
	m.lastSettings = s
	return m.run, m.startErr
}

func (m *mockPackaging) Drain(ctx context.Context) error {
	m.drained++
	return m.drainErr
}

type mockMonitoring struct {
	state models.MachineState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.MachineState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp      []models.PackagingEvent
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastRunID string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.PackagingEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastRunID = f.RunID
	return m.resp, m.err
}

type mockRunHistory struct {
	runs      []models.PackagingRun
	run       models.PackagingRun
	err       error
	lastLimit int
	lastID    string
}

func (m *mockRunHistory) ListRuns(ctx context.Context, limit int) ([]models.PackagingRun, error) {
	m.lastLimit = limit
	return m.runs, m.err
}

func (m *mockRunHistory) GetRun(ctx context.Context, id string) (models.PackagingRun, error) {
	m.lastID = id
	return m.run, m.err
}

// mockStream hands out one channel and signals subscribe/unsubscribe.
type mockStream struct {
	events       chan models.PackagingEvent
	subscribed   chan struct{}
	unsubscribed chan struct{}
}

func newMockStream() *mockStream {
	return &mockStream{
		events:       make(chan models.PackagingEvent, 4),
		subscribed:   make(chan struct{}),
		unsubscribed: make(chan struct{}),
	}
}

func (m *mockStream) Subscribe() (<-chan models.PackagingEvent, func()) {
	close(m.subscribed)
	return m.events, func() { close(m.unsubscribed) }
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// testRun returns a run record whose settings marshal cleanly.
func testRun(id string) models.PackagingRun {
	return models.PackagingRun{
		ID: id,
		Settings: models.PackagingSettings{
			Material:            models.MaterialPVDC,
			VacuumLevel:         models.VacuumMedium,
			SealingTemperatureC: 140,
			SealingTime:         800 * time.Millisecond,
		},
	}
}
