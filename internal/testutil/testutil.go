package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/cardlink/internal/auth"
	"github.com/hugh/cardlink/internal/cardnet"
	"github.com/hugh/cardlink/internal/database"
	"github.com/hugh/cardlink/internal/database/models"
	"github.com/hugh/cardlink/internal/store"
	"github.com/hugh/cardlink/pkg/idgen"
	"github.com/hugh/cardlink/pkg/sharecode"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FixedTime is the clock reading of every service built by NewTestService.
var FixedTime = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

// OpenTestDB creates a private in-memory SQLite database with no tables.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named shared-cache DSN so every pooled connection sees the same database.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	return db
}

// SetupTestDB creates a private in-memory SQLite database with all tables.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := OpenTestDB(t)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestDB closes the test database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("warning: failed to get sql.DB: %v", err)
		return
	}
	sqlDB.Close()
}

// DiscardLogger returns a logger that writes nowhere.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Codes returns a generator that yields the given codes in order and then
// falls back to random codes.
func Codes(codes ...string) cardnet.CodeGenerator {
	var mu sync.Mutex
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(codes) == 0 {
			return sharecode.Generate()
		}
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}
}

// RecordingNotifier remembers every job update handed to it.
type RecordingNotifier struct {
	mu    sync.Mutex
	Calls []NotifyCall
	Err   error
}

type NotifyCall struct {
	Card       models.Card
	Recipients []int64
}

func (n *RecordingNotifier) JobUpdated(ctx context.Context, card models.Card, recipientIDs []int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, NotifyCall{Card: card, Recipients: recipientIDs})
	return n.Err
}

// NewTestService builds a service over st with deterministic IDs and clock.
// cfg fields left zero get test defaults.
func NewTestService(t *testing.T, st store.Store, cfg cardnet.Config) *cardnet.Service {
	t.Helper()

	cfg.Store = st
	if cfg.IDs == nil {
		cfg.IDs = idgen.NewSequence(1000)
	}
	if cfg.Logger == nil {
		cfg.Logger = DiscardLogger()
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return FixedTime }
	}

	svc, err := cardnet.NewService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

// CreateTestOrder places a pending order.
func CreateTestOrder(t *testing.T, svc *cardnet.Service, company string) *models.Order {
	t.Helper()

	order, err := svc.PlaceOrder(context.Background(), cardnet.PlaceOrderInput{
		CompanyName: company,
		BrandColors: "#6366f1,#9333ea",
	})
	if err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}

// CreateTestDesign places an order for company and designs it.
func CreateTestDesign(t *testing.T, svc *cardnet.Service, company string) *models.Design {
	t.Helper()

	order := CreateTestOrder(t, svc, company)
	design, err := svc.SubmitDesign(context.Background(), order.ID, "classic")
	if err != nil {
		t.Fatalf("failed to create test design: %v", err)
	}
	return design
}

// CreateTestCard issues a card for name against design.
func CreateTestCard(t *testing.T, svc *cardnet.Service, design *models.Design, name, title string) *models.Card {
	t.Helper()

	card, err := svc.AssignCard(context.Background(), design.ID, cardnet.AssignCardInput{
		Name:  name,
		Title: title,
		Email: "card-" + uuid.NewString()[:8] + "@example.com",
	})
	if err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreatePublicTestCard issues a card and makes it searchable.
func CreatePublicTestCard(t *testing.T, svc *cardnet.Service, design *models.Design, name, title string) *models.Card {
	t.Helper()

	card := CreateTestCard(t, svc, design, name, title)
	card, err := svc.ToggleVisibility(context.Background(), card.ID)
	if err != nil {
		t.Fatalf("failed to publish test card: %v", err)
	}
	return card
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken issues a session token for role and optional card.
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, role auth.Role, cardID int64) string {
	t.Helper()

	token, err := jwtService.GenerateToken(role, cardID)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestSetup holds all the common test dependencies
type TestSetup struct {
	Store      *store.MemoryStore
	Service    *cardnet.Service
	Notifier   *RecordingNotifier
	JWTService *auth.JWTService
	Design     *models.Design
}

// NewTestContext creates a service over a memory store with one designed
// order ready for card issuance.
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	st := store.NewMemoryStore()
	notifier := &RecordingNotifier{}
	svc := NewTestService(t, st, cardnet.Config{Notifier: notifier})

	return &TestSetup{
		Store:      st,
		Service:    svc,
		Notifier:   notifier,
		JWTService: CreateTestJWTService(),
		Design:     CreateTestDesign(t, svc, "Acme"),
	}
}

// Token issues a session token against the setup's JWT service.
func (ts *TestSetup) Token(t *testing.T, role auth.Role, cardID int64) string {
	t.Helper()
	return GenerateTestToken(t, ts.JWTService, role, cardID)
}
