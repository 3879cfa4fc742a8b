package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"paygate/config"
	"paygate/internal/auth"
	"paygate/internal/database"
	"paygate/internal/domain"
	"paygate/internal/middleware"
	"paygate/internal/repository"
	"paygate/internal/service"
	"paygate/pkg/paypal"
	"paygate/pkg/paypal/ipn"
	"paygate/pkg/paypal/nvp"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testNVPEndpoint      = "https://nvp.test/nvp"
	testPostbackEndpoint = "https://ipn.test/webscr"
	testSandboxPostback  = "https://ipn-sandbox.test/webscr"
)

var testJWT = &config.JWTConfig{
	AccessSecret:  "access",
	RefreshSecret: "refresh",
	AccessExpiry:  time.Minute,
	RefreshExpiry: time.Hour,
	Issuer:        "paygate-test",
}

// fakePayPal answers NVP calls and IPN postbacks by endpoint.
type fakePayPal struct {
	mu       sync.Mutex
	nvp      string
	verdict  string
	nvpCalls int
	lastBody string
}

func (f *fakePayPal) Send(_ context.Context, endpoint string, body []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastBody = string(body)
	if endpoint == testNVPEndpoint {
		f.nvpCalls++
		return []byte(f.nvp), nil
	}
	return []byte(f.verdict), nil
}

type fixture struct {
	db     *gorm.DB
	paypal *fakePayPal
	engine *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	log := zerolog.Nop()
	pp := &fakePayPal{nvp: "ACK=Success", verdict: "VERIFIED"}
	nvpRepo := repository.NewNVPRepository(db)
	ipnRepo := repository.NewIPNRepository(db)
	eventRepo := repository.NewEventRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)
	events := service.NewEventService(eventRepo, nil, nil, nil, log)

	client := nvp.NewClient(nvp.Config{
		Credentials: paypal.Credentials{User: "u", Password: "p", Signature: "s"},
		Sandbox:     true,
		Endpoint:    testNVPEndpoint,
	}, pp, nvpRepo, events)
	listener := ipn.NewListener(ipn.Config{
		ReceiverEmail:           "seller@example.com",
		PostbackEndpoint:        testPostbackEndpoint,
		SandboxPostbackEndpoint: testSandboxPostback,
	}, pp, ipnRepo, events)

	authH := NewAuthHandler(service.NewAuthService(testJWT, operatorRepo), auditRepo, log)
	nvpH := NewNVPHandler(client, auditRepo, log)
	ipnH := NewIPNHandler(listener, log)
	recH := NewRecordsHandler(nvpRepo, ipnRepo, eventRepo)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/ipn", ipnH.Handle)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/refresh", authH.Refresh)
	ops := api.Group("", middleware.AuthRequired(testJWT))
	ops.GET("/nvp/transactions", recH.ListTransactions)
	ops.GET("/nvp/transactions/:id", recH.GetTransaction)
	ops.GET("/ipn/notifications", recH.ListNotifications)
	ops.GET("/ipn/notifications/:id", recH.GetNotification)
	ops.GET("/events", recH.ListEvents)
	callers := ops.Group("", middleware.RequireRole(domain.RoleAdmin, domain.RoleOperator))
	callers.POST("/nvp/:method", nvpH.Call)
	callers.POST("/recurring/:profile_id/status", nvpH.ProfileStatus)

	return &fixture{db: db, paypal: pp, engine: r}
}

func (f *fixture) token(t *testing.T, operatorID uint, role string) string {
	t.Helper()
	tok, err := auth.GenerateAccessToken(testJWT, operatorID, "ops@example.com", role)
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func directPaymentParams() map[string]string {
	return map[string]string{
		"CREDITCARDTYPE": "Visa",
		"ACCT":           "4111111111111111",
		"EXPDATE":        "122025",
		"CVV2":           "123",
		"IPADDRESS":      "1.2.3.4",
		"FIRSTNAME":      "A",
		"LASTNAME":       "B",
		"STREET":         "1 Main",
		"CITY":           "X",
		"STATE":          "CA",
		"COUNTRYCODE":    "US",
		"ZIP":            "00000",
		"AMT":            "10.00",
	}
}
