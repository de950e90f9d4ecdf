package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"giftfall/api/internal/config"
	"giftfall/api/internal/models"
	"giftfall/api/internal/repository"
	"giftfall/api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUserStore struct {
	byID    map[string]models.User
	byEmail map[string]models.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byID: map[string]models.User{}, byEmail: map[string]models.User{}}
}

func (s *stubUserStore) Create(_ context.Context, user models.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserStore) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.byID))
	for _, user := range s.byID {
		out = append(out, user)
	}
	return out, nil
}

func (s *stubUserStore) UpdatePartial(_ context.Context, id string, patch models.UserPatch, passwordHash []byte) (models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	s.byID[id] = user
	return user, nil
}

type stubTokenStore struct {
	tokens map[string]string
}

func (s *stubTokenStore) Insert(_ context.Context, tokenHash []byte, userID string) error {
	s.tokens[string(tokenHash)] = userID
	return nil
}

func (s *stubTokenStore) Find(_ context.Context, tokenHash []byte) (string, error) {
	userID, ok := s.tokens[string(tokenHash)]
	if !ok {
		return "", repository.ErrTokenNotFound
	}
	return userID, nil
}

func (s *stubTokenStore) Delete(_ context.Context, tokenHash []byte) error {
	delete(s.tokens, string(tokenHash))
	return nil
}

func (s *stubTokenStore) DeleteByUser(_ context.Context, userID string) error {
	for hash, owner := range s.tokens {
		if owner == userID {
			delete(s.tokens, hash)
		}
	}
	return nil
}

type stubTransactionStore struct {
	txns map[string]models.Transaction
}

func (s *stubTransactionStore) Create(_ context.Context, txn models.Transaction) error {
	s.txns[txn.ID] = txn
	return nil
}

func (s *stubTransactionStore) GetByID(_ context.Context, id string) (models.Transaction, error) {
	txn, ok := s.txns[id]
	if !ok {
		return models.Transaction{}, repository.ErrTransactionNotFound
	}
	return txn, nil
}

func (s *stubTransactionStore) List(_ context.Context) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, len(s.txns))
	for _, txn := range s.txns {
		out = append(out, txn)
	}
	return out, nil
}

func (s *stubTransactionStore) ListByBuyer(_ context.Context, _ string) ([]models.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionStore) ListBySeller(_ context.Context, _ string) ([]models.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionStore) Complete(_ context.Context, id string) (models.Transaction, error) {
	txn, ok := s.txns[id]
	if !ok {
		return models.Transaction{}, repository.ErrTransactionNotFound
	}
	if txn.Status == models.TransactionStatusCompleted {
		return models.Transaction{}, repository.ErrAlreadyCompleted
	}
	txn.Status = models.TransactionStatusCompleted
	s.txns[id] = txn
	return txn, nil
}

func (s *stubTransactionStore) Update(_ context.Context, id string, txn models.Transaction) error {
	s.txns[id] = txn
	return nil
}

func (s *stubTransactionStore) SetStatus(_ context.Context, id string, status models.TransactionStatus) error {
	txn := s.txns[id]
	txn.Status = status
	s.txns[id] = txn
	return nil
}

func (s *stubTransactionStore) Delete(_ context.Context, id string) error {
	delete(s.txns, id)
	return nil
}

type stubItemReader struct{}

func (stubItemReader) GetByID(_ context.Context, _ string) (models.Item, error) {
	return models.Item{}, repository.ErrItemNotFound
}

func testHandlerSet(txns *stubTransactionStore) HandlerSet {
	cfg := &config.AppConfig{
		Security: config.SecurityConfig{
			JWTAccessSecret:  "access-secret",
			JWTRefreshSecret: "refresh-secret",
			JWTAccessTTL:     15 * time.Minute,
		},
	}
	logger := zerolog.Nop()
	return HandlerSet{
		log:    logger,
		cfg:    cfg,
		auth:   service.NewAuthService(newStubUserStore(), &stubTokenStore{tokens: map[string]string{}}, cfg, logger),
		trades: service.NewTradeService(txns, stubItemReader{}, logger),
	}
}

func testRouter(h HandlerSet) *gin.Engine {
	router := gin.New()
	router.POST("/api/v1/auth", h.Login)
	router.POST("/api/v1/users/register", h.RegisterUser)
	router.POST("/api/v1/users/token", h.RefreshToken)
	router.GET("/api/v1/transactions/:id", h.GetTransaction)
	router.PUT("/api/v1/transactions/accept/:id", h.AcceptTransaction)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method string, path string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
	}
	return rec, envelope
}

func TestRegisterThenLoginEnvelope(t *testing.T) {
	router := testRouter(testHandlerSet(&stubTransactionStore{txns: map[string]models.Transaction{}}))

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/users/register", gin.H{
		"name":            "Lan",
		"email":           "lan@example.com",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if envelope.Success != 1 {
		t.Fatalf("success = %d, want 1", envelope.Success)
	}

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/auth", gin.H{
		"email":    "lan@example.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d (%s)", rec.Code, rec.Body.String())
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T, want object", envelope.Data)
	}
	if tok, _ := data["accessToken"].(string); tok == "" {
		t.Fatal("missing access token in login response")
	}
	if tok, _ := data["refreshToken"].(string); tok == "" {
		t.Fatal("missing refresh token in login response")
	}
}

func TestLoginBadCredentialsIs400(t *testing.T) {
	router := testRouter(testHandlerSet(&stubTransactionStore{txns: map[string]models.Transaction{}}))

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/auth", gin.H{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if envelope.Success != 0 {
		t.Fatalf("success = %d, want 0", envelope.Success)
	}
	if envelope.Message == "" {
		t.Fatal("expected an error message")
	}
}

func TestLoginMissingFieldsIs400(t *testing.T) {
	router := testRouter(testHandlerSet(&stubTransactionStore{txns: map[string]models.Transaction{}}))

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth", gin.H{"email": "not-an-email"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRefreshDeadTokenIs403(t *testing.T) {
	router := testRouter(testHandlerSet(&stubTransactionStore{txns: map[string]models.Transaction{}}))

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/users/token", gin.H{"token": "revoked"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if envelope.Success != 0 {
		t.Fatalf("success = %d, want 0", envelope.Success)
	}
}

func TestGetTransactionNotFoundIs404(t *testing.T) {
	router := testRouter(testHandlerSet(&stubTransactionStore{txns: map[string]models.Transaction{}}))

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/transactions/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if envelope.Success != 0 {
		t.Fatalf("success = %d, want 0", envelope.Success)
	}
}

func TestAcceptTransaction(t *testing.T) {
	txns := &stubTransactionStore{txns: map[string]models.Transaction{
		"txn-1": {ID: "txn-1", Status: models.TransactionStatusPending},
	}}
	router := testRouter(testHandlerSet(txns))

	rec, envelope := doJSON(t, router, http.MethodPut, "/api/v1/transactions/accept/txn-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if envelope.Success != 1 {
		t.Fatalf("success = %d, want 1", envelope.Success)
	}
	if txns.txns["txn-1"].Status != models.TransactionStatusCompleted {
		t.Fatal("transaction not completed")
	}

	rec, _ = doJSON(t, router, http.MethodPut, "/api/v1/transactions/accept/txn-1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second accept status = %d, want 400", rec.Code)
	}
}
