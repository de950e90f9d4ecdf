package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"giftfall/api/internal/config"
	"giftfall/api/internal/models"
	"giftfall/api/internal/repository"
	"giftfall/api/internal/security"
)

type fakeUserStore struct {
	byID    map[string]models.User
	byEmail map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]models.User),
	}
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.byID))
	for _, user := range f.byID {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserStore) UpdatePartial(_ context.Context, id string, patch models.UserPatch, passwordHash []byte) (models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.IsPremium != nil {
		user.IsPremium = *patch.IsPremium
	}
	if patch.ImageUser != nil {
		user.ImageUser = *patch.ImageUser
	}
	if passwordHash != nil {
		user.PasswordHash = passwordHash
	}
	f.byID[id] = user
	f.byEmail[user.Email] = user
	return user, nil
}

type fakeTokenStore struct {
	tokens map[string]string // string(hash) -> userID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (f *fakeTokenStore) Insert(_ context.Context, tokenHash []byte, userID string) error {
	f.tokens[string(tokenHash)] = userID
	return nil
}

func (f *fakeTokenStore) Find(_ context.Context, tokenHash []byte) (string, error) {
	userID, ok := f.tokens[string(tokenHash)]
	if !ok {
		return "", repository.ErrTokenNotFound
	}
	return userID, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, tokenHash []byte) error {
	delete(f.tokens, string(tokenHash))
	return nil
}

func (f *fakeTokenStore) DeleteByUser(_ context.Context, userID string) error {
	for hash, owner := range f.tokens {
		if owner == userID {
			delete(f.tokens, hash)
		}
	}
	return nil
}

func authFixture() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	cfg := &config.AppConfig{
		Security: config.SecurityConfig{
			JWTAccessSecret:  "access-secret",
			JWTRefreshSecret: "refresh-secret",
			JWTAccessTTL:     15 * time.Minute,
		},
	}
	return NewAuthService(users, tokens, cfg, zerolog.Nop()), users, tokens
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users, _ := authFixture()

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:            "Lan",
		Email:           "Lan@Example.Com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "lan@example.com" {
		t.Fatalf("email = %q, want lowercased", user.Email)
	}
	stored := users.byID[user.ID]
	if bytes.Contains(stored.PasswordHash, []byte("secret123")) {
		t.Fatal("password stored in the clear")
	}
	if ok, err := security.VerifyPassword("secret123", stored.PasswordHash); err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _, _ := authFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:            "Lan",
		Email:           "lan@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("err = %v, want ErrPasswordMismatch", err)
	}
}

func TestLoginIssuesBothTokens(t *testing.T) {
	svc, _, tokens := authFixture()

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Lan", Email: "lan@example.com", Password: "secret123", ConfirmPassword: "secret123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := svc.Login(context.Background(), "lan@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	claims, err := security.ParseAccessToken(result.AccessToken, "access-secret")
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Name != "Lan" {
		t.Fatalf("claims = %+v, want user identity", claims)
	}

	hash := security.HashRefreshToken(result.RefreshToken)
	if _, ok := tokens.tokens[string(hash)]; !ok {
		t.Fatal("refresh token hash not persisted")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := authFixture()

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Lan", Email: "lan@example.com", Password: "secret123", ConfirmPassword: "secret123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(context.Background(), "lan@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := authFixture()

	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRejectsNamelessUser(t *testing.T) {
	svc, users, _ := authFixture()

	hash, err := security.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users.byID["u1"] = models.User{ID: "u1", Email: "blank@example.com", PasswordHash: hash}
	users.byEmail["blank@example.com"] = users.byID["u1"]

	if _, err := svc.Login(context.Background(), "blank@example.com", "secret123"); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("err = %v, want ErrInvalidPayload", err)
	}
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, _, _ := authFixture()

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Lan", Email: "lan@example.com", Password: "secret123", ConfirmPassword: "secret123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := svc.Login(context.Background(), "lan@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	access, err := svc.Refresh(context.Background(), result.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	claims, err := security.ParseAccessToken(access, "access-secret")
	if err != nil {
		t.Fatalf("refreshed access token does not parse: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatalf("uid = %q, want %q", claims.UserID, result.User.ID)
	}
}

func TestRefreshAfterLogout(t *testing.T) {
	svc, _, _ := authFixture()

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Lan", Email: "lan@example.com", Password: "secret123", ConfirmPassword: "secret123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := svc.Login(context.Background(), "lan@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), result.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), result.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("err = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _, _ := authFixture()

	if _, err := svc.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("err = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _ := authFixture()

	if err := svc.Logout(context.Background(), "never-issued"); err != nil {
		t.Fatalf("Logout of unknown token: %v", err)
	}
}

func TestUpdateProfileEmptyPatch(t *testing.T) {
	svc, _, _ := authFixture()

	if _, err := svc.UpdateProfile(context.Background(), "u1", models.UserPatch{}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("err = %v, want ErrEmptyPatch", err)
	}
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	svc, users, _ := authFixture()

	created, err := svc.Register(context.Background(), RegisterInput{
		Name: "Lan", Email: "lan@example.com", Password: "secret123", ConfirmPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	newPassword := "betterSecret9"
	if _, err := svc.UpdateProfile(context.Background(), created.ID, models.UserPatch{Password: &newPassword}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if ok, err := security.VerifyPassword(newPassword, users.byID[created.ID].PasswordHash); err != nil || !ok {
		t.Fatalf("new password does not verify: ok=%v err=%v", ok, err)
	}
}

func TestPasswordChangeRevokesSessions(t *testing.T) {
	svc, _, tokens := authFixture()

	created, err := svc.Register(context.Background(), RegisterInput{
		Name: "Lan", Email: "lan@example.com", Password: "secret123", ConfirmPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := svc.Login(context.Background(), "lan@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	newPassword := "betterSecret9"
	if _, err := svc.UpdateProfile(context.Background(), created.ID, models.UserPatch{Password: &newPassword}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if len(tokens.tokens) != 0 {
		t.Fatalf("%d refresh tokens survive a password change", len(tokens.tokens))
	}
	if _, err := svc.Refresh(context.Background(), result.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("err = %v, want ErrInvalidRefreshToken after password change", err)
	}
}
