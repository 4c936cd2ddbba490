package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"chatforge-backend/internal/middleware"
	"chatforge-backend/internal/models"
)

type memUserStore struct {
	byEmail map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]*models.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	s.byEmail[user.Email] = user
	return nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *memUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newTestAuthService() (*AuthService, *middleware.JWTAuth) {
	jwtAuth := middleware.NewJWTAuth("test-secret")
	return NewAuthService(newMemUserStore(), jwtAuth), jwtAuth
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"short name", models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"}},
		{"bad email", models.RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "secret1"}},
		{"short password", models.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "12345"}},
		{"everything empty", models.RegisterRequest{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			if _, ok := err.(*ValidationError); !ok {
				t.Errorf("Expected ValidationError, got %v", err)
			}
		})
	}
}

func TestRegister_HashesPasswordAndHidesIt(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Alice", Email: "a@x.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Error("Expected a bcrypt hash, not the plaintext password")
	}
	if user.ID == uuid.Nil {
		t.Error("Expected a server-assigned user ID")
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestAuthService()

	req := models.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret1"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("First register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("Expected ConflictError for duplicate email, got %v", err)
	}
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	svc, jwtAuth := newTestAuthService()

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Alice", Email: "a@x.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.User.ID != user.ID {
		t.Errorf("Login returned wrong user: %v", resp.User.ID)
	}

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return jwtAuth.Secret, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("Issued token did not verify: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != user.ID.String() {
		t.Errorf("Expected user_id claim %q, got %v", user.ID, claims["user_id"])
	}
	if claims["email"] != "a@x.com" {
		t.Errorf("Expected email claim a@x.com, got %v", claims["email"])
	}

	exp, _ := claims.GetExpirationTime()
	week := time.Now().Add(7 * 24 * time.Hour)
	if exp.Time.Before(week.Add(-time.Minute)) || exp.Time.After(week.Add(time.Minute)) {
		t.Errorf("Expected ~7 day expiry, got %v", exp.Time)
	}
}

func TestLogin_SameMessageForUnknownEmailAndWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Alice", Email: "a@x.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, errUnknown := svc.Login(context.Background(), models.LoginRequest{Email: "b@x.com", Password: "secret1"})
	_, errWrongPw := svc.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "wrong-pw"})

	authUnknown, ok := errUnknown.(*AuthError)
	if !ok {
		t.Fatalf("Expected AuthError for unknown email, got %v", errUnknown)
	}
	authWrongPw, ok := errWrongPw.(*AuthError)
	if !ok {
		t.Fatalf("Expected AuthError for wrong password, got %v", errWrongPw)
	}

	if authUnknown.Message != authWrongPw.Message {
		t.Errorf("Messages differ and leak which check failed: %q vs %q", authUnknown.Message, authWrongPw.Message)
	}
	if authUnknown.Message != "Invalid credentials" {
		t.Errorf("Expected 'Invalid credentials', got %q", authUnknown.Message)
	}
}
