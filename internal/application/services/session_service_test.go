package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/session"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

type fakeUserAPI struct {
	loginErr   error
	logoutErr  error
	logoutHits int
}

func (f *fakeUserAPI) Login(ctx context.Context, req ports.LoginRequest) (*entities.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &entities.Session{AccessToken: "at", RefreshToken: "rt"}, nil
}

func (f *fakeUserAPI) Join(ctx context.Context, req ports.JoinRequest) error { return nil }

func (f *fakeUserAPI) SendEmailCode(ctx context.Context, email string) error { return nil }

func (f *fakeUserAPI) CheckEmailCode(ctx context.Context, email, code string) error { return nil }

func (f *fakeUserAPI) ChangePassword(ctx context.Context, req ports.ChangePasswordRequest) error {
	return nil
}

func (f *fakeUserAPI) Logout(ctx context.Context) error {
	f.logoutHits++
	return f.logoutErr
}

func (f *fakeUserAPI) DeleteAccount(ctx context.Context) error { return nil }

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u@11job.site",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestLoginStoresSession(t *testing.T) {
	store := session.New("")
	svc := NewSessionService(&fakeUserAPI{}, store, logger.NewNop())

	sess, err := svc.Login(context.Background(), ports.LoginRequest{Email: "u@11job.site", Password: "pw"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.Email != "u@11job.site" {
		t.Errorf("email not set on session: %+v", sess)
	}

	token, ok := store.Token()
	if !ok || token != "at" {
		t.Errorf("token not stored: %q, %v", token, ok)
	}
}

func TestLoginFailureLeavesStoreEmpty(t *testing.T) {
	store := session.New("")
	svc := NewSessionService(&fakeUserAPI{loginErr: errors.New("bad credentials")}, store, logger.NewNop())

	if _, err := svc.Login(context.Background(), ports.LoginRequest{Email: "u@11job.site", Password: "pw"}); err == nil {
		t.Fatal("expected login to fail")
	}
	if _, ok := store.Token(); ok {
		t.Error("failed login stored a token")
	}
}

func TestLogoutClearsLocalStateEvenWhenRemoteFails(t *testing.T) {
	store := session.New("")
	api := &fakeUserAPI{logoutErr: errors.New("backend down")}
	svc := NewSessionService(api, store, logger.NewNop())

	if _, err := svc.Login(context.Background(), ports.LoginRequest{Email: "u@11job.site", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if api.logoutHits != 1 {
		t.Errorf("remote logout not attempted: %d hits", api.logoutHits)
	}
	if _, ok := store.Token(); ok {
		t.Error("local session survived logout")
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		saved bool
		want  bool
	}{
		{
			name: "no session",
			want: true,
		},
		{
			name:  "expired token",
			token: "placeholder-expired",
			saved: true,
			want:  true,
		},
		{
			name:  "live token",
			token: "placeholder-live",
			saved: true,
			want:  false,
		},
		{
			name:  "opaque token never expires locally",
			token: "not-a-jwt",
			saved: true,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token
			switch token {
			case "placeholder-expired":
				token = signedToken(t, now.Add(-time.Hour))
			case "placeholder-live":
				token = signedToken(t, now.Add(time.Hour))
			}

			store := session.New("")
			svc := NewSessionService(&fakeUserAPI{}, store, logger.NewNop())
			if tt.saved {
				if err := store.Save(&entities.Session{Email: "u@11job.site", AccessToken: token}); err != nil {
					t.Fatalf("Save failed: %v", err)
				}
			}

			if got := svc.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeleteAccountClearsSession(t *testing.T) {
	store := session.New("")
	svc := NewSessionService(&fakeUserAPI{}, store, logger.NewNop())

	if _, err := svc.Login(context.Background(), ports.LoginRequest{Email: "u@11job.site", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := svc.DeleteAccount(context.Background()); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Error("session survived account deletion")
	}
}
