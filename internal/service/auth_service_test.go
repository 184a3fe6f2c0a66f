package service

import (
	"Vibes/internal/repo"
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newAuthService(t *testing.T) (*AuthService, *observer.ObservedLogs) {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: filepath.Join(t.TempDir(), "auth.db")}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core).Sugar()
	svc := NewAuthService(repo.NewOTPRepository(db), repo.NewProfileRepository(db), "test-secret", logger)
	return svc, logs
}

// issuedCode достаёт код из лога сервиса (в dev-режиме он «отправляется» логом).
func issuedCode(t *testing.T, logs *observer.ObservedLogs) string {
	t.Helper()
	for _, e := range logs.All() {
		if e.Message != "OTP issued" {
			continue
		}
		for _, f := range e.Context {
			if f.Key == "code" {
				return f.String
			}
		}
	}
	t.Fatalf("no OTP in logs")
	return ""
}

func TestAuthService_OTPRoundTrip(t *testing.T) {
	svc, logs := newAuthService(t)
	ctx := context.Background()

	if err := svc.RequestOTP(ctx, "new@example.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	code := issuedCode(t, logs)
	if !regexp.MustCompile(`^\d{6}$`).MatchString(code) {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	token, authID, err := svc.VerifyOTP(ctx, "new@example.com", code)
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if token == "" || authID == "" {
		t.Fatalf("expected token and auth id, got %q / %q", token, authID)
	}

	// повторный verify того же кода должен отклоняться (код погашен)
	_, _, err = svc.VerifyOTP(ctx, "new@example.com", code)
	if !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("reused code must fail with ErrInvalidOTP, got %v", err)
	}
}

func TestAuthService_WrongCode(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if err := svc.RequestOTP(ctx, "a@example.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	_, _, err := svc.VerifyOTP(ctx, "a@example.com", "000000")
	if !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestAuthService_SecondSignInKeepsProfile(t *testing.T) {
	svc, logs := newAuthService(t)
	ctx := context.Background()

	if err := svc.RequestOTP(ctx, "b@example.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	_, firstID, err := svc.VerifyOTP(ctx, "b@example.com", issuedCode(t, logs))
	if err != nil {
		t.Fatalf("first VerifyOTP failed: %v", err)
	}

	logs.TakeAll()
	if err := svc.RequestOTP(ctx, "b@example.com"); err != nil {
		t.Fatalf("second RequestOTP failed: %v", err)
	}
	_, secondID, err := svc.VerifyOTP(ctx, "b@example.com", issuedCode(t, logs))
	if err != nil {
		t.Fatalf("second VerifyOTP failed: %v", err)
	}
	if firstID != secondID {
		t.Fatalf("same email must map to one profile: %q vs %q", firstID, secondID)
	}
}
