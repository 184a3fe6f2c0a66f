package commands

import (
	"Vibes/internal/config"
	"Vibes/internal/handlers"
	"Vibes/internal/model"
	"Vibes/internal/repo"
	"Vibes/internal/service"
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// setTempHome изолирует конфиг-каталог и клиентскую БД в temp.
func setTempHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	db := filepath.Join(dir, "db")
	_ = os.MkdirAll(db, 0o700)
	t.Setenv("CLIENT_DB_PATH", db)
}

// captureOut подменяет вывод CLI на буфер до конца теста.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

// newServer поднимает полный серверный стек поверх временной SQLite.
func newServer(t *testing.T) (*httptest.Server, *gorm.DB, *observer.ObservedLogs) {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: filepath.Join(t.TempDir(), "server.db")}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core).Sugar()
	cfg := &config.Config{AuthSecret: "test-secret"}

	profiles := repo.NewProfileRepository(db)
	posts := repo.NewPostRepository(db)
	h := handlers.NewHandler(
		service.NewAuthService(repo.NewOTPRepository(db), profiles, cfg.AuthSecret, logger),
		service.NewProfileService(profiles),
		service.NewFeedService(posts, profiles),
		service.NewEngagementService(repo.NewBookmarkRepository(db), repo.NewLikeRepository(db), posts),
		logger, cfg,
	)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	return srv, db, logs
}

func issuedCode(t *testing.T, logs *observer.ObservedLogs) string {
	t.Helper()
	for _, entry := range logs.TakeAll() {
		if entry.Message != "OTP issued" {
			continue
		}
		for _, f := range entry.Context {
			if f.Key == "code" {
				return f.String
			}
		}
	}
	t.Fatalf("no OTP issued")
	return ""
}

func clientConfig(serverURL string) *config.Config {
	return &config.Config{ServerURL: serverURL, DwellMS: 50, PingIntervalMS: 1000}
}

func TestDispatch_HelpAndUnknown(t *testing.T) {
	setTempHome(t)
	out := captureOut(t)
	cfg := clientConfig("http://localhost:0")

	if code := Dispatch(context.Background(), cfg, []string{"help"}); code != 0 {
		t.Fatalf("help exit code %d", code)
	}
	if !strings.Contains(out.String(), "Vibes CLI") {
		t.Fatalf("global usage not printed: %q", out.String())
	}

	out.Reset()
	if code := Dispatch(context.Background(), cfg, []string{"nope"}); code != 2 {
		t.Fatalf("unknown command exit code %d", code)
	}
	if !strings.Contains(out.String(), "Unknown command: nope") {
		t.Fatalf("unknown command message missing: %q", out.String())
	}
}

func TestDispatch_UsageErrors(t *testing.T) {
	setTempHome(t)
	out := captureOut(t)
	cfg := clientConfig("http://localhost:0")

	// login без аргументов
	if code := Dispatch(context.Background(), cfg, []string{"login"}); code != 2 {
		t.Fatalf("login usage exit code %d", code)
	}
	if !strings.Contains(out.String(), "login <email>") {
		t.Fatalf("usage not shown: %q", out.String())
	}

	// feed с мусорным offset
	out.Reset()
	if code := Dispatch(context.Background(), cfg, []string{"feed", "abc"}); code != 2 {
		t.Fatalf("feed usage exit code %d", code)
	}
}

func TestCommands_FullRoundTrip(t *testing.T) {
	setTempHome(t)
	out := captureOut(t)
	srv, db, logs := newServer(t)
	cfg := clientConfig(srv.URL)
	ctx := context.Background()
	const email = "cli@example.com"

	// login → код в логах сервера
	if code := Dispatch(ctx, cfg, []string{"login", email}); code != 0 {
		t.Fatalf("login failed: %s", out.String())
	}
	otp := issuedCode(t, logs)

	// verify → сессия и первичная сверка
	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"verify", email, otp}); code != 0 {
		t.Fatalf("verify failed: %s", out.String())
	}
	if !strings.Contains(out.String(), "Вход выполнен") {
		t.Fatalf("verify output: %q", out.String())
	}

	// status видит пользователя
	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"status"}); code != 0 {
		t.Fatalf("status failed: %s", out.String())
	}
	if !strings.Contains(out.String(), "Логин: "+email) {
		t.Fatalf("status output: %q", out.String())
	}

	// сеем вайб и переключаем закладку
	p := model.Post{ID: "post-1", Title: "CLI vibe", Content: "c", Type: "funny", ScrapedAt: time.Now()}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}

	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"bookmark", "post-1"}); code != 0 {
		t.Fatalf("bookmark failed: %s", out.String())
	}
	if !strings.Contains(out.String(), "Закладка добавлена") {
		t.Fatalf("bookmark output: %q", out.String())
	}

	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"bookmarks"}); code != 0 {
		t.Fatalf("bookmarks failed: %s", out.String())
	}
	if !strings.Contains(out.String(), "CLI vibe") {
		t.Fatalf("bookmarks output: %q", out.String())
	}

	// повторный bookmark снимает запись
	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"bookmark", "post-1"}); code != 0 {
		t.Fatalf("second bookmark failed: %s", out.String())
	}
	if !strings.Contains(out.String(), "Закладка снята") {
		t.Fatalf("second bookmark output: %q", out.String())
	}

	// read отмечает прочитанным, sync после этого ничего не ломает
	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"read", "post-1"}); code != 0 {
		t.Fatalf("read failed: %s", out.String())
	}
	if code := Dispatch(ctx, cfg, []string{"sync"}); code != 0 {
		t.Fatalf("sync failed: %s", out.String())
	}

	// logout стирает кеш
	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"logout"}); code != 0 {
		t.Fatalf("logout failed: %s", out.String())
	}
	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"bookmarks"}); code != 1 {
		t.Fatalf("bookmarks after logout: code=%d out=%s", code, out.String())
	}
}

func TestRegistry_AllCommandsPresent(t *testing.T) {
	for _, name := range []string{
		"login", "verify", "logout", "status", "sync",
		"feed", "view", "read", "bookmark", "like",
		"bookmarks", "likes", "watch",
	} {
		if _, ok := Get(name); !ok {
			t.Fatalf("command %q not registered", name)
		}
	}
}
