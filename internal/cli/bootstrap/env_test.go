package bootstrap

import (
	fsrepo "Vibes/internal/cli/repo/fs"
	"Vibes/internal/config"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// helper: временный пользовательский конфиг для тестов
func setTempCfg(t *testing.T) string {
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
	return dir
}

func testConfig() *config.Config {
	return &config.Config{ServerURL: "http://localhost:8081", DwellMS: 3000}
}

func TestOpenEnv_SuccessAndCleanup(t *testing.T) {
	setTempCfg(t)
	if err := (fsrepo.AuthFSStore{}).SaveLogin("john@example.com"); err != nil {
		t.Fatalf("save login: %v", err)
	}
	env, done, err := OpenEnv(testConfig())
	if err != nil {
		t.Fatalf("OpenEnv: %v", err)
	}
	if env.Reconciler == nil || env.Engagement == nil || env.Feed == nil || env.Auth == nil || env.Tracker == nil {
		t.Fatalf("env not fully assembled: %+v", env)
	}
	if err := done(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	// повторный вызов cleanup не должен паниковать/падать
	_ = done()
}

func TestOpenEnv_ErrorWhenNoLogin(t *testing.T) {
	setTempCfg(t)
	if _, _, err := OpenEnv(testConfig()); err == nil {
		t.Fatalf("expected error when no active login saved")
	}
}

func TestOpenEnvForLogin_FailsWhenClientDBPathIsFile(t *testing.T) {
	dir := setTempCfg(t)
	tmpFile := filepath.Join(dir, "not_dir")
	if err := os.WriteFile(tmpFile, []byte("x"), 0o600); err != nil {
		t.Fatalf("prepare tmp file: %v", err)
	}
	t.Setenv("CLIENT_DB_PATH", tmpFile)
	if _, _, err := OpenEnvForLogin(testConfig(), "john@example.com"); err == nil {
		t.Fatalf("expected error when CLIENT_DB_PATH points to file, got nil")
	}
}
