package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/provost-sh/provost/internal/platform/system"
)

// writeMonitorConfig writes a config with a webhook URL and fabricated
// inputs the mock environment can serve.
func writeMonitorConfig(t *testing.T, webhookURL string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "provost.yaml")
	content := "server:\n  admin_user: deploy\n  ssh_port: 22\nwebhook:\n  url: " + webhookURL + "\nstate_dir: " + dir + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func swapMonitorEnv(t *testing.T) *system.MockEnvironment {
	t.Helper()
	env := system.NewMockEnvironment()
	env.Files["/var/log/auth.log"] = []byte("sshd[1]: Accepted publickey for deploy\n")
	env.MissingBinaries["fail2ban-client"] = true

	orig := newEnvironment
	newEnvironment = func() system.Environment { return env }
	t.Cleanup(func() { newEnvironment = orig })
	return env
}

func TestMonitorSecurity_DeliversForcedStatus(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	cfgPath := writeMonitorConfig(t, srv.URL)
	swapMonitorEnv(t)

	if err := MonitorSecurity(context.Background(), cfgPath, true); err != nil {
		t.Fatalf("MonitorSecurity() error: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("webhook received %d requests, want 1", hits.Load())
	}
}

func TestMonitorSecurity_QuietHostSendsNothing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	cfgPath := writeMonitorConfig(t, srv.URL)
	swapMonitorEnv(t)

	if err := MonitorSecurity(context.Background(), cfgPath, false); err != nil {
		t.Fatalf("MonitorSecurity() error: %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("quiet host sent %d messages, want 0", hits.Load())
	}
}

func TestMonitor_RequiresWebhook(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "provost.yaml")
	content := "server:\n  admin_user: deploy\n  ssh_port: 22\nstate_dir: " + dir + "\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	swapMonitorEnv(t)

	if err := MonitorSecurity(context.Background(), cfgPath, false); err == nil {
		t.Fatal("MonitorSecurity() = nil without a webhook URL, want error")
	}
}
