package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testNotifier(url string, opts ...Option) *Notifier {
	base := []Option{
		WithRetryDelay(10 * time.Millisecond),
		WithLogf(func(string, ...any) {}),
	}
	return New(url, append(base, opts...)...)
}

func TestSend_Delivered(t *testing.T) {
	t.Parallel()
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := testNotifier(server.URL)
	if err := n.Send(context.Background(), "Disk alert", "disk at 91%", SeverityCritical); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestSend_RecoverableFailures(t *testing.T) {
	t.Parallel()
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := testNotifier(server.URL)
	if err := n.Send(context.Background(), "CPU alert", "cpu at 85%", SeverityCritical); err != nil {
		t.Fatalf("Send() after transient failures: %v", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want exactly 3", got)
	}
}

func TestSend_ExhaustsAttempts(t *testing.T) {
	t.Parallel()
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	n := testNotifier(server.URL)
	err := n.Send(context.Background(), "title", "body", SeverityInfo)
	if err == nil {
		t.Fatal("Send() = nil, want error after exhausting attempts")
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want exactly 3 (default bound)", got)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q should carry the last observed status", err)
	}
}

func TestSend_FixedDelayBetweenAttempts(t *testing.T) {
	t.Parallel()
	var stamps []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stamps = append(stamps, time.Now())
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	delay := 60 * time.Millisecond
	n := testNotifier(server.URL, WithRetryDelay(delay))
	_ = n.Send(context.Background(), "t", "b", SeverityWarn)

	if len(stamps) != 3 {
		t.Fatalf("attempts = %d, want 3", len(stamps))
	}
	tolerance := 30 * time.Millisecond
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		if gap < delay-tolerance || gap > delay+tolerance {
			t.Errorf("gap %d = %v, want ~%v (fixed delay, no backoff)", i, gap, delay)
		}
	}
}

func TestSend_ConfigurationErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "discord.com/api/webhooks/123"},
		{"bad scheme", "ftp://discord.com/api/webhooks/123"},
		{"no host", "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := testNotifier(tt.url)
			err := n.Send(context.Background(), "t", "b", SeverityInfo)
			if err == nil {
				t.Fatal("Send() = nil, want configuration error")
			}
			if !strings.Contains(err.Error(), "webhook not configured") {
				t.Errorf("error %q should identify a configuration problem", err)
			}
		})
	}
}

func TestSend_ConfigErrorMakesNoNetworkAttempts(t *testing.T) {
	t.Parallel()
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
	}))
	defer server.Close()

	// Endpoint reachable but not configured on the notifier.
	n := testNotifier("")
	_ = n.Send(context.Background(), "t", "b", SeverityInfo)
	if got := attempts.Load(); got != 0 {
		t.Errorf("network attempts = %d, want 0 for configuration error", got)
	}
}

func TestSend_PayloadShape(t *testing.T) {
	t.Parallel()
	var got payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("payload is not valid JSON: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := testNotifier(server.URL, WithUsername("provost-mon"), WithVersion("1.2.3"))
	n.hostname = func() (string, error) { return "web01", nil }
	n.now = func() time.Time { return time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC) }

	if err := n.Send(context.Background(), "Memory alert", "mem at 92% (threshold 90%)", SeverityWarn); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if got.Username != "provost-mon" {
		t.Errorf("username = %q", got.Username)
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(got.Embeds))
	}
	e := got.Embeds[0]
	if e.Title != "Memory alert" || e.Description != "mem at 92% (threshold 90%)" {
		t.Errorf("embed content = %+v", e)
	}
	if e.Color != colorYellow {
		t.Errorf("color = %d, want %d for warn", e.Color, colorYellow)
	}
	for _, want := range []string{"web01", "2026-08-28T06:00:00Z", "1.2.3"} {
		if !strings.Contains(e.Footer.Text, want) {
			t.Errorf("footer %q missing %q", e.Footer.Text, want)
		}
	}
}

func TestSeverity(t *testing.T) {
	t.Parallel()
	if SeverityInfo.Color() != colorGreen || SeverityWarn.Color() != colorYellow || SeverityCritical.Color() != colorRed {
		t.Error("severity color mapping is wrong")
	}

	for _, name := range []string{"info", "warn", "critical"} {
		sev, err := ParseSeverity(name)
		if err != nil {
			t.Errorf("ParseSeverity(%q) error: %v", name, err)
		}
		if sev.String() != name {
			t.Errorf("round trip %q -> %q", name, sev.String())
		}
	}

	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("ParseSeverity(fatal) should fail")
	}
}
