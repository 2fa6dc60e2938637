package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		lines = append(lines, m)
	}
	return lines
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	nav := newNavigator(t, failingMounter("Home"), Logging(logger))
	ctx := context.Background()

	_, _ = nav.Navigate(ctx, "/region/3")
	_, _ = nav.Navigate(ctx, "/missing/1/2")
	_, _ = nav.Navigate(ctx, "/")

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("got %d log lines, want 3:\n%s", len(lines), buf.String())
	}

	ok, notFound, failed := lines[0], lines[1], lines[2]
	if ok["level"] != "INFO" || ok["msg"] != "navigated" || ok["route"] != "Region" || ok["view"] != "RegionView" {
		t.Errorf("success line = %v", ok)
	}
	if ok["component"] != "navigation" || ok["direction"] != "push" {
		t.Errorf("success line attributes = %v", ok)
	}
	if notFound["level"] != "WARN" || notFound["path"] != "/missing/1/2" {
		t.Errorf("not found line = %v", notFound)
	}
	if _, ok := notFound["route"]; ok {
		t.Error("not found line should carry no route")
	}
	if notFound["from"] != "/region/3" {
		t.Errorf("from = %v", notFound["from"])
	}
	if failed["level"] != "ERROR" || !strings.Contains(failed["error"].(string), "mount failed") {
		t.Errorf("failure line = %v", failed)
	}
}

func TestLogging_NilLogger(t *testing.T) {
	if Logging(nil) == nil {
		t.Fatal("Logging(nil) should fall back to the default logger")
	}
}
