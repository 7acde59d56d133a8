package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/neunenak/typst/pkg/history"
)

func TestAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := ago(tt.d); got != tt.want {
			t.Errorf("ago(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestHistoryTable(t *testing.T) {
	now := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	recs := []history.Record{
		{Path: "intro.toml", Lang: "en", Final: "end,start", DocHash: "0123456789abcdef", CreatedAt: now.Add(-2 * time.Minute)},
		{Lang: "ar", Final: "start,start", Diagnostics: []string{"1:1: error: x"}, CreatedAt: now.Add(-3 * time.Hour)},
	}
	out := historyTable(recs, now)
	for _, want := range []string{"intro.toml", "(stdin)", "end,start", "0123456789ab", "2m ago", "3h ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Error("hash not shortened")
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	out, err := execute(t, "history")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No compilations recorded") {
		t.Errorf("output = %q", out)
	}
}
