package cli

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAlignCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		resolved string
		wantErr  bool
	}{
		{"horizontal", []string{"align", "right"}, "end,start", false},
		{"both axes", []string{"align", "right", "bottom"}, "end,end", false},
		{"rtl", []string{"align", "right", "--lang", "ar"}, "start,start", false},
		{"keyword", []string{"align", "--vertical", "bottom"}, "start,end", false},
		{"previous kept", []string{"align", "--vertical", "left", "--previous", "end,center"}, "end,center", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.resolved) {
				t.Errorf("output does not show %s:\n%s", tt.resolved, out)
			}
		})
	}
}

func TestAlignCommandJSON(t *testing.T) {
	out, err := execute(t, "align", "center", "--body", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var res struct {
		Commands []struct {
			Name string `json:"name"`
		} `json:"commands"`
		Diagnostics []any `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	var names []string
	for _, c := range res.Commands {
		names = append(names, c.Name)
	}
	if got := strings.Join(names, " "); got != "set-alignment layout-tree restore-alignment" {
		t.Errorf("commands = %q", got)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestAlignCommandBadRequest(t *testing.T) {
	for _, args := range [][]string{
		{"align", "left", "--previous", "sideways"},
		{"align", "left", "--primary", "up"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}
