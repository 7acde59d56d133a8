package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02"

	if got := Get(); got != (Info{Version: "v1.2.3", Commit: "abc123", Date: "2026-01-02"}) {
		t.Errorf("Get = %+v", got)
	}
	if !strings.Contains(String(), "commit: abc123") {
		t.Errorf("String = %q", String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version v1.2.3") {
		t.Errorf("Template = %q", Template())
	}
}
