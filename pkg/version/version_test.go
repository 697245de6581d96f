package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"defaults", "dev", "none", "dev"},
		{"empty version", "", "", "dev"},
		{"short commit", "1.2.0", "abc", "1.2.0 (abc)"},
		{"long commit", "1.2.0", "0123456789abcdef", "1.2.0 (0123456)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			if got := Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlatform(t *testing.T) {
	if got, want := Platform(), runtime.GOOS+"/"+runtime.GOARCH; got != want {
		t.Errorf("Platform() = %q, want %q", got, want)
	}
}

func TestInfo(t *testing.T) {
	info := Info("course_assistant")
	for _, want := range []string{"course_assistant version", "commit:", "built:", "go:", "platform:"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info should contain %q, got: %s", want, info)
		}
	}
}
