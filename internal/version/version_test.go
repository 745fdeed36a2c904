package version

import (
	"runtime/debug"
	"testing"
	"time"
)

func TestCurrentPrefersBuildVersion(t *testing.T) {
	old := buildVersion
	buildVersion = "v1.2.3"
	t.Cleanup(func() { buildVersion = old })

	if got := Current(); got != "v1.2.3" {
		t.Errorf("Expected v1.2.3, got %q", got)
	}
}

func TestPseudoVersion(t *testing.T) {
	ts := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		settings []debug.BuildSetting
		want     string
	}{
		{
			name: "Clean",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "1234567890abcdef"},
				{Key: "vcs.time", Value: ts.Format(time.RFC3339)},
			},
			want: "v0.0.0-20250102030405-1234567890ab",
		},
		{
			name: "Dirty",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.time", Value: ts.Format(time.RFC3339)},
				{Key: "vcs.modified", Value: "true"},
			},
			want: "v0.0.0-20250102030405-abc+dirty",
		},
		{
			name:     "No VCS",
			settings: nil,
			want:     "",
		},
		{
			name: "Bad time",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.time", Value: "yesterday"},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pseudoVersion(tt.settings); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
