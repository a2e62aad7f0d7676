package ui

import "testing"

func TestStatusMessages(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "success", got: Success("done"), want: "✓ done"},
		{name: "successf", got: Successf("did %d things", 2), want: "✓ did 2 things"},
		{name: "error", got: Error("broke"), want: "✗ broke"},
		{name: "warning", got: Warning("careful"), want: "⚠ careful"},
		{name: "warningf", got: Warningf("missing '%s'", "work"), want: "⚠ missing 'work'"},
		{name: "info", got: Info("fyi"), want: "ℹ fyi"},
		{name: "infof", got: Infof("%d items", 3), want: "ℹ 3 items"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestCountPluralizes(t *testing.T) {
	if got := Count(1, "match", "matches"); got != "(1 match)" {
		t.Fatalf("singular count = %q", got)
	}
	if got := Count(3, "match", "matches"); got != "(3 matches)" {
		t.Fatalf("plural count = %q", got)
	}
}
