package cli

import "testing"

func TestSplitColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line     string
		wantOK   bool
		wantText string
		wantRest string
	}{
		{"      --dry-run          report only", true, "--dry-run", "          report only"},
		{"  -f, --force   Overwrite", true, "-f, --force", "   Overwrite"},
		{"      --prefix string    prefix", true, "--prefix string", "    prefix"},
		{"", false, "", ""},
		{"   single", false, "", ""},
	}

	for _, tt := range tests {
		name, rest, ok := splitColumns(tt.line)
		if ok != tt.wantOK {
			t.Errorf("splitColumns(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if name.text != tt.wantText || rest != tt.wantRest {
			t.Errorf("splitColumns(%q) = %q, %q; want %q, %q", tt.line, name.text, rest, tt.wantText, tt.wantRest)
		}
		if name.indent+name.text+rest != tt.line {
			t.Errorf("splitColumns(%q) lost characters", tt.line)
		}
	}
}

func TestHelpFormatter_NoColorKeepsText(t *testing.T) {
	t.Parallel()

	h := NewHelpFormatter("never", nil)

	usage := "  -f, --force           Overwrite\n      --format string   Output format\n"
	if got := h.styleFlagsUsage(usage); got != "  -f, --force           Overwrite\n      --format string   Output format" {
		t.Errorf("styleFlagsUsage changed plain text: %q", got)
	}

	long := "Intro  \nWARNING: keep backups\t"
	if got := h.styleLong(long); got != "Intro\nWARNING: keep backups" {
		t.Errorf("styleLong() = %q", got)
	}
}
