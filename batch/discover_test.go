package batch

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// touch creates an empty file at the joined path.
func touch(t *testing.T, parts ...string) {
	t.Helper()
	path := filepath.Join(parts...)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	touch(t, dir, "a.docx")
	touch(t, dir, "b.odt")
	touch(t, dir, "B2.DOCX")
	touch(t, dir, "notes.txt")
	touch(t, dir, "~$a.docx")      // Word lock file
	touch(t, dir, ".~lock.b.odt")  // LibreOffice lock file
	touch(t, dir, "a_fixed.docx")  // previous output
	touch(t, sub, "nested.docx")

	t.Run("flat", func(t *testing.T) {
		got, err := Discover(dir, false)
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		want := []string{
			filepath.Join(dir, "B2.DOCX"),
			filepath.Join(dir, "a.docx"),
			filepath.Join(dir, "b.odt"),
		}
		assertPaths(t, got, want)
	})

	t.Run("recursive", func(t *testing.T) {
		got, err := Discover(dir, true)
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		want := []string{
			filepath.Join(dir, "B2.DOCX"),
			filepath.Join(dir, "a.docx"),
			filepath.Join(dir, "b.odt"),
			filepath.Join(sub, "nested.docx"),
		}
		assertPaths(t, got, want)
	})
}

func TestDiscover_MissingRoot(t *testing.T) {
	if _, err := Discover("/nonexistent/dir", false); err == nil {
		t.Error("Discover() should fail for a missing directory")
	}
	if _, err := Discover("/nonexistent/dir", true); err == nil {
		t.Error("Discover() should fail for a missing directory when recursive")
	}
}

func TestIsCandidate(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report.docx", true},
		{"report.odt", true},
		{"REPORT.DOCX", true},
		{"report.pdf", false},
		{"report.txt", false},
		{"~$report.docx", false},
		{".~lock.report.odt", false},
		{"report_fixed.docx", false},
		{"report_fixed.odt", false},
		{"fixed_report.docx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCandidate(tt.name); got != tt.want {
				t.Errorf("isCandidate(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// assertPaths compares path slices ignoring order.
func assertPaths(t *testing.T, got, want []string) {
	t.Helper()
	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %d paths %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d = %q, want %q", i, got[i], want[i])
		}
	}
}
