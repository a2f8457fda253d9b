package tashih

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dlvinn/tashih/docx"
	"github.com/dlvinn/tashih/normalize"
	"github.com/dlvinn/tashih/odt"
)

// createDOCX builds a minimal DOCX file whose body holds content.
func createDOCX(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}

	zw := zip.NewWriter(f)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(contentTypes))

	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
	w, _ = zw.Create("_rels/.rels")
	w.Write([]byte(rels))

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + content + `</w:body>
</w:document>`
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(document))

	zw.Close()
	f.Close()

	return path
}

// createODT builds a minimal ODT file whose office:text holds body.
func createODT(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}

	zw := zip.NewWriter(f)

	mw, _ := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	mw.Write([]byte("application/vnd.oasis.opendocument.text"))

	content := `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" office:version="1.2">
<office:body><office:text>` + body + `</office:text></office:body>
</office:document-content>`
	cw, _ := zw.Create("content.xml")
	cw.Write([]byte(content))

	zw.Close()
	f.Close()

	return path
}

func TestFix_DOCX(t *testing.T) {
	dir := t.TempDir()
	input := createDOCX(t, dir, "in.docx",
		`<w:p><w:r><w:t>ÇáÚÑÇÞ</w:t></w:r></w:p>`)
	output := filepath.Join(dir, "out.docx")

	report, warnings, err := Open(input).OutputPath(output).Fix()
	if err != nil {
		t.Fatalf("Fix() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if report.Counters.EncodingFixes == 0 {
		t.Error("encoding fix not counted")
	}

	fixed, err := docx.Open(output)
	if err != nil {
		t.Fatalf("opening fixed output: %v", err)
	}
	if got := fixed.Text(); got != "العراق\n" {
		t.Errorf("fixed text = %q, want %q", got, "العراق\n")
	}
}

func TestFix_ODT(t *testing.T) {
	dir := t.TempDir()
	input := createODT(t, dir, "in.odt", `<text:p>ÂÈ ÇáÚÑÇÞ</text:p>`)

	report, _, err := Open(input).Fix()
	if err != nil {
		t.Fatalf("Fix() error = %v", err)
	}
	if report.Counters.EncodingFixes == 0 {
		t.Error("encoding fix not counted")
	}

	output := filepath.Join(dir, "in_fixed.odt")
	fixed, err := odt.Open(output)
	if err != nil {
		t.Fatalf("opening fixed output: %v", err)
	}
	if got := fixed.Text(); got != "آب العراق\n" {
		t.Errorf("fixed text = %q, want %q", got, "آب العراق\n")
	}
}

func TestFix_DryRun(t *testing.T) {
	dir := t.TempDir()
	input := createDOCX(t, dir, "in.docx",
		`<w:p><w:r><w:t>ãÑÍÈÇ</w:t></w:r></w:p>`)

	report, _, err := Open(input).DryRun().Fix()
	if err != nil {
		t.Fatalf("Fix() error = %v", err)
	}
	if report.Counters.EncodingFixes == 0 {
		t.Error("dry run should still report fixes")
	}

	if _, err := os.Stat(filepath.Join(dir, "in_fixed.docx")); !os.IsNotExist(err) {
		t.Error("dry run must not write an output file")
	}
}

func TestFix_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	os.WriteFile(path, []byte("plain text"), 0644)

	_, _, err := Open(path).Fix()
	if err == nil {
		t.Fatal("Fix() should reject unsupported formats")
	}
	if !strings.Contains(err.Error(), "unsupported file format") {
		t.Errorf("error = %v", err)
	}
}

func TestFix_NoFilename(t *testing.T) {
	_, _, err := Open("").Fix()
	if err == nil {
		t.Error("Fix() should fail without a filename")
	}
}

func TestFix_MissingFile(t *testing.T) {
	_, _, err := Open("/nonexistent/file.docx").Fix()
	if err == nil {
		t.Error("Fix() should fail for a missing file")
	}
}

func TestOptions_CloneOnWrite(t *testing.T) {
	base := Open("doc.docx")
	modified := base.WithoutEncodingFix().WithoutTableMirror().DryRun()

	if !base.options.fixEncoding || !base.options.mirrorTables || base.options.dryRun {
		t.Error("option methods must not mutate the original Fixer")
	}
	if modified.options.fixEncoding || modified.options.mirrorTables || !modified.options.dryRun {
		t.Error("chained options not applied to the new Fixer")
	}
}

func TestFix_WithoutEncodingFix(t *testing.T) {
	dir := t.TempDir()
	input := createDOCX(t, dir, "in.docx",
		`<w:p><w:r><w:t>ÇáÚÑÇÞ</w:t></w:r></w:p>`)
	output := filepath.Join(dir, "out.docx")

	report, _, err := Open(input).WithoutEncodingFix().OutputPath(output).Fix()
	if err != nil {
		t.Fatalf("Fix() error = %v", err)
	}
	if report.Counters.EncodingFixes != 0 {
		t.Error("encoding fixes counted despite WithoutEncodingFix")
	}

	fixed, err := docx.Open(output)
	if err != nil {
		t.Fatalf("opening fixed output: %v", err)
	}
	if got := fixed.Text(); got != "ÇáÚÑÇÞ\n" {
		t.Errorf("text = %q, want Mojibake left untouched", got)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"docx", "report.docx", "report_fixed.docx"},
		{"odt", "report.odt", "report_fixed.odt"},
		{"with directory", filepath.Join("a", "b", "doc.docx"), filepath.Join("a", "b", "doc_fixed.docx")},
		{"no extension", "report", "report_fixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultOutputPath(tt.input); got != tt.want {
				t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}

	warnings := []Warning{
		{Kind: normalize.WarnContentMismatch, Message: "paragraph count changed"},
	}
	got := FormatWarnings(warnings)
	if !strings.Contains(got, "paragraph count changed") {
		t.Errorf("FormatWarnings() = %q", got)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must() = %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must() should panic on error")
		}
	}()
	Must(0, os.ErrNotExist)
}
