package odt

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/dlvinn/tashih/model"
)

// createTestODT creates a minimal ODT file for testing.
func createTestODT(t *testing.T, bodyContent string) string {
	t.Helper()

	tmpDir := t.TempDir()
	odtPath := filepath.Join(tmpDir, "test.odt")

	f, err := os.Create(odtPath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	zw := zip.NewWriter(f)

	mw, _ := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	mw.Write([]byte("application/vnd.oasis.opendocument.text"))

	content := `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0" xmlns:xlink="http://www.w3.org/1999/xlink" office:version="1.2">
<office:automatic-styles><style:style style:name="P1" style:family="paragraph"/></office:automatic-styles>
<office:body><office:text>` + bodyContent + `</office:text></office:body>
</office:document-content>`
	cw, _ := zw.Create("content.xml")
	cw.Write([]byte(content))

	manifest := `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0">
  <manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/>
  <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
</manifest:manifest>`
	fw, _ := zw.Create("META-INF/manifest.xml")
	fw.Write([]byte(manifest))

	zw.Close()
	f.Close()

	return odtPath
}

// openContent builds an ODT holding bodyContent and opens it.
func openContent(t *testing.T, bodyContent string) *Document {
	t.Helper()
	d, err := Open(createTestODT(t, bodyContent))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return d
}

func TestOpen(t *testing.T) {
	d := openContent(t, `<text:p>Hello World</text:p>`)

	if got := len(d.Blocks()); got != 1 {
		t.Errorf("Blocks() length = %d, want 1", got)
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.odt")
	if err == nil {
		t.Error("Open() should return error for nonexistent file")
	}
}

func TestOpen_MissingContentXML(t *testing.T) {
	tmpDir := t.TempDir()
	odtPath := filepath.Join(tmpDir, "empty.odt")

	f, err := os.Create(odtPath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("styles.xml")
	w.Write([]byte("<root/>"))
	zw.Close()
	f.Close()

	_, err = Open(odtPath)
	if err == nil {
		t.Error("Open() should return error when content.xml is missing")
	}
}

func TestText(t *testing.T) {
	body := `<text:p>First</text:p>` +
		`<text:p>with<text:tab/>tab and<text:s text:c="3"/>spaces</text:p>` +
		`<text:p>line<text:line-break/>break</text:p>`
	d := openContent(t, body)

	want := "First\nwith\ttab and   spaces\nline\nbreak\n"
	if got := d.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestParagraphAdapter_SpansAndRuns(t *testing.T) {
	body := `<text:p>plain <text:span text:style-name="T1">styled</text:span> tail</text:p>`
	d := openContent(t, body)

	p := d.Blocks()[0].(model.Paragraph)
	if got := p.Text(); got != "plain styled tail" {
		t.Errorf("Text() = %q", got)
	}

	runs := p.Runs()
	if len(runs) != 3 {
		t.Fatalf("Runs() length = %d, want 3", len(runs))
	}
	runs[1].SetText("عربي")
	if got := p.Text(); got != "plain عربي tail" {
		t.Errorf("Text() after SetText = %q", got)
	}
}

func TestParagraphAdapter_Heading(t *testing.T) {
	body := `<text:h text:outline-level="2" text:style-name="Heading_20_2">العنوان</text:h>`
	d := openContent(t, body)

	p := d.Blocks()[0].(model.Paragraph)
	if p.StyleName() != "Heading_20_2" {
		t.Errorf("StyleName() = %q", p.StyleName())
	}
	if p.Text() != "العنوان" {
		t.Errorf("Text() = %q", p.Text())
	}
}

func TestParagraphAdapter_DirectionAndAlignment(t *testing.T) {
	d := openContent(t, `<text:p>نص</text:p>`)
	p := d.Blocks()[0].(model.Paragraph)

	if p.Direction() != model.LTR || p.Alignment() != model.AlignUnspecified {
		t.Error("fresh paragraph should report LTR and unspecified alignment")
	}

	p.SetDirection(model.RTL)
	p.SetAlignment(model.AlignRight)

	if p.Direction() != model.RTL {
		t.Error("direction should be RTL after SetDirection")
	}
	if p.Alignment() != model.AlignRight {
		t.Error("alignment should be right after SetAlignment")
	}
}

func TestListItemsSurfaceAsNumberedParagraphs(t *testing.T) {
	body := `<text:list text:style-name="L1">` +
		`<text:list-item><text:p>بند أول</text:p></text:list-item>` +
		`<text:list-item><text:p>بند ثان</text:p></text:list-item>` +
		`</text:list>` +
		`<text:p>عادي</text:p>`
	d := openContent(t, body)

	blocks := d.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("Blocks() length = %d, want 3", len(blocks))
	}
	if !blocks[0].(model.Paragraph).HasNumbering() {
		t.Error("list item paragraph should have numbering")
	}
	if blocks[2].(model.Paragraph).HasNumbering() {
		t.Error("plain paragraph should not have numbering")
	}
}

func TestParagraphAdapter_ReplaceText(t *testing.T) {
	body := `<text:p>النطاق<text:span text:style-name="T1">.2</text:span></text:p>`
	d := openContent(t, body)
	p := d.Blocks()[0].(model.Paragraph)

	p.ReplaceText("2. النطاق", model.RunStyle{})
	if got := p.Text(); got != "2. النطاق" {
		t.Errorf("Text() = %q", got)
	}
	if got := len(p.Runs()); got != 1 {
		t.Errorf("Runs() length = %d, want 1", got)
	}
}

func TestTableAdapter(t *testing.T) {
	body := tableBody([]string{"أ", "ب", "ج"})
	d := openContent(t, body)

	tbl, ok := d.Blocks()[0].(model.Table)
	if !ok {
		t.Fatalf("block is %T, want model.Table", d.Blocks()[0])
	}
	rows := tbl.Rows()
	if len(rows) != 1 {
		t.Fatalf("Rows() length = %d, want 1", len(rows))
	}
	cells := rows[0].Cells()
	if len(cells) != 3 {
		t.Fatalf("Cells() length = %d, want 3", len(cells))
	}
	if cells[0].Text() != "أ" {
		t.Errorf("first cell = %q", cells[0].Text())
	}
}

func TestRowAdapter_Reverse(t *testing.T) {
	d := openContent(t, tableBody([]string{"أ", "ب", "ج"}))

	row := d.Blocks()[0].(model.Table).Rows()[0]
	if err := row.Reverse(); err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}

	cells := row.Cells()
	got := []string{cells[0].Text(), cells[1].Text(), cells[2].Text()}
	want := []string{"ج", "ب", "أ"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// tableBody builds a one-row table with the given cell texts.
func tableBody(cellTexts []string) string {
	s := `<table:table table:name="Table1" table:style-name="Table1">` +
		`<table:table-column table:number-columns-repeated="3"/>` +
		`<table:table-row>`
	for _, txt := range cellTexts {
		s += `<table:table-cell office:value-type="string"><text:p>` + txt + `</text:p></table:table-cell>`
	}
	return s + `</table:table-row></table:table>`
}
