package docx

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dlvinn/tashih/model"
)

// saveAndReopen round-trips a document through Save and Open.
func saveAndReopen(t *testing.T, d *Document) *Document {
	t.Helper()

	outPath := filepath.Join(t.TempDir(), "out.docx")
	if err := d.Save(outPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	reopened, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open() after Save error = %v", err)
	}
	return reopened
}

func TestSave_RoundTripText(t *testing.T) {
	content := `<w:p><w:r><w:t>مرحبا بالعالم</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">trailing </w:t></w:r></w:p>`
	d := openContent(t, content)

	reopened := saveAndReopen(t, d)

	want := "مرحبا بالعالم\ntrailing \n"
	if got := reopened.Text(); got != want {
		t.Errorf("Text() after round trip = %q, want %q", got, want)
	}
}

func TestSave_RoundTripMutations(t *testing.T) {
	content := `<w:p><w:r><w:t>فقرة</w:t></w:r></w:p>`
	d := openContent(t, content)

	p := d.Blocks()[0].(model.Paragraph)
	p.SetDirection(model.RTL)
	p.SetAlignment(model.AlignRight)
	for _, r := range p.Runs() {
		r.SetDirection(model.RTL)
	}

	reopened := saveAndReopen(t, d)
	rp := reopened.Blocks()[0].(model.Paragraph)

	if rp.Direction() != model.RTL {
		t.Error("paragraph direction lost in round trip")
	}
	if rp.Alignment() != model.AlignRight {
		t.Error("paragraph alignment lost in round trip")
	}
	if rp.Runs()[0].Direction() != model.RTL {
		t.Error("run direction lost in round trip")
	}
}

func TestSave_RoundTripTableMirror(t *testing.T) {
	content := tableXMLContent([]string{"أ", "ب", "ج"})
	d := openContent(t, content)

	if err := d.Blocks()[0].(model.Table).Rows()[0].Reverse(); err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}

	reopened := saveAndReopen(t, d)
	cells := reopened.Blocks()[0].(model.Table).Rows()[0].Cells()
	got := []string{cells[0].Text(), cells[1].Text(), cells[2].Text()}
	want := []string{"ج", "ب", "أ"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSave_PreservesOtherParts(t *testing.T) {
	content := `<w:p><w:r><w:t>x</w:t></w:r></w:p>`
	d := openContent(t, content)

	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading output archive: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if !names[want] {
			t.Errorf("output archive missing %s", want)
		}
	}
}

func TestSave_PreservesRawProperties(t *testing.T) {
	content := `<w:tbl>` +
		`<w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders><w:top w:val="single"/></w:tblBorders></w:tblPr>` +
		`<w:tblGrid><w:gridCol w:w="2500"/><w:gridCol w:w="2500"/></w:tblGrid>` +
		`<w:tr><w:trPr><w:trHeight w:val="400"/></w:trPr>` +
		`<w:tc><w:tcPr><w:tcW w:w="2500" w:type="dxa"/></w:tcPr><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc>` +
		`</w:tr></w:tbl>` +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`
	d := openContent(t, content)

	out := string(d.marshalDocument())
	for _, want := range []string{
		`<w:tblW w:w="5000" w:type="pct"/>`,
		`<w:gridCol w:w="2500"/>`,
		`<w:trHeight w:val="400"/>`,
		`<w:tcW w:w="2500" w:type="dxa"/>`,
		`<w:pgSz w:w="11906" w:h="16838"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing raw fragment %s", want)
		}
	}
}

func TestSave_EscapesText(t *testing.T) {
	content := `<w:p><w:r><w:t>a &amp; b &lt; c</w:t></w:r></w:p>`
	d := openContent(t, content)

	out := string(d.marshalDocument())
	if !strings.Contains(out, "a &amp; b &lt; c") {
		t.Errorf("special characters not escaped in output: %s", out)
	}

	reopened := saveAndReopen(t, d)
	if got := reopened.Text(); got != "a & b < c\n" {
		t.Errorf("Text() = %q, want %q", got, "a & b < c\n")
	}
}

func TestSave_PreservesBreaksAndTabs(t *testing.T) {
	content := `<w:p><w:r><w:t>line</w:t><w:br/><w:t>next</w:t><w:tab/><w:t>col</w:t></w:r></w:p>`
	d := openContent(t, content)

	reopened := saveAndReopen(t, d)
	if got := reopened.Text(); got != "line\nnext\tcol\n" {
		t.Errorf("Text() = %q", got)
	}
}
