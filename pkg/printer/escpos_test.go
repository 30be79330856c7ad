package printer

import (
	"bytes"
	"strings"
	"testing"
)

func TestKeyValueFillsWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Net Total", "Rs 100.00")

	out := string(doc.Bytes()[2:])
	line := strings.TrimSuffix(out, "\n")
	if len(line) != 32 {
		t.Fatalf("expected 32 chars, got %d: %q", len(line), line)
	}
	if !strings.HasPrefix(line, "Net Total") || !strings.HasSuffix(line, "Rs 100.00") {
		t.Errorf("unexpected line %q", line)
	}
}

func TestItemLineWrapsLongNames(t *testing.T) {
	doc := NewDocument(32)
	doc.ItemLine("2 CTN", "Extra Long Product Name That Wraps Around", "1200.00")

	lines := strings.Split(strings.TrimSuffix(string(doc.Bytes()[2:]), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "2 CTN x Extra") || !strings.HasSuffix(lines[0], "1200.00") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	for _, l := range lines {
		if len(l) > 32 {
			t.Errorf("line exceeds width: %q", l)
		}
	}
}

func TestColumnsAlignValues(t *testing.T) {
	doc := NewDocument(32)
	doc.Columns("Item", 8, "QTY", "Total")

	line := strings.TrimSuffix(string(doc.Bytes()[2:]), "\n")
	if len(line) != 32 {
		t.Fatalf("expected 32 chars, got %d", len(line))
	}
	if !strings.HasSuffix(line, "     QTY   Total") {
		t.Errorf("unexpected columns %q", line)
	}
}

func TestDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(0)
	if !bytes.HasPrefix(doc.Bytes(), []byte{ESC, '@'}) {
		t.Errorf("document must start with ESC @")
	}
	if doc.Width() != 32 {
		t.Errorf("expected default width 32, got %d", doc.Width())
	}
	doc.PartialCut()
	if !bytes.HasSuffix(doc.Bytes(), []byte{GS, 'V', 0x01}) {
		t.Errorf("expected partial cut at end")
	}
}

type countingPrinter struct {
	jobs int
}

func (p *countingPrinter) Print(data []byte) error { p.jobs++; return nil }
func (p *countingPrinter) Close() error            { return nil }
func (p *countingPrinter) IsConnected() bool       { return true }

func TestSerializedPrinterRunsEveryJob(t *testing.T) {
	inner := &countingPrinter{}
	p := Serialized(inner)
	if Serialized(p) != p {
		t.Errorf("wrapping twice should return the same printer")
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			_ = p.Print([]byte("job"))
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if inner.jobs != 10 {
		t.Errorf("expected 10 jobs, got %d", inner.jobs)
	}
	if !p.IsConnected() {
		t.Errorf("expected connected")
	}
}
