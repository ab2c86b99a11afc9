package pdf2md

import (
	"context"
	"strings"
	"testing"

	"github.com/tsawler/pdf2md/markdown"
	"github.com/tsawler/pdf2md/model"
)

// run builds a text run at the given position with an estimated width.
func run(text string, size, x, y float64, page int) model.TextRun {
	return model.TextRun{
		Text:     text,
		FontSize: size,
		BBox:     model.NewBBox(x, y, 0.5*size*float64(len(text)), size),
		Page:     page,
	}
}

// twoPageDoc is a small document exercising every block kind: a title,
// body text, a ruled table, a second-level heading on the next page.
func twoPageDoc() *model.Document {
	p1 := model.NewPage(1, 612, 792)
	p1.AddElement(run("Title", 24, 72, 50, 1))
	p1.AddElement(run("Body text before the table.", 12, 72, 100, 1))
	p1.AddElement(model.TableRegion{
		Rows: [][]string{{"A", "B"}, {"1", "2"}},
		BBox: model.NewBBox(72, 150, 200, 60),
		Page: 1,
	})
	p1.AddElement(run("Body text after the table.", 12, 72, 230, 1))

	p2 := model.NewPage(2, 612, 792)
	p2.AddElement(run("Section", 18, 72, 50, 2))
	p2.AddElement(run("More body text.", 12, 72, 90, 2))

	doc := model.NewDocument()
	doc.AddPage(p1)
	doc.AddPage(p2)
	return doc
}

func TestConverterEndToEnd(t *testing.T) {
	md, warnings, err := FromDocument(twoPageDoc(), nil).Markdown(context.Background())
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	want := "\n# Title\n\n" +
		"Body text before the table.\n" +
		"###\n\n" +
		"| A | B |\n" +
		"|:---:|:---:|\n" +
		"| 1 | 2 |\n\n" +
		"Body text after the table.\n" +
		"\n## Section\n\n" +
		"More body text.\n"
	if md != want {
		t.Errorf("Markdown() =\n%q\nwant\n%q", md, want)
	}
}

func TestConverterHeadingLevelsFollowSizeOrder(t *testing.T) {
	md, _, err := FromDocument(twoPageDoc(), nil).Markdown(context.Background())
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}

	title := strings.Index(md, "# Title")
	section := strings.Index(md, "## Section")
	if title < 0 || section < 0 {
		t.Fatalf("missing headings in output:\n%s", md)
	}
	if title > section {
		t.Error("24pt title should precede 18pt section")
	}
}

func TestConverterMarkdownPages(t *testing.T) {
	pages, _, err := FromDocument(twoPageDoc(), nil).
		PageDemarcation(markdown.DemarcationSplit).
		MarkdownPages(context.Background())
	if err != nil {
		t.Fatalf("MarkdownPages() error: %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Page != 1 || pages[1].Page != 2 {
		t.Errorf("page numbers = %d, %d; want 1, 2", pages[0].Page, pages[1].Page)
	}
	if !strings.Contains(pages[0].Markdown, "# Title") {
		t.Errorf("page 1 missing title:\n%s", pages[0].Markdown)
	}
	if strings.Contains(pages[0].Markdown, "Section") {
		t.Errorf("page 2 content leaked into page 1:\n%s", pages[0].Markdown)
	}
	if !strings.Contains(pages[1].Markdown, "## Section") {
		t.Errorf("page 2 missing section heading:\n%s", pages[1].Markdown)
	}
}

func TestConverterRuleDemarcation(t *testing.T) {
	md, _, err := FromDocument(twoPageDoc(), nil).
		PageDemarcation(markdown.DemarcationRule).
		Markdown(context.Background())
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if !strings.Contains(md, "\n---\n\n*Page 2*\n\n") {
		t.Errorf("missing page rule marker:\n%s", md)
	}
}

func TestConverterNoImages(t *testing.T) {
	doc := model.NewDocument()
	page := model.NewPage(1, 612, 792)
	page.AddElement(run("Some text.", 12, 72, 50, 1))
	page.AddElement(model.ImageRegion{
		ID:   "p1_Im1",
		BBox: model.NewBBox(72, 100, 200, 150),
		Page: 1,
	})
	doc.AddPage(page)
	payloads := []model.ImagePayload{{ID: "p1_Im1", Page: 1, FileType: "png", Data: []byte{1}}}

	md, _, err := FromDocument(doc, payloads).NoImages().Markdown(context.Background())
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if strings.Contains(md, "![") {
		t.Errorf("image link present despite NoImages():\n%s", md)
	}

	md, _, err = FromDocument(doc, payloads).Markdown(context.Background())
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if !strings.Contains(md, "![Page 1 image](p1_Im1.png)") {
		t.Errorf("image link missing with images enabled:\n%s", md)
	}
}

func TestConverterWarnsWithoutHeadingSignal(t *testing.T) {
	doc := model.NewDocument()
	page := model.NewPage(1, 612, 792)
	page.AddElement(run("All one size.", 12, 72, 50, 1))
	page.AddElement(run("Still one size.", 12, 72, 70, 1))
	doc.AddPage(page)

	md, warnings, err := FromDocument(doc, nil).Markdown(context.Background())
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if strings.Contains(md, "#") {
		t.Errorf("headings produced from a single font size:\n%s", md)
	}

	found := false
	for _, w := range warnings {
		if w.Code == WarnFontClassification {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s warning, got %v", WarnFontClassification, warnings)
	}
}

func TestConverterWarnsOnEmptyDocument(t *testing.T) {
	doc := model.NewDocument()
	doc.AddPage(model.NewPage(1, 612, 792))

	md, warnings, err := FromDocument(doc, nil).Markdown(context.Background())
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if md != "" {
		t.Errorf("Markdown() = %q, want empty", md)
	}

	found := false
	for _, w := range warnings {
		if w.Code == WarnNoText {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s warning, got %v", WarnNoText, warnings)
	}
}

func TestConverterMalformedTableFails(t *testing.T) {
	doc := model.NewDocument()
	page := model.NewPage(1, 612, 792)
	page.AddElement(model.TableRegion{
		Rows: [][]string{},
		BBox: model.NewBBox(72, 150, 200, 60),
		Page: 1,
	})
	doc.AddPage(page)

	_, _, err := FromDocument(doc, nil).Markdown(context.Background())
	if err == nil {
		t.Fatal("expected error for table with no rows")
	}
	if !strings.Contains(err.Error(), "page 1") {
		t.Errorf("error %q should name the page", err)
	}
}

func TestConverterImmutability(t *testing.T) {
	base := FromDocument(twoPageDoc(), nil)
	derived := base.RemoveHeaders().SkipEmptyTables().TableHeader("x")

	if base.options.removeHeaders || base.options.skipEmptyTables {
		t.Error("configuration leaked into the base converter")
	}
	if base.options.tableHeaderLabel != "###" {
		t.Errorf("base label = %q, want ###", base.options.tableHeaderLabel)
	}
	if !derived.options.removeHeaders || derived.options.tableHeaderLabel != "x" {
		t.Error("derived converter missing its configuration")
	}
}

func TestConverterProgressEvents(t *testing.T) {
	var events []ProgressEvent
	_, _, err := FromDocument(twoPageDoc(), nil).
		OnProgress(func(ev ProgressEvent) { events = append(events, ev) }).
		Markdown(context.Background())
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}

	if len(events) == 0 {
		t.Fatal("no progress events emitted")
	}

	last := 0.0
	for _, ev := range events {
		if ev.Percentage < last {
			t.Errorf("percentage went backwards: %v after %v", ev.Percentage, last)
		}
		last = ev.Percentage
	}
	if events[len(events)-1].Phase != PhaseDone {
		t.Errorf("last phase = %v, want %v", events[len(events)-1].Phase, PhaseDone)
	}
	if last != 100 {
		t.Errorf("final percentage = %v, want 100", last)
	}

	// Font classification reports within the first half, merging within
	// the second.
	for _, ev := range events {
		switch ev.Phase {
		case PhaseClassifyingFonts:
			if ev.Percentage > 50 {
				t.Errorf("font pass at %v%%, want <= 50", ev.Percentage)
			}
		case PhaseMergingContent:
			if ev.Percentage < 50 {
				t.Errorf("merge pass at %v%%, want >= 50", ev.Percentage)
			}
		}
	}
}

func TestConverterContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := FromDocument(twoPageDoc(), nil).Markdown(ctx)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must(42, nil) = %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(0, context.Canceled)
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}

	warnings := []Warning{
		{Code: WarnNoText, Message: "document contains no text"},
		{Code: WarnImageWrite, Page: 3, Message: "disk full"},
	}
	got := FormatWarnings(warnings)
	if !strings.Contains(got, "[no_text] document contains no text") {
		t.Errorf("missing first warning: %q", got)
	}
	if !strings.Contains(got, "page 3") {
		t.Errorf("missing page number: %q", got)
	}
}
