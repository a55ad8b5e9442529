package renderer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nogvini/btcfolio"
	"github.com/nogvini/btcfolio/date"
	"github.com/nogvini/btcfolio/oracle"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// tables parses markdown and returns every table as rows of cell texts,
// header included.
func tables(t *testing.T, md string) [][][]string {
	t.Helper()
	src := []byte(md)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var res [][][]string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *east.Table:
			res = append(res, nil)
		case *east.TableHeader, *east.TableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, cellText(c, src))
			}
			res[len(res)-1] = append(res[len(res)-1], row)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("cannot walk markdown: %v", err)
	}
	return res
}

func cellText(n ast.Node, src []byte) string {
	var b bytes.Buffer
	ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(src))
		case *ast.String:
			b.Write(n.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func points(currency string, prices map[string]float64) []btcfolio.PricePoint {
	var res []btcfolio.PricePoint
	for on, p := range prices {
		res = append(res, btcfolio.PricePoint{Date: date.MustParse(on), Price: p, Currency: currency})
	}
	return res
}

func testCalculator(t *testing.T) *btcfolio.Calculator {
	t.Helper()
	m := oracle.NewMemory(points("BRL", map[string]float64{
		"2023-12-10": 200_000,
		"2023-12-31": 210_000,
		"2024-01-20": 230_000,
		"2024-01-31": 240_000,
		"2024-02-05": 250_000,
		"2024-02-29": 260_000,
	})...)
	m.Add(points("USD", map[string]float64{"2023-12-10": 40_000, "2024-01-20": 46_000, "2024-02-05": 50_000})...)
	c, err := btcfolio.NewCalculator(m, "BRL")
	if err != nil {
		t.Fatalf("NewCalculator() unexpected error: %v", err)
	}
	c.Log = nil
	return c
}

func testReport() *btcfolio.Report {
	return &btcfolio.Report{
		ID:   "main",
		Name: "Main stack",
		Investments: []btcfolio.Investment{
			{ID: "i1", Date: "2023-12-10", Amount: "0.1", Unit: "BTC"},
			{ID: "i2", Date: "2024-01-20", Amount: "5000000", Unit: "SATS"},
		},
		Profits: []btcfolio.ProfitRecord{{ID: "p1", Date: "2024-02-05", Amount: "0.01", IsProfit: true}},
	}
}

func TestRenderReport(t *testing.T) {
	d, err := testCalculator(t).Calculate(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	md := RenderReport(d, ReportRenderOptions{})
	if !strings.HasPrefix(md, "# Main stack") {
		t.Errorf("RenderReport() should start with the report title, got:\n%s", md)
	}

	got := tables(t, md)
	if len(got) != 3 {
		t.Fatalf("RenderReport() has %d tables, want 3:\n%s", len(got), md)
	}
	summary, perf, monthly := got[0], got[1], got[2]
	if len(summary) != 11 {
		t.Errorf("summary has %d rows, want 11 (header included)", len(summary))
	}
	if len(perf) != 9 {
		t.Errorf("performance has %d rows, want 9 (header included)", len(perf))
	}
	if got, want := perf[6][1], "1 month 27 days"; got != want {
		t.Errorf("invested for = %q, want %q", got, want)
	}

	var labels []string
	for _, row := range monthly[1:] {
		labels = append(labels, row[0])
		if len(row) != 9 {
			t.Errorf("monthly row %v has %d cells, want 9", row, len(row))
		}
	}
	want := []string{"2023-12", "2023", "2024-01", "2024-02", "2024"}
	if strings.Join(labels, ",") != strings.Join(want, ",") {
		t.Errorf("monthly labels = %v, want %v", labels, want)
	}
	if got, want := monthly[5][6], "0.14000000"; got != want {
		t.Errorf("2024 BTC balance = %q, want %q", got, want)
	}
}

func TestRenderReport_Options(t *testing.T) {
	d, err := testCalculator(t).Calculate(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	if got := tables(t, RenderReport(d, ReportRenderOptions{SkipMonthly: true})); len(got) != 2 {
		t.Errorf("RenderReport(SkipMonthly) has %d tables, want 2", len(got))
	}
	got := tables(t, RenderMonthly(d, false))
	if len(got) != 1 || len(got[0]) != 4 {
		t.Errorf("RenderMonthly(no subtotals) = %v, want 1 table of 3 months", got)
	}
}

func TestRenderReport_Warnings(t *testing.T) {
	r := testReport()
	r.Withdrawals = []btcfolio.WithdrawalRecord{{ID: "w", Date: "someday", Amount: "1"}}
	r.Investments = append(r.Investments, btcfolio.Investment{ID: "i3", Date: "2024-02-10", Amount: "0.01"})
	d, err := testCalculator(t).Calculate(context.Background(), r)
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	md := RenderReport(d, ReportRenderOptions{})
	for _, want := range []string{"1 invalid record(s) were ignored.", "price(s) were missing"} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderReport() should contain %q:\n%s", want, md)
		}
	}
}

func TestRenderReport_Empty(t *testing.T) {
	d, err := testCalculator(t).Calculate(context.Background(), &btcfolio.Report{ID: "empty"})
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	md := RenderReport(d, ReportRenderOptions{})
	if !strings.Contains(md, "No operations.") {
		t.Errorf("RenderReport(empty) should say there is nothing to show:\n%s", md)
	}
	if strings.Contains(md, "error") {
		t.Errorf("RenderReport(empty) failed:\n%s", md)
	}
}

func TestRenderComparison(t *testing.T) {
	other := &btcfolio.Report{
		ID:          "side",
		Investments: []btcfolio.Investment{{ID: "s1", Date: "2024-01-05", Amount: "0.2"}},
	}
	c := btcfolio.Compare([]*btcfolio.Report{testReport(), other}, btcfolio.Accumulated, nil)
	md := RenderComparison(c)
	if !strings.HasPrefix(md, "# Comparison (accumulated)") {
		t.Errorf("RenderComparison() title, got:\n%s", md)
	}
	if !strings.Contains(md, "2023-12-10 to 2024-02-05") {
		t.Errorf("RenderComparison() should show the period:\n%s", md)
	}

	got := tables(t, md)
	if len(got) != 2 {
		t.Fatalf("RenderComparison() has %d tables, want 2:\n%s", len(got), md)
	}
	stats, series := got[0], got[1]
	if len(stats) != 4 {
		t.Errorf("stats has %d rows, want 4 (header, 2 reports, total)", len(stats))
	}
	if got, want := stats[3][0], "Total"; got != want {
		t.Errorf("last stats row = %q, want %q", got, want)
	}
	if got, want := stats[3][3], "0.36000000"; got != want {
		t.Errorf("total balance = %q, want %q", got, want)
	}
	if len(series[0]) != 7 {
		t.Errorf("series header = %v, want 7 columns", series[0])
	}
	if len(series) != 4 {
		t.Errorf("series has %d rows, want 4 (header and 3 months)", len(series))
	}
}

func TestRenderComparison_Nil(t *testing.T) {
	md := RenderComparison(nil)
	if !strings.Contains(md, "no report selected") {
		t.Errorf("RenderComparison(nil) = %q", md)
	}
	if len(tables(t, md)) != 0 {
		t.Errorf("RenderComparison(nil) should not have tables")
	}
}
