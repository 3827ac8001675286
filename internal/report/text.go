// Package report renders the analytics summary and enrichment outcome for
// humans. The core hands it in-memory structures only; layout choices
// belong to this package.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/saleslens-dev/saleslens/internal/analytics"
	"github.com/saleslens-dev/saleslens/internal/enrich"
	"github.com/saleslens-dev/saleslens/internal/model"
)

const rule = "========================================"

// Render writes the plain-text report.
func Render(w io.Writer, s analytics.Summary, esum enrich.Summary, catalogAvailable bool) error {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("SALES ANALYTICS REPORT\n")
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Total Revenue: %s\n\n", s.TotalRevenue.StringFixed(2))

	b.WriteString("REGION BREAKDOWN\n")
	if len(s.Regions) == 0 {
		b.WriteString("  (no transactions)\n")
	}
	for _, r := range s.Regions {
		fmt.Fprintf(&b, "  %-12s revenue=%s  transactions=%d  share=%s%%\n",
			r.Region, r.Revenue.StringFixed(2), r.Count, r.Share.StringFixed(2))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TOP %d PRODUCTS BY REVENUE\n", len(s.TopProducts))
	for i, p := range s.TopProducts {
		fmt.Fprintf(&b, "  %d. %s (%s)  qty=%d  revenue=%s\n",
			i+1, p.ProductName, p.ProductID, p.Quantity, p.Revenue.StringFixed(2))
	}
	if len(s.TopProducts) == 0 {
		b.WriteString("  (no transactions)\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TOP %d CUSTOMERS BY REVENUE\n", len(s.TopCustomers))
	for i, c := range s.TopCustomers {
		fmt.Fprintf(&b, "  %d. %s  spent=%s  purchases=%d  avg=%s  products=%d\n",
			i+1, c.CustomerID, c.Revenue.StringFixed(2), c.Purchases, c.AvgOrder.StringFixed(2), c.Products)
	}
	if len(s.TopCustomers) == 0 {
		b.WriteString("  (no transactions)\n")
	}
	b.WriteString("\n")

	b.WriteString("DAILY SALES TREND\n")
	for _, d := range s.Daily {
		fmt.Fprintf(&b, "  %s  revenue=%s  transactions=%d  customers=%d\n",
			d.Date.Format(model.DateFormat), d.Revenue.StringFixed(2), d.Count, d.Customers)
	}
	if peak, ok := s.PeakDay(); ok {
		fmt.Fprintf(&b, "  Peak day: %s (%s)\n", peak.Date.Format(model.DateFormat), peak.Revenue.StringFixed(2))
	} else {
		b.WriteString("  (no transactions)\n")
	}
	b.WriteString("\n")

	b.WriteString("LOW-PERFORMING PRODUCTS\n")
	for _, p := range s.LowPerformers {
		fmt.Fprintf(&b, "  %s (%s)  qty=%d  revenue=%s\n",
			p.ProductName, p.ProductID, p.Quantity, p.Revenue.StringFixed(2))
	}
	if len(s.LowPerformers) == 0 {
		b.WriteString("  (none)\n")
	}
	b.WriteString("\n")

	b.WriteString("ENRICHMENT\n")
	if !catalogAvailable {
		b.WriteString("  catalog unavailable; all records unmatched\n")
	}
	fmt.Fprintf(&b, "  matched %d of %d records\n", esum.Matched, esum.Attempted)
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
