package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/utils/i18n"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ReportRows lists the report lines in display order.
func ReportRows(r *domain.AggregationResult, labels domain.Labeler) [][]string {
	return [][]string{
		{"Total Cost", r.TotalCost.Format(labels)},
		{"Total Price × Quantity", r.TotalPriceTimesQuantity.Format(labels)},
		{"Difference", r.Difference.Format(labels)},
		{"Total Transactions", i18n.FormatCount(r.Stats.TotalCount)},
		{"Chunk Size", i18n.FormatCount(int64(r.Stats.ChunkSize))},
		{"Total Chunks", i18n.FormatCount(int64(r.Stats.TotalChunks))},
		{"Processed Chunks", i18n.FormatCount(int64(r.Stats.ProcessedChunks))},
		{"Max Concurrent Processes", i18n.FormatCount(int64(r.Stats.MaxWorkers))},
		{"Processing Time", r.Stats.Duration.Round(time.Millisecond).String()},
	}
}

// RenderReport renders the report as a two column table.
func RenderReport(r *domain.AggregationResult, labels domain.Labeler) string {
	negative := r.Difference.IsNegative()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("Metric", "Value").
		Rows(ReportRows(r, labels)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case row == 2 && col == 1 && negative:
				return TableCellStyle.Inherit(NegativeStyle)
			default:
				return TableCellStyle
			}
		})
	return t.String()
}

// RenderSeedSummary renders the outcome of a seeding run.
func RenderSeedSummary(res *portssvc.SeedResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Inserted: %s records\n", SuccessIcon, i18n.FormatCount(res.Inserted))
	fmt.Fprintf(&b, "  Time taken: %s\n", res.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "  Throughput: %s records/s", i18n.FormatCount(int64(res.RecordsPerSecond())))
	return RenderBox(SeedIcon+" Seeding Complete", b.String())
}
