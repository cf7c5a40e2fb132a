package cli

import (
	"fmt"
	"io"
	"log/slog"

	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar renders batch progress of a report or seeding run on a terminal.
// The bar is created on the first update, once the total is known.
type ProgressBar struct {
	writer      io.Writer
	description string
	bar         *progressbar.ProgressBar
}

var _ portssvc.ProgressObserver = (*ProgressBar)(nil)

// NewProgressBar creates a bar writing to w.
func NewProgressBar(w io.Writer, description string) *ProgressBar {
	return &ProgressBar{writer: w, description: description}
}

func (p *ProgressBar) init(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]%s[reset]", p.description)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// BatchCompleted moves the bar to processed out of total.
func (p *ProgressBar) BatchCompleted(processed, total int) {
	if total <= 0 {
		return
	}
	if p.bar == nil {
		p.init(total)
	} else if p.bar.GetMax() != total {
		p.bar.ChangeMax(total)
	}
	if err := p.bar.Set(processed); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish completes the bar if the run ended early.
func (p *ProgressBar) Finish() {
	if p.bar == nil || p.bar.IsFinished() {
		return
	}
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}

// State reports the bar's current value and its total; both are zero before the first update.
func (p *ProgressBar) State() (current, total int64) {
	if p.bar == nil {
		return 0, 0
	}
	s := p.bar.State()
	return s.CurrentNum, s.Max
}
