package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/schollz/progressbar/v3"
)

// LoadProgress shows one step per fetched resource while a dashboard load
// runs. It is safe for concurrent use.
type LoadProgress struct {
	bar *progressbar.ProgressBar
	mu  sync.Mutex
}

// NewLoadProgress creates a bar for steps resources written to w.
func NewLoadProgress(w io.Writer, steps int) *LoadProgress {
	bar := progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan][bold]Carregando...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return &LoadProgress{bar: bar}
}

// Settled advances the bar. Its signature matches dashboard.Loader.OnSettled.
func (p *LoadProgress) Settled(resource service.Resource, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		slog.Warn("Fetch failed", "resource", resource, "error", err)
	}
	p.bar.Describe(fmt.Sprintf("[cyan][bold]%s[reset]", resource))
	if addErr := p.bar.Add(1); addErr != nil {
		slog.Warn("Failed to update progress bar", "error", addErr)
	}
}
