package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

func getProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("chunks"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// progress shows a spinner while a page is scraped and a bar while its
// chunks are stored. At most one of the two is open at a time.
type progress struct {
	out     io.Writer
	spinner *progressbar.ProgressBar
	bar     *progressbar.ProgressBar
}

func (p *progress) pageStart(url string) {
	p.finish()
	p.spinner = getSpinner(p.out, fmt.Sprintf("🌐 Scraping %s...", url))
}

func (p *progress) pageScraped(url string, chunks int) {
	p.finish()
	color.New(color.FgGreen).Fprintf(p.out, "\n✓ Scraped %s into %d chunks\n", url, chunks)
	if chunks > 0 {
		p.bar = getProgressBar(p.out, chunks, "💾 Embedding and storing...")
	}
}

func (p *progress) chunkStored(url string, index int, id string) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(color.BlueString("💾 Stored %s", id))
	p.bar.Add(1)
}

// finish closes whatever is still rendering, so later lines start clean.
func (p *progress) finish() {
	if p.spinner != nil {
		p.spinner.Finish()
		p.spinner = nil
	}
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
