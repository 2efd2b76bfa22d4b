// Package jdextract pulls the visible text of a job posting with headless
// Chrome. The text seeds the editing context when the editor opens.
package jdextract

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// ExtractText navigates to pageURL and returns the page body's rendered
// text.
func (e *Extractor) ExtractText(ctx context.Context, pageURL string) (string, error) {
	// prepare exec allocator with optional CHROME_PATH
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, 60*time.Second)
	defer cancel2()

	var text string
	err := chromedp.Run(ctx2,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text("body", &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
