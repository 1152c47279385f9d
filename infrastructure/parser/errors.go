package parser

import (
	"errors"
	"fmt"
)

var (
	// URL / dispatch errors
	ErrInvalidURL          = errors.New("url matches no supported platform")
	ErrUnparseableID       = errors.New("could not extract post id from url")
	ErrUnsupportedPlatform = errors.New("no extractor registered for platform")

	// Upstream errors
	ErrNotFound      = errors.New("content not found or private")
	ErrQuotaExceeded = errors.New("provider quota exceeded")
	ErrInvalidAPIKey = errors.New("provider rejected the configured api key")
	ErrScrapeTimeout = errors.New("scrape job did not finish in time")
	ErrScrapeFailed  = errors.New("scrape job failed")
	ErrExtraction    = errors.New("extraction failed")
)

// wrapExtraction folds an arbitrary provider error into the uniform
// extraction error, preserving typed kinds that are already ours.
func wrapExtraction(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidURL),
		errors.Is(err, ErrUnparseableID),
		errors.Is(err, ErrUnsupportedPlatform),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrQuotaExceeded),
		errors.Is(err, ErrInvalidAPIKey),
		errors.Is(err, ErrScrapeTimeout),
		errors.Is(err, ErrScrapeFailed),
		errors.Is(err, ErrExtraction):
		return err
	}
	return fmt.Errorf("%w: %v", ErrExtraction, err)
}

// Retryable reports whether the caller may reasonably retry later.
func Retryable(err error) bool {
	return errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrScrapeTimeout) ||
		errors.Is(err, ErrScrapeFailed)
}
