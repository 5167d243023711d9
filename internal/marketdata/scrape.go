package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/drip/pkg/config"
	"github.com/wonny/drip/pkg/httputil"
	"github.com/wonny/drip/pkg/logger"
)

// QuoteScraper extracts the latest traded price from an HTML quote page.
// Fallback path when the chart endpoint is unreachable; price only, no
// indicator history.
type QuoteScraper struct {
	http    *httputil.Client
	baseURL string
	logger  *logger.Logger
}

// NewQuoteScraper creates a scraper against the configured quote page
func NewQuoteScraper(cfg *config.Config, log *logger.Logger) *QuoteScraper {
	return &QuoteScraper{
		http:    httputil.NewWithTimeout(cfg, log, 15*time.Second).WithRateLimit(cfg.MarketData.RatePerSec),
		baseURL: cfg.MarketData.QuoteBaseURL,
		logger:  log,
	}
}

// LatestPrice scrapes the current price for a symbol
func (s *QuoteScraper) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/?s=%s", s.baseURL, strings.ToLower(symbol))

	resp, err := s.http.GetWithHeaders(ctx, url, map[string]string{
		"User-Agent": "Mozilla/5.0 (compatible; drip/1.0)",
	})
	if err != nil {
		return 0, fmt.Errorf("quote page fetch for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("quote page fetch for %s: status %d", symbol, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("quote page parse for %s: %w", symbol, err)
	}

	price, err := extractPrice(doc)
	if err != nil {
		return 0, fmt.Errorf("quote page for %s: %w", symbol, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"price":  price,
	}).Debug("Scraped fallback price")

	return price, nil
}

// extractPrice pulls the quote out of the document. The primary selector
// targets the live-quote span; meta tags are the fallback.
func extractPrice(doc *goquery.Document) (float64, error) {
	if text := doc.Find(`span[id^="aq_"][id$="_c2"]`).First().Text(); text != "" {
		if v, err := parsePrice(text); err == nil {
			return v, nil
		}
	}

	if content, ok := doc.Find(`meta[itemprop="price"]`).First().Attr("content"); ok {
		if v, err := parsePrice(content); err == nil {
			return v, nil
		}
	}

	return 0, fmt.Errorf("no price element found")
}

func parsePrice(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable price %q: %w", text, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("non-positive price %q", text)
	}
	return v, nil
}
