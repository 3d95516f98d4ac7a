// Package scraper fetches conference paper listings over HTTP.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/hyperjump/kasane/internal/models"
)

// Scraper fetches a paper listing page and parses it into paper records.
// The expected page structure is a list of <li> entries, each with an <a>
// holding the title and link and an <i> holding the comma-separated authors
// (the NeurIPS proceedings layout).
type Scraper struct {
	listingURL string
	baseURL    string
	year       int
	client     *http.Client
	logger     *zap.Logger
}

// New creates a scraper for the given listing URL. baseURL is prepended to
// relative paper links.
func New(listingURL, baseURL string, year int, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{
		listingURL: listingURL,
		baseURL:    baseURL,
		year:       year,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Scrape fetches and parses the listing page. A malformed entry is skipped
// with a debug log, not fatal to the whole scrape.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.Paper, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch listing: unexpected status %d", resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	var papers []*models.Paper
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			if paper := s.parseItem(n); paper != nil {
				papers = append(papers, paper)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	s.logger.Info("scrape complete", zap.String("url", s.listingURL), zap.Int("papers", len(papers)))
	return papers, nil
}

// ScrapeWithRetry retries a failed or empty scrape up to maxRetries times with
// a fixed delay. Retry lives here at the network boundary; the retrieval core
// never retries.
func (s *Scraper) ScrapeWithRetry(ctx context.Context, maxRetries int, delay time.Duration) ([]*models.Paper, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		papers, err := s.Scrape(ctx)
		if err == nil && len(papers) > 0 {
			return papers, nil
		}
		if err != nil {
			lastErr = err
			s.logger.Warn("scrape attempt failed",
				zap.Int("attempt", attempt), zap.Int("max", maxRetries), zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("scrape failed after %d attempts: %w", maxRetries, lastErr)
	}
	return nil, fmt.Errorf("scrape returned no papers after %d attempts", maxRetries)
}

// parseItem extracts one paper from an <li> node; returns nil when the entry
// has no title link.
func (s *Scraper) parseItem(li *html.Node) *models.Paper {
	var title, link, authorText string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if title == "" {
					title = strings.TrimSpace(textContent(n))
					for _, attr := range n.Attr {
						if attr.Key == "href" {
							link = attr.Val
						}
					}
				}
			case "i":
				if authorText == "" {
					authorText = strings.TrimSpace(textContent(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(li)

	if title == "" || link == "" {
		return nil
	}
	if !strings.HasPrefix(link, "http") {
		link = s.baseURL + link
	}
	var authors []string
	for _, a := range strings.Split(authorText, ",") {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return &models.Paper{
		ID:      uuid.NewString(),
		Title:   title,
		Authors: authors,
		Link:    link,
		Year:    s.year,
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
