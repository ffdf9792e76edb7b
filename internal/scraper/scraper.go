package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pfrederiksen/camara-gastos/internal/expense"
	"golang.org/x/net/html/charset"
)

const (
	BaseURL   = "https://sisgvarmazenamento.blob.core.windows.net/prd/PublicacaoPortal/Arquivos"
	UserAgent = "camara-gastos/1.0 (github.com/pfrederiksen/camara-gastos)"
	Timeout   = 30 * time.Second
)

// ErrUnavailable is returned when a period's page cannot be retrieved
var ErrUnavailable = errors.New("period unavailable")

// Page is one fetched disclosure page, decoded to UTF-8
type Page struct {
	Period expense.Period
	URL    string
	Body   []byte
}

// Scraper handles fetching disclosure pages
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithBaseURL overrides the portal base URL
func WithBaseURL(u string) Option {
	return func(s *Scraper) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		s.userAgent = ua
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:   BaseURL,
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the page address for a period
func (s *Scraper) URL(p expense.Period) string {
	return fmt.Sprintf("%s/%s.htm", s.baseURL, p.Code())
}

// Fetch retrieves the disclosure page of one period. Transport errors, timeouts and
// non-200 responses are wrapped in ErrUnavailable.
func (s *Scraper) Fetch(ctx context.Context, p expense.Period) (*Page, error) {
	url := s.URL(p)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching page: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := decode(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading page: %v", ErrUnavailable, err)
	}

	return &Page{Period: p, URL: url, Body: body}, nil
}

// decode converts the body to UTF-8 based on the Content-Type header or the
// document's meta charset, falling back to sniffing.
func decode(r io.Reader, contentType string) ([]byte, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	return io.ReadAll(utf8Reader)
}
