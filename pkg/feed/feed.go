// Package feed fetches headline titles from RSS feeds, either through an
// RSS-to-JSON proxy or as raw RSS XML.
package feed

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrBadStatus is returned when a JSON proxy reports a status other than "ok".
	ErrBadStatus = errors.New("feed: proxy reported failure")
	// ErrUnexpectedStatus is returned for non-200 HTTP responses.
	ErrUnexpectedStatus = errors.New("feed: unexpected http status")
)

// DefaultProxy is the rss2json endpoint; the feed URL is appended escaped.
const DefaultProxy = "https://api.rss2json.com/v1/api.json?rss_url="

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// Format is the wire format of a feed response.
type Format int

const (
	// JSON is the rss2json shape: {"status":"ok","items":[{"title":...}]}.
	JSON Format = iota
	// XML is a plain RSS or RDF document.
	XML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case XML:
		return "xml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses "json" or "xml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return JSON, nil
	case "xml", "rss":
		return XML, nil
	}
	return 0, fmt.Errorf("unknown feed format %q", s)
}

// Source is one feed to read.
type Source struct {
	URL    string
	Format Format
}

// Proxied returns the source that reads rssURL through proxy. The feed URL is
// query-escaped and appended to proxy. An empty proxy reads rssURL directly.
func Proxied(proxy, rssURL string, format Format) Source {
	if proxy == "" {
		return Source{URL: rssURL, Format: format}
	}
	return Source{URL: proxy + url.QueryEscape(rssURL), Format: format}
}

// NewClient returns an HTTP client with the given overall request timeout.
// A zero timeout leaves requests unbounded apart from ctx.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Fetch performs one GET of src and returns its titles in feed order.
func Fetch(ctx context.Context, client *http.Client, src Source) ([]string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	switch src.Format {
	case XML:
		req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")
	default:
		req.Header.Set("Accept", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body := io.LimitReader(resp.Body, maxBody)
	var titles []string
	switch src.Format {
	case XML:
		titles, err = parseXML(body)
	default:
		var data []byte
		data, err = io.ReadAll(body)
		if err == nil {
			titles, err = parseJSON(data)
		}
	}
	if err != nil {
		return nil, err
	}
	return normalizeAll(titles), nil
}

// FetchAll reads every source concurrently and concatenates their titles in
// source order. A failing source is logged and contributes nothing.
func FetchAll(ctx context.Context, client *http.Client, srcs []Source) []string {
	results := make([][]string, len(srcs))

	var g errgroup.Group
	g.SetLimit(4)
	for i, src := range srcs {
		g.Go(func() error {
			titles, err := Fetch(ctx, client, src)
			if err != nil {
				log.Warn().Err(err).Str("url", src.URL).Msg("feed fetch failed")
				return nil
			}
			log.Info().Str("url", src.URL).Int("headlines", len(titles)).Msg("feed loaded")
			results[i] = titles
			return nil
		})
	}
	_ = g.Wait()

	var all []string
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// Normalize unescapes HTML entities, collapses whitespace and converts the
// title to NFC.
func Normalize(title string) string {
	title = html.UnescapeString(title)
	title = strings.Join(strings.Fields(title), " ")
	return norm.NFC.String(title)
}

func normalizeAll(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = Normalize(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
