/*
Package download fetches WTHOR files from the Fédération Française
d'Othello web site. Each request is made exactly once, there is no retry
and nothing is cached.
*/
package download

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/bodgit/wthor/wthor"
	"go.uber.org/zap"
)

// DefaultBaseURL is where the official files are published
const DefaultBaseURL = "https://www.ffothello.org/wthor/base/"

// StatusError is returned when the server responds with anything other
// than 200 OK
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download: %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// TransportError is returned when the request couldn't be completed
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("download: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Downloader fetches and decodes WTHOR files
type Downloader struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// Option configures a Downloader
type Option func(*Downloader)

// WithBaseURL overrides DefaultBaseURL
func WithBaseURL(url string) Option {
	return func(d *Downloader) {
		d.baseURL = strings.TrimSuffix(url, "/") + "/"
	}
}

// WithHTTPClient overrides the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(d *Downloader) {
		d.client = client
	}
}

// WithLogger sets the logger, the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(d *Downloader) {
		d.logger = logger
	}
}

// New returns a Downloader configured with the passed options
func New(options ...Option) *Downloader {
	d := &Downloader{
		baseURL: DefaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
	}

	for _, option := range options {
		option(d)
	}

	return d
}

// URL returns the full URL of the named file
func (d *Downloader) URL(name string) string {
	return d.baseURL + name
}

// Fetch returns the raw contents of the named file
func (d *Downloader) Fetch(ctx context.Context, name string) ([]byte, error) {
	url := d.URL(name)
	logger := d.logger.With(zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		logger.Warn("request failed", zap.Error(err))
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("unexpected status", zap.Int("status", resp.StatusCode))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("reading body failed", zap.Error(err))
		return nil, &TransportError{URL: url, Err: err}
	}

	logger.Debug("fetched", zap.Int("bytes", len(b)), zap.Duration("elapsed", time.Since(start)))

	return b, nil
}

// Jou fetches and decodes the players file
func (d *Downloader) Jou(ctx context.Context) (*wthor.Jou, error) {
	b, err := d.Fetch(ctx, wthor.JouFileName)
	if err != nil {
		return nil, err
	}

	j := new(wthor.Jou)
	if err := j.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("download: %s: %w", wthor.JouFileName, err)
	}

	return j, nil
}

// Trn fetches and decodes the tournaments file
func (d *Downloader) Trn(ctx context.Context) (*wthor.Trn, error) {
	b, err := d.Fetch(ctx, wthor.TrnFileName)
	if err != nil {
		return nil, err
	}

	t := new(wthor.Trn)
	if err := t.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("download: %s: %w", wthor.TrnFileName, err)
	}

	return t, nil
}

// Wtb fetches and decodes the games played in the passed year
func (d *Downloader) Wtb(ctx context.Context, year int) (*wthor.Wtb, error) {
	name := wthor.WtbFileName(year)

	b, err := d.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	w := new(wthor.Wtb)
	if err := w.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("download: %s: %w", name, err)
	}

	return w, nil
}
