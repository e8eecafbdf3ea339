// Package fetch retrieves documents over HTTP for the parser.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultMaxRedirects is used when Fetcher.MaxRedirects is zero.
const DefaultMaxRedirects = 10

var (
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrMissingLocation  = errors.New("redirect without location")
)

// Fetcher downloads documents. Only 301 responses are followed; every other
// response is returned as is, whatever its status.
type Fetcher struct {
	Client       *http.Client
	MaxRedirects int
	Log          *logrus.Entry
}

// New returns a Fetcher using the default client.
func New(log *logrus.Entry) *Fetcher {
	return &Fetcher{
		MaxRedirects: DefaultMaxRedirects,
		Log:          log,
	}
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// client returns a copy of the configured client that hands every redirect
// response back instead of following it.
func (f *Fetcher) client() *http.Client {
	c := http.Client{}
	if f.Client != nil {
		c = *f.Client
	}
	c.CheckRedirect = noRedirect
	return &c
}

func (f *Fetcher) log() *logrus.Entry {
	if f.Log != nil {
		return f.Log
	}
	return logrus.NewEntry(logrus.StandardLogger()).WithField("component", "fetch")
}

// Get returns the body of the document at uri.
func (f *Fetcher) Get(ctx context.Context, uri string) (string, error) {
	b, err := f.GetBytes(ctx, uri)
	return string(b), err
}

// GetBytes is Get without the conversion to string, so the caller can decode
// the body from whatever charset it is in.
func (f *Fetcher) GetBytes(ctx context.Context, uri string) ([]byte, error) {
	limit := f.MaxRedirects
	if limit <= 0 {
		limit = DefaultMaxRedirects
	}

	cur, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %q", uri)
	}
	client := f.client()
	for redirects := 0; ; redirects++ {
		resp, err := do(ctx, client, cur)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusMovedPermanently {
			defer resp.Body.Close()
			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, errors.Wrapf(err, "reading %s", cur)
			}
			f.log().WithFields(logrus.Fields{
				"url":    cur.String(),
				"status": resp.StatusCode,
				"bytes":  len(b),
			}).Debug("fetched")
			return b, nil
		}

		location := resp.Header.Get("Location")
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if location == "" {
			return nil, errors.Wrapf(ErrMissingLocation, "%s", cur)
		}
		if redirects == limit {
			return nil, errors.Wrapf(ErrTooManyRedirects, "after %d", limit)
		}

		next, err := cur.Parse(location)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing location %q", location)
		}
		f.log().WithFields(logrus.Fields{
			"from": cur.String(),
			"to":   next.String(),
		}).Debug("moved permanently")
		cur = next
	}
}

func do(ctx context.Context, client *http.Client, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "request for %s", u)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", u)
	}
	return resp, nil
}
