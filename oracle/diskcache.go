package oracle

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/nogvini/btcfolio/date"
	"github.com/sirupsen/logrus"
)

// diskCache is an http.RoundTripper caching successful responses on disk.
// Entries are keyed by day, so they expire at midnight.
type diskCache struct {
	base  http.RoundTripper
	dir   string
	log   logrus.FieldLogger
	today func() date.Date
}

// RoundTrip checks for a cached response on disk first. Otherwise it
// proceeds with the actual request and caches the response if successful.
func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", c.today(), req.Method, req.URL.String())
	key = fmt.Sprintf("btcfolio-%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"method": req.Method,
		"host":   req.URL.Host,
		"path":   req.URL.Path,
		"status": resp.Status,
	}).Debug("http request")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.log.WithError(err).Warn("cache write failed (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response on disk. DumpResponse leaves resp.Body readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// NewDailyCachingClient returns an http.Client caching responses in dir for
// the day. An empty dir is the system temporary directory.
func NewDailyCachingClient(dir string, log logrus.FieldLogger) *http.Client {
	if dir == "" {
		dir = os.TempDir()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: dir, log: log, today: date.Today}}
}
