package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/omarshaarawi/ffhistory/internal/config"
)

// ErrNotFound is returned when a league file does not exist.
var ErrNotFound = errors.New("static file not found")

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ffhistory_static_fetch_total",
		Help: "Static league file fetches by source and outcome",
	}, []string{"source", "outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ffhistory_static_fetch_duration_seconds",
		Help:    "Duration of static league file fetches that missed the cache",
		Buckets: prometheus.DefBuckets,
	})
)

// Cache stores raw file bodies keyed by path.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// Client reads league JSON files from a web server or a local directory.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dir        string
	cache      Cache
	logger     *zap.SugaredLogger
}

// NewClient serves files over HTTP when cfg.BaseURL has an http(s) scheme and
// from the filesystem otherwise. cache may be nil.
func NewClient(cfg config.Data, cache Cache, logger *zap.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		logger:     logger.Sugar(),
	}
	if strings.HasPrefix(cfg.BaseURL, "http://") || strings.HasPrefix(cfg.BaseURL, "https://") {
		c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	} else {
		c.dir = cfg.BaseURL
	}
	return c
}

// Get decodes the file at path into result. The body is cached only once it
// has decoded.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	data, cached, err := c.read(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("error decoding %s: %w", path, err)
	}
	if !cached {
		c.store(ctx, path, data)
	}
	return nil
}

// Raw returns the file body at path, consulting the cache first. Bodies that
// are not valid JSON are returned but never cached.
func (c *Client) Raw(ctx context.Context, path string) ([]byte, error) {
	data, cached, err := c.read(ctx, path)
	if err != nil {
		return nil, err
	}
	if !cached && json.Valid(data) {
		c.store(ctx, path, data)
	}
	return data, nil
}

// read returns the body at path and whether it came from the cache.
func (c *Client) read(ctx context.Context, path string) ([]byte, bool, error) {
	if c.cache != nil {
		data, ok, err := c.cache.Get(ctx, path)
		if err != nil {
			c.logger.Warnw("Cache read failed", "path", path, "error", err)
		} else if ok {
			fetchTotal.WithLabelValues("cache", "hit").Inc()
			return data, true, nil
		}
	}

	source := "http"
	if c.dir != "" {
		source = "file"
	}

	start := time.Now()
	data, err := c.fetch(ctx, path)
	fetchDuration.Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, ErrNotFound):
		fetchTotal.WithLabelValues(source, "not_found").Inc()
		return nil, false, err
	case err != nil:
		fetchTotal.WithLabelValues(source, "error").Inc()
		return nil, false, err
	}
	fetchTotal.WithLabelValues(source, "ok").Inc()
	return data, false, nil
}

func (c *Client) store(ctx context.Context, path string, data []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, path, data); err != nil {
		c.logger.Warnw("Cache write failed", "path", path, "error", err)
	}
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	if c.dir != "" {
		return c.readFile(path)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code for %s: %d", path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, nil
}

func (c *Client) readFile(path string) ([]byte, error) {
	full := filepath.Join(c.dir, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, nil
}
