package assetcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultManifest mirrors the static assets the studio site ships: its own
// pages plus the cross-origin font and icon stylesheets.
var DefaultManifest = []string{
	"/",
	"/index.html",
	"/styles.css",
	"/script.js",
	"/404.html",
	"https://fonts.googleapis.com/css2?family=Noto+Sans+JP:wght@300;400;500;700&family=Dancing+Script:wght@400;600;700&display=swap",
	"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.0.0/css/all.min.css",
}

// Cache is the offline layer: a generation-named content cache that answers
// cache-first and falls back to the network.
type Cache struct {
	store      Store
	client     *http.Client
	generation string
	origin     *url.URL
	manifest   []string
	logger     *zap.Logger
}

func New(
	store Store,
	client *http.Client,
	generation string,
	origin string,
	manifest []string,
	logger *zap.Logger,
) (*Cache, error) {

	base, err := url.Parse(origin)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid site origin %q", origin)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if len(manifest) == 0 {
		manifest = DefaultManifest
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Cache{
		store:      store,
		client:     client,
		generation: generation,
		origin:     base,
		manifest:   manifest,
		logger:     logger,
	}, nil
}

func (c *Cache) Generation() string { return c.generation }

// --------------------------------------------------
// Install: all-or-nothing precache
// --------------------------------------------------

// Install fetches every manifest entry and stores them under the current
// generation. One failed fetch aborts the whole step with nothing stored:
// entries are collected in memory first and written only when complete.
func (c *Cache) Install(ctx context.Context) error {
	fetched := make(map[string]*Entry, len(c.manifest))

	for _, raw := range c.manifest {
		target, err := c.resolve(raw)
		if err != nil {
			return fmt.Errorf("precache %s: %w", raw, err)
		}

		entry, err := c.fetch(ctx, target)
		if err != nil {
			return fmt.Errorf("precache %s: %w", raw, err)
		}
		if entry.Status < 200 || entry.Status >= 300 {
			return fmt.Errorf("precache %s: status %d", raw, entry.Status)
		}
		fetched[target] = entry
	}

	for target, entry := range fetched {
		if err := c.store.Put(ctx, c.generation, target, entry); err != nil {
			return fmt.Errorf("precache store: %w", err)
		}
	}

	c.logger.Info("cache installed",
		zap.String("generation", c.generation),
		zap.Int("entries", len(fetched)),
	)
	return nil
}

// --------------------------------------------------
// Fetch: cache-first
// --------------------------------------------------

// Fetch answers from the cache when possible. On a miss it goes to the
// network; successful same-origin responses are copied into the cache on
// the way back, everything else passes through uncached.
func (c *Cache) Fetch(ctx context.Context, rawURL string) (*Entry, error) {
	target, err := c.resolve(rawURL)
	if err != nil {
		return nil, err
	}

	if cached, ok, err := c.store.Get(ctx, c.generation, target); err == nil && ok {
		return cached, nil
	} else if err != nil {
		c.logger.Warn("cache read failed, using network", zap.Error(err))
	}

	entry, err := c.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	if entry.Status >= 200 && entry.Status < 300 && c.sameOrigin(target) {
		if err := c.store.Put(ctx, c.generation, target, entry); err != nil {
			c.logger.Warn("cache write failed", zap.Error(err))
		}
	}

	return entry, nil
}

// --------------------------------------------------
// Activate: generation eviction
// --------------------------------------------------

// Activate deletes every cache generation except the current one.
func (c *Cache) Activate(ctx context.Context) error {
	gens, err := c.store.Generations(ctx)
	if err != nil {
		return err
	}

	for _, g := range gens {
		if g == c.generation {
			continue
		}
		if err := c.store.DeleteGeneration(ctx, g); err != nil {
			return err
		}
		c.logger.Info("deleted old cache generation", zap.String("generation", g))
	}
	return nil
}

// --------------------------------------------------
// Forward-looking hooks
// --------------------------------------------------

// Sync is the background-sync hook. Acknowledge and resolve; offline
// booking replay would live here.
func (c *Cache) Sync(ctx context.Context) error {
	c.logger.Info("background sync completed")
	return nil
}

type Notification struct {
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Icon    string   `json:"icon"`
	Badge   string   `json:"badge"`
	Tag     string   `json:"tag"`
	Actions []string `json:"actions"`
}

// PushNotification returns the fixed class-reminder payload.
func (c *Cache) PushNotification(body string) Notification {
	if body == "" {
		body = "ヨガクラスのリマインダー"
	}
	return Notification{
		Title:   "Serenity Yoga Studio",
		Body:    body,
		Icon:    "/icon-192x192.png",
		Badge:   "/badge-72x72.png",
		Tag:     "yoga-reminder",
		Actions: []string{"view", "close"},
	}
}

// --------------------------------------------------
// Internals
// --------------------------------------------------

func (c *Cache) resolve(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	return c.origin.ResolveReference(u).String(), nil
}

func (c *Cache) sameOrigin(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Scheme == c.origin.Scheme && u.Host == c.origin.Host
}

func (c *Cache) fetch(ctx context.Context, target string) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Entry{
		URL:    target,
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}
