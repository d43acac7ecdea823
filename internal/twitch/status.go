package twitch

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/grafana/regexp"
	"github.com/panjf2000/ants/v2"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
	"go.uber.org/ratelimit"
)

// Status describes the last known broadcast state of a channel.
type Status int

const (
	StatusUnknown Status = iota
	StatusChecking
	StatusOnline
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

const (
	defaultCacheTTL     = 60 * time.Second
	defaultCacheEntries = 50
	defaultWorkerCap    = 5
	defaultRequestRate  = 2 // page fetches per second
	maxBodyBytes        = 512 * 1024
)

// Markers scanned in the channel page. Live markers win over offline ones;
// a page matching neither is treated as offline.
var (
	livePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"isLiveBroadcast":true`),
		regexp.MustCompile(`(?i)"broadcastType":"live"`),
		regexp.MustCompile(`(?i)"isLive":true`),
		regexp.MustCompile(`(?i)"viewerCount":\s*[1-9]\d*`),
	}
	offlinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"isLiveBroadcast":false`),
		regexp.MustCompile(`(?i)"broadcastType":"upload"`),
		regexp.MustCompile(`(?i)OfflineScreen`),
	}
)

type statusEntry struct {
	status    Status
	checkedAt time.Time
}

// Checker resolves channel broadcast status against the public channel
// pages. The HTTP client is injected so the process-lifetime client (and a
// test fake) can be shared.
type Checker struct {
	client     *http.Client
	limiter    ratelimit.Limiter
	cache      *xsync.MapOf[string, statusEntry]
	cacheTTL   time.Duration
	maxEntries int
	baseURL    string
	now        func() time.Time
	workerCap  int
	log        zerolog.Logger
}

// CheckerOptions tune a Checker. Zero values select the defaults.
type CheckerOptions struct {
	CacheTTL  time.Duration
	WorkerCap int
}

// NewChecker builds a Checker on top of the given long-lived HTTP client.
func NewChecker(client *http.Client, logger zerolog.Logger, opts CheckerOptions) *Checker {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	workers := opts.WorkerCap
	if workers <= 0 {
		workers = defaultWorkerCap
	}
	return &Checker{
		client:     client,
		limiter:    ratelimit.New(defaultRequestRate),
		cache:      xsync.NewMapOf[string, statusEntry](),
		cacheTTL:   ttl,
		maxEntries: defaultCacheEntries,
		baseURL:    "https://www.twitch.tv/",
		now:        time.Now,
		workerCap:  workers,
		log:        logger,
	}
}

// Check reports whether the channel is broadcasting. Results are served
// from a short-lived cache when fresh; network failures and non-200
// responses degrade to StatusUnknown, never to an error.
func (c *Checker) Check(ch Channel) Status {
	if ch.IsZero() {
		return StatusUnknown
	}
	key := ch.Handle()
	if e, ok := c.cache.Load(key); ok && c.now().Sub(e.checkedAt) < c.cacheTTL {
		return e.status
	}

	status := c.fetch(ch)
	c.store(key, status)
	return status
}

// CheckMultiple resolves every distinct channel in channels, invoking
// onEach exactly once per channel as its status arrives. Lookups fan out
// across a bounded worker pool; completion order is unspecified. The
// returned map holds one entry per distinct input channel.
func (c *Checker) CheckMultiple(channels []Channel, onEach func(Channel, Status)) map[Channel]Status {
	distinct := make([]Channel, 0, len(channels))
	seen := make(map[Channel]struct{}, len(channels))
	for _, ch := range channels {
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		distinct = append(distinct, ch)
	}
	if len(distinct) == 0 {
		return map[Channel]Status{}
	}

	var (
		mu      sync.Mutex
		results = make(map[Channel]Status, len(distinct))
		wg      sync.WaitGroup
	)
	record := func(ch Channel) {
		defer wg.Done()
		status := c.Check(ch)
		mu.Lock()
		results[ch] = status
		mu.Unlock()
		if onEach != nil {
			onEach(ch, status)
		}
	}

	size := c.workerCap
	if len(distinct) < size {
		size = len(distinct)
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		// Pool construction only fails on bad sizing; fall back to serial.
		c.log.Warn().Err(err).Msg("status worker pool unavailable, checking serially")
		for _, ch := range distinct {
			wg.Add(1)
			record(ch)
		}
		return results
	}
	defer pool.Release()

	for _, ch := range distinct {
		ch := ch
		wg.Add(1)
		if err := pool.Submit(func() { record(ch) }); err != nil {
			record(ch)
		}
	}
	wg.Wait()
	return results
}

func (c *Checker) fetch(ch Channel) Status {
	c.limiter.Take()

	req, err := http.NewRequest(http.MethodGet, c.baseURL+ch.Handle(), nil)
	if err != nil {
		c.log.Warn().Err(err).Str("channel", ch.Handle()).Msg("status request build failed")
		return StatusUnknown
	}
	setBrowserHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("channel", ch.Handle()).Msg("status check failed")
		return StatusUnknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug().Int("code", resp.StatusCode).Str("channel", ch.Handle()).Msg("status check non-200")
		return StatusUnknown
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.log.Debug().Err(err).Str("channel", ch.Handle()).Msg("status body read failed")
		return StatusUnknown
	}
	return classify(body)
}

// classify scans a channel page body. Ambiguous content is reported as
// offline on purpose: a reachable page without a live marker almost always
// means the channel is not broadcasting.
func classify(body []byte) Status {
	for _, p := range livePatterns {
		if p.Match(body) {
			return StatusOnline
		}
	}
	for _, p := range offlinePatterns {
		if p.Match(body) {
			return StatusOffline
		}
	}
	return StatusOffline
}

// store caches a result, evicting the oldest entry when at capacity.
// Eviction is lossy under concurrency; the worst case is one redundant
// page fetch.
func (c *Checker) store(key string, status Status) {
	if c.cache.Size() >= c.maxEntries {
		var (
			oldestKey string
			oldestAt  time.Time
		)
		c.cache.Range(func(k string, e statusEntry) bool {
			if oldestKey == "" || e.checkedAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.checkedAt
			}
			return true
		})
		if oldestKey != "" {
			c.cache.Delete(oldestKey)
		}
	}
	c.cache.Store(key, statusEntry{status: status, checkedAt: c.now()})
}

// ClearCache drops all cached results.
func (c *Checker) ClearCache() {
	c.cache.Clear()
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "max-age=0")
}

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
