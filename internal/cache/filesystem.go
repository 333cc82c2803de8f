package cache

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv"
	"github.com/sirupsen/logrus"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/xtime"
)

// TTLLookup returns the configured user TTL for an API operation
// (cache_api_<op>_expiration).
type TTLLookup func(ApiOperation) xtime.Seconds

// FileCache is the on-disk conditional cache. It stores each entry as a
// gzip-compressed blob, keyed by the SHA-256 hex digest of the request
// URL, directly under cacheLocation (no subdirectory fan-out) - the same
// flat layout ghproxy's disk-backed ghcache uses by way of
// gregjones/httpcache/diskcache, adapted here to go straight through
// diskv so the stored file's mtime is reachable for the dual-expiration
// freshness check.
type FileCache struct {
	location string
	store    *diskv.Diskv
	ttl      TTLLookup
	clock    xtime.Clock
	log      *logrus.Entry

	mu sync.Mutex
}

// NewFileCache validates cacheLocation (must exist, be a directory, and
// be writable) and returns a FileCache rooted there.
func NewFileCache(cacheLocation string, ttl TTLLookup, clock xtime.Clock, log *logrus.Entry) (*FileCache, error) {
	if err := validateCacheLocation(cacheLocation); err != nil {
		return nil, err
	}
	store := diskv.New(diskv.Options{
		BasePath:     cacheLocation,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 0,
	})
	return &FileCache{
		location: cacheLocation,
		store:    store,
		ttl:      ttl,
		clock:    clock,
		log:      log.WithField("component", "cache"),
	}, nil
}

func validateCacheLocation(location string) error {
	info, err := os.Stat(location)
	if err != nil {
		if os.IsNotExist(err) {
			return &errorsx.CacheLocationDoesNotExistError{Path: location}
		}
		return &errorsx.CacheLocationWriteTestFailedError{Path: location, Cause: err}
	}
	if !info.IsDir() {
		return &errorsx.CacheLocationIsNotADirectoryError{Path: location}
	}
	probe := filepath.Join(location, ".forgectl-write-test")
	f, err := os.Create(probe)
	if err != nil {
		return &errorsx.CacheLocationIsNotWriteableError{Path: location}
	}
	f.Close()
	os.Remove(probe)
	return nil
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.location, key)
}

// Get implements Cache.
func (c *FileCache) Get(r Resource) (CacheState, error) {
	key := cacheKey(r.URL)
	raw, err := c.store.Read(key)
	if err != nil {
		return CacheState{Freshness: None}, nil
	}
	entry, err := decodeEntry(raw)
	if err != nil {
		// A corrupt or torn-write entry is treated as a miss: a reader
		// racing a concurrent writer sees an incomplete file and should
		// not surface that as an error.
		c.log.WithError(err).WithField("url", r.URL).Debug("cache entry unreadable, treating as miss")
		return CacheState{Freshness: None}, nil
	}
	info, err := os.Stat(c.path(key))
	if err != nil {
		return CacheState{Freshness: None}, nil
	}
	elapsed := xtime.Seconds(c.clock.Now().Unix() - info.ModTime().Unix())
	if c.fresh(elapsed, r.Operation, entry.Headers) {
		return CacheState{Freshness: Fresh, Entry: entry}, nil
	}
	return CacheState{Freshness: Stale, Entry: entry}, nil
}

func (c *FileCache) fresh(elapsed xtime.Seconds, op ApiOperation, headers Headers) bool {
	userTTL := xtime.Seconds(0)
	if c.ttl != nil {
		userTTL = c.ttl(op)
	}
	if elapsed < userTTL {
		return true
	}
	directives := parseCacheControl(headers["cache-control"])
	if directives.noStore || directives.noCache {
		return false
	}
	if directives.maxAgeSet {
		return elapsed < xtime.Seconds(directives.maxAge)
	}
	return false
}

// Set implements Cache.
func (c *FileCache) Set(r Resource, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(r.URL)
	return c.store.WriteStream(key, bytes.NewReader(encodeEntry(e)), true)
}

// Update implements Cache. It merges the changed field into whatever is
// already stored, keeping other keys/fields untouched - necessary
// because a 304 response may omit Link headers that existed on the
// original 200.
func (c *FileCache) Update(r Resource, e Entry, field UpdateField) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(r.URL)
	raw, err := c.store.Read(key)
	if err != nil {
		return c.store.WriteStream(key, bytes.NewReader(encodeEntry(e)), true)
	}
	existing, err := decodeEntry(raw)
	if err != nil {
		return c.store.WriteStream(key, bytes.NewReader(encodeEntry(e)), true)
	}
	switch field {
	case UpdateBody:
		existing.Body = e.Body
	case UpdateStatus:
		existing.Status = e.Status
	case UpdateHeaders:
		if existing.Headers == nil {
			existing.Headers = Headers{}
		}
		for k, v := range e.Headers {
			existing.Headers[k] = v
		}
	}
	return c.store.WriteStream(key, bytes.NewReader(encodeEntry(*existing)), true)
}

func encodeEntry(e Entry) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	headersJSON, _ := json.Marshal(e.Headers)
	fmt.Fprintf(gz, "%s\n%d\n", headersJSON, e.Status)
	gz.Write(e.Body)
	gz.Close()
	return buf.Bytes()
}

func decodeEntry(raw []byte) (*Entry, error) {
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	r := bufio.NewReader(gz)

	headerLine, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	statusLine, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var headers Headers
	if err := json.Unmarshal([]byte(strings.TrimRight(headerLine, "\n")), &headers); err != nil {
		return nil, err
	}
	status, err := strconv.Atoi(strings.TrimRight(statusLine, "\n"))
	if err != nil {
		// Boundary choice: a non-integer stored status code is treated
		// as a decode error (and thus a miss by Get), not a panic or a
		// silently-zero status.
		return nil, fmt.Errorf("cache entry has non-integer status %q: %w", statusLine, err)
	}

	return &Entry{Status: status, Body: body, Headers: headers}, nil
}

type cacheControlDirectives struct {
	noStore   bool
	noCache   bool
	maxAgeSet bool
	maxAge    int64
}

func parseCacheControl(header string) cacheControlDirectives {
	var d cacheControlDirectives
	if header == "" {
		return d
	}
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "no-store":
			d.noStore = true
		case part == "no-cache":
			d.noCache = true
		case strings.HasPrefix(part, "max-age="):
			if n, err := strconv.ParseInt(strings.TrimPrefix(part, "max-age="), 10, 64); err == nil {
				d.maxAgeSet = true
				d.maxAge = n
			}
		}
	}
	return d
}
