package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/rainbow/internal/scanner"
	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

const (
	DefaultCacheExpiration = 10 * time.Minute
	defaultCleanupInterval = 30 * time.Minute
)

const keySeparator = "\x00"

// Cache keeps scan results keyed by file path, content hash and the
// fingerprint of the theme and options that produced them.
type Cache struct {
	cache *gocache.Cache
}

// NewCache returns a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheExpiration
	}
	return &Cache{cache: gocache.New(ttl, defaultCleanupInterval)}
}

// Key builds the cache key for one file version.
func Key(path, text, fingerprint string) string {
	sum := sha256.Sum256([]byte(text))
	return path + keySeparator + hex.EncodeToString(sum[:]) + keySeparator + fingerprint
}

// Get returns the cached ranges for key.
func (c *Cache) Get(key string) (*scanner.RangeMap, bool) {
	if c == nil {
		return nil, false
	}
	value, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	m, ok := value.(*scanner.RangeMap)
	return m, ok
}

// Set stores ranges under key with the default expiration.
func (c *Cache) Set(key string, m *scanner.RangeMap) {
	if c == nil {
		return
	}
	c.cache.SetDefault(key, m)
}

// Forget drops every cached version of path.
func (c *Cache) Forget(path string) {
	if c == nil {
		return
	}
	prefix := path + keySeparator
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}

// Len returns the number of cached entries, expired ones included until the
// next cleanup.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}

// Flush drops every entry.
func (c *Cache) Flush() {
	if c == nil {
		return
	}
	c.cache.Flush()
}

// Fingerprint identifies a theme and option set. Key order of the theme is
// significant because wildcard resolution depends on it.
func Fingerprint(th theme.Theme, opts scanner.Options) string {
	data, err := yaml.Marshal(struct {
		Theme   theme.Theme     `yaml:"theme"`
		Options scanner.Options `yaml:"options"`
	}{th, opts})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
