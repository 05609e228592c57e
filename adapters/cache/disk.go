package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suaralabs/suara/domain"
	"github.com/suaralabs/suara/domain/repositories"
)

const (
	defaultDir        = "audio"
	defaultTTL        = 10 * time.Second
	artifactExtension = ".mp3"
	artifactMIME      = "audio/mpeg"
	tempPrefix        = ".tmp-"
)

// DiskCacheConfig holds configuration for the DiskCache adapter
// Optional fields with defaults:
// - Dir: directory artifacts are stored in (default: "audio")
// - TTL: entry lifetime (default: 10s)
// - SweepEvery: interval of the background expiry sweep (default: TTL)
type DiskCacheConfig struct {
	Dir        string
	TTL        time.Duration
	SweepEvery time.Duration
}

// DiskCache stores one artifact file per key under a single directory.
// Entry age is tracked through file modification time, so entries survive a
// process restart and expire in place. Writes go through a temp file and an
// atomic rename; concurrent writers for the same key resolve to
// last-writer-wins without torn files.
type DiskCache struct {
	dir        string
	ttl        time.Duration
	sweepEvery time.Duration
	logger     *zap.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// Ensure DiskCache implements the AudioCache interface
var _ repositories.AudioCache = (*DiskCache)(nil)

// NewDiskCache creates the cache directory if needed and starts the
// background expiry sweep. Call Close to stop it.
func NewDiskCache(config DiskCacheConfig, logger *zap.Logger) (*DiskCache, error) {
	dir := config.Dir
	if dir == "" {
		dir = defaultDir
		logger.Info("Using default cache directory", zap.String("dir", dir))
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = defaultTTL
		logger.Info("Using default cache TTL", zap.Duration("ttl", ttl))
	}

	sweepEvery := config.SweepEvery
	if sweepEvery <= 0 {
		sweepEvery = ttl
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &DiskCache{
		dir:        dir,
		ttl:        ttl,
		sweepEvery: sweepEvery,
		logger:     logger,
		done:       make(chan struct{}),
	}

	go cache.sweepLoop()

	return cache, nil
}

// Key derives the cache key for a piece of text: the hex SHA-256 of the
// exact bytes, so identical completions reuse audio and distinct
// completions never collide.
func (c *DiskCache) Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Dir returns the cache root directory.
func (c *DiskCache) Dir() string {
	return c.dir
}

// Path returns the servable file name for key, relative to the cache root.
func (c *DiskCache) Path(key string) string {
	return key + artifactExtension
}

// Get returns the cached artifact for key. An expired entry is removed on
// access and reported as a miss; a read failure is also a miss.
func (c *DiskCache) Get(key string) (domain.Audio, bool) {
	name := c.filename(key)

	info, err := os.Stat(name)
	if err != nil {
		return domain.Audio{}, false
	}

	if time.Since(info.ModTime()) >= c.ttl {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("Failed to remove expired cache entry",
				zap.String("key", key),
				zap.Error(err))
		}
		return domain.Audio{}, false
	}

	data, err := os.ReadFile(name)
	if err != nil {
		c.logger.Warn("Failed to read cache entry, treating as miss",
			zap.String("key", key),
			zap.Error(err))
		return domain.Audio{}, false
	}

	return domain.Audio{Data: data, ContentType: artifactMIME}, true
}

// Put stores or replaces the entry for key, stamping the current time.
func (c *DiskCache) Put(key string, audio domain.Audio) error {
	tmp, err := os.CreateTemp(c.dir, tempPrefix+key+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}

	if _, err := tmp.Write(audio.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.filename(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish artifact: %w", err)
	}

	return nil
}

// Close stops the background sweep. Safe to call more than once.
func (c *DiskCache) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *DiskCache) filename(key string) string {
	return filepath.Join(c.dir, key+artifactExtension)
}

func (c *DiskCache) sweepLoop() {
	ticker := time.NewTicker(c.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

// sweep removes expired artifacts and stale temp files so storage growth
// stays bounded even for keys that are never read again.
func (c *DiskCache) sweep() {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		c.logger.Warn("Failed to read cache directory during sweep", zap.Error(err))
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, artifactExtension) && !strings.HasPrefix(name, tempPrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) < c.ttl {
			continue
		}

		if err := os.Remove(filepath.Join(c.dir, name)); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("Failed to remove expired cache entry",
				zap.String("file", name),
				zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		c.logger.Info("Swept expired audio artifacts", zap.Int("removed", removed))
	}
}
