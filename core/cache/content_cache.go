package cache

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"

	"github.com/tristendillon/importfix/core/logger"
)

// ContentEntry is the last content importfix settled on for a file: what it
// read and left alone, or what it wrote.
type ContentEntry struct {
	FilePath    string    `json:"file_path"`
	ContentHash string    `json:"content_hash"`
	Size        int64     `json:"size"`
	Written     bool      `json:"written"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CacheStats struct {
	TotalFiles  int     `json:"total_files"`
	Written     int     `json:"written"`
	CacheHits   int64   `json:"cache_hits"`
	CacheMisses int64   `json:"cache_misses"`
	HitRate     float64 `json:"hit_rate"`
}

// ContentCache lets repeated passes over a tree skip files whose content is
// the same as when importfix last handled them. It never touches the disk;
// callers hand it the bytes they already read.
type ContentCache struct {
	entries map[string]*ContentEntry
	mutex   sync.Mutex
	hits    int64
	misses  int64
}

func NewContentCache() *ContentCache {
	return &ContentCache{
		entries: make(map[string]*ContentEntry),
	}
}

// UpdateContent records data as the current content of filePath and reports
// whether it differs from the last record. A file seen for the first time
// counts as changed.
func (cc *ContentCache) UpdateContent(filePath string, data []byte) bool {
	hash := HashContent(data)

	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	existing, exists := cc.entries[filePath]
	if exists && existing.ContentHash == hash {
		cc.hits++
		return false
	}

	cc.misses++
	if exists {
		logger.Debug("ContentCache: Content changed for %s (hash: %s -> %s)", filePath, existing.ContentHash[:8], hash[:8])
	} else {
		logger.Debug("ContentCache: New file detected: %s", filePath)
	}
	cc.entries[filePath] = newContentEntry(filePath, hash, data, false)
	return true
}

// RecordWrite stores content importfix just wrote, so the write itself does
// not look like an edit on the next pass.
func (cc *ContentCache) RecordWrite(filePath string, data []byte) {
	entry := newContentEntry(filePath, HashContent(data), data, true)

	cc.mutex.Lock()
	defer cc.mutex.Unlock()
	cc.entries[filePath] = entry
}

func (cc *ContentCache) RemoveContent(filePath string) {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	if _, exists := cc.entries[filePath]; exists {
		delete(cc.entries, filePath)
		logger.Debug("ContentCache: Removed entry for %s", filePath)
	}
}

func (cc *ContentCache) GetStats() *CacheStats {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	stats := &CacheStats{
		TotalFiles:  len(cc.entries),
		CacheHits:   cc.hits,
		CacheMisses: cc.misses,
	}
	for _, e := range cc.entries {
		if e.Written {
			stats.Written++
		}
	}
	if total := cc.hits + cc.misses; total > 0 {
		stats.HitRate = float64(cc.hits) / float64(total) * 100
	}
	return stats
}

func (cc *ContentCache) LogStats() {
	stats := cc.GetStats()
	logger.Debug("Cache stats: Hits=%d, Misses=%d, Hit Rate=%.1f%%, Total Entries=%d, Rewritten=%d",
		stats.CacheHits, stats.CacheMisses, stats.HitRate, stats.TotalFiles, stats.Written)
}

func HashContent(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func newContentEntry(filePath, hash string, data []byte, written bool) *ContentEntry {
	return &ContentEntry{
		FilePath:    filePath,
		ContentHash: hash,
		Size:        int64(len(data)),
		Written:     written,
		UpdatedAt:   time.Now(),
	}
}
