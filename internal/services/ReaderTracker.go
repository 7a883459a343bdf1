package services

import (
	"hash/fnv"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// ReaderTracker remembers which visitors have read each post during the
// lifetime of the process. Visitors are kept as 32-bit FNV-1a hashes in one
// bitmap per post, so memory stays flat no matter how often a visitor returns.
type ReaderTracker struct {
	mu      sync.Mutex
	readers map[string]*roaring.Bitmap
}

func NewReaderTracker() *ReaderTracker {
	return &ReaderTracker{readers: make(map[string]*roaring.Bitmap)}
}

// Track records visitor as a reader of postID and reports whether this is
// the first time the visitor was seen for that post. An empty visitor key
// is never counted.
func (rt *ReaderTracker) Track(postID, visitor string) bool {
	if visitor == "" {
		return false
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	bm, ok := rt.readers[postID]
	if !ok {
		bm = roaring.New()
		rt.readers[postID] = bm
	}
	return bm.CheckedAdd(visitorHash(visitor))
}

// Readers returns the number of distinct visitors seen for postID.
func (rt *ReaderTracker) Readers(postID string) int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if bm, ok := rt.readers[postID]; ok {
		return int(bm.GetCardinality())
	}
	return 0
}

func (rt *ReaderTracker) Forget(postID string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	delete(rt.readers, postID)
}

func visitorHash(visitor string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(visitor))
	return h.Sum32()
}

func (rt *ReaderTracker) Reset() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.readers = make(map[string]*roaring.Bitmap)
}
