package roi

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/microvis/roi/internal/cache"
)

// membershipKey identifies one membership query result. Geometry is
// covered indirectly through the annotation's revision counter, so a
// cached entry can never serve pixels for geometry that has since
// changed.
type membershipKey struct {
	annotation uint64
	revision   uint64
	width      int
	height     int
	transform  Matrix
	rect       PixelRect
}

func (k membershipKey) hash() uint64 {
	var buf [112]byte
	le := binary.LittleEndian
	le.PutUint64(buf[0:], k.annotation)
	le.PutUint64(buf[8:], k.revision)
	le.PutUint64(buf[16:], uint64(k.width))
	le.PutUint64(buf[24:], uint64(k.height))
	le.PutUint64(buf[32:], math.Float64bits(k.transform.A))
	le.PutUint64(buf[40:], math.Float64bits(k.transform.B))
	le.PutUint64(buf[48:], math.Float64bits(k.transform.C))
	le.PutUint64(buf[56:], math.Float64bits(k.transform.D))
	le.PutUint64(buf[64:], math.Float64bits(k.transform.E))
	le.PutUint64(buf[72:], math.Float64bits(k.transform.F))
	le.PutUint64(buf[80:], uint64(k.rect.From.X))
	le.PutUint64(buf[88:], uint64(k.rect.From.Y))
	le.PutUint64(buf[96:], uint64(k.rect.To.X))
	le.PutUint64(buf[104:], uint64(k.rect.To.Y))
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// MembershipCache memoizes Membership results per annotation revision.
// Redraws against an unchanged annotation, the common case while the
// user pans or toggles visibility, then skip the polygon clipping
// entirely. Superseded revisions age out of the LRU on their own.
//
// Returned slices are shared with the cache and must be treated as
// read-only.
type MembershipCache struct {
	entries *cache.Cache[membershipKey, []Pixel]
}

// NewMembershipCache creates a cache holding up to capacity query
// results per shard. A capacity of zero or less selects the cache
// package default.
func NewMembershipCache(capacity int) *MembershipCache {
	return &MembershipCache{
		entries: cache.New[membershipKey, []Pixel](capacity, membershipKey.hash),
	}
}

// Membership returns the annotation's member pixels within rect,
// computing and storing them on the first request for the current
// revision.
//
// The computation runs outside the cache lock, so two goroutines
// racing on the same cold key may both do the work; both store the
// same result.
func (mc *MembershipCache) Membership(a *Annotation, q PixelQuery, rect PixelRect, opts ...QueryOption) ([]Pixel, error) {
	key := membershipKey{
		annotation: a.id,
		revision:   a.Revision(),
		width:      q.Width,
		height:     q.Height,
		transform:  q.Transform,
		rect:       rect,
	}
	if pixels, ok := mc.entries.Get(key); ok {
		Logger().Debug("membership cache hit",
			"annotation", a.id,
			"revision", key.revision,
			"pixels", len(pixels))
		return pixels, nil
	}

	pixels, err := Membership(a.Snapshot(), q, rect, opts...)
	if err != nil {
		return nil, err
	}
	mc.entries.Set(key, pixels)
	return pixels, nil
}

// Clear drops every cached result.
func (mc *MembershipCache) Clear() {
	mc.entries.Clear()
}

// CacheStats reports membership cache effectiveness counters.
type CacheStats struct {
	Entries   int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}

// Stats returns a point-in-time snapshot of the cache counters.
func (mc *MembershipCache) Stats() CacheStats {
	s := mc.entries.Stats()
	return CacheStats{
		Entries:   s.Len,
		Hits:      s.Hits,
		Misses:    s.Misses,
		HitRate:   s.HitRate,
		Evictions: s.Evictions,
	}
}
