// Package cache provides the sharded LRU cache behind memoized pixel
// membership queries.
//
// Keys are spread over 16 shards, each with its own lock and eviction
// list, so membership results produced on the worker pool can be
// stored and looked up without serializing on one mutex. Eviction is
// strict least-recently-used per shard.
//
// Values are stored as-is, not copied. Callers caching slices or maps
// must treat retrieved values as read-only.
package cache
