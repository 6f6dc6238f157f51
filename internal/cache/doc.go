// Package cache keeps recently loaded resources in memory.
//
// LRU holds whole resource payloads (generator-matrix files, tables) keyed by
// store and name, bounded by a byte capacity and, optionally, by the memory
// limit of a resource.Controller shared with other caches.
package cache
