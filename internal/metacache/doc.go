// Package metacache persists fetched records on disk under the cache root
// and serves them back while fresh, refetching stale or unreadable files.
package metacache
