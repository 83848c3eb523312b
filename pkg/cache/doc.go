// Package cache provides the shared lookup tables behind the Pokedex
// read-through flows.
//
// A Store maps a creature name to a string value. Two independent tables
// exist at runtime: one for JSON-encoded profiles and one for translated
// descriptions. Entries never expire and are never evicted; a value
// written for a name stays for the process lifetime (or for the lifetime
// of the Redis keyspace when the Redis backend is selected). A later Put
// for the same key overwrites the earlier value, last writer wins.
//
// Backends:
//
//   - Memory: mutex-guarded map, the default. No external dependencies,
//     state is lost on restart.
//   - Redis: go-redis backed, keyed under "pokedex:<table>:". Lets several
//     replicas share one warm cache.
//
// Both backends are safe for concurrent use. Neither holds its lock
// across a network call; the Redis backend delegates synchronization to
// the Redis client itself.
package cache
