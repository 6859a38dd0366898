// Package registry holds the games discovered at startup.
//
// The Registry is built once by Load from a flat directory of descriptor
// files and is treated as read-only afterwards. It is an unordered
// collection: duplicates (the same name from different files) are kept, and
// callers must not rely on iteration order. Release empties it at shutdown.
package registry
