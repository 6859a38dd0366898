// Package playground provisions per-player working directories.
//
// Playgrounds are sharded by the first byte of the player name:
//
//	<base>/<first byte>/<player>/
//
// Sharding only bounds the fan-out of the base directory; players sharing an
// initial share a shard but never a leaf. The first byte is used even when
// the name starts with a multi-byte UTF-8 sequence, so such names land in a
// shard named by a partial character. This is a known limitation kept for
// compatibility with existing playground trees.
package playground
