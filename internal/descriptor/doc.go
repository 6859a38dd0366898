// Package descriptor parses game descriptor files.
//
// A descriptor file is a sequence of logical `key=value` lines. Physical
// lines ending in a backslash are folded into the next one, `#` starts a
// comment, and one level of backslash escaping is removed before the key and
// value are split. Only seven keys are recognized (see Keys); everything else
// is ignored so that newer descriptor files keep loading on older servers.
package descriptor
