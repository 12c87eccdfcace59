// Package fsscan discovers local source documents.
//
// Include and exclude patterns use Ant syntax: "*" matches within a path
// segment, "**" matches any number of segments and a trailing "/" means
// everything below. Matching is case-insensitive unless requested
// otherwise, whatever the host filesystem does. Paths are always
// reported with "/" separators.
package fsscan
