// Package decbyte parses short unsigned decimal tokens into a byte.
//
// Parsing is branch-free per character: the token is packed into the lanes
// of one uint32 and validated, accumulated and range checked with word-wide
// arithmetic.
//
// Lane layout (lane 0 = least significant byte):
// - after packing: lane i holds token byte i, unused lanes are zero
// - after alignment: lane 3 units, lane 2 tens, lane 1 hundreds, lane 0 zero
package decbyte
