// Package buffer implements the logical document of an editing session:
// an ordered list of lines plus a cursor, with the mutations a keyboard
// can produce.
//
// Coordinates are 0-based (Row, Col) where Col counts grapheme clusters.
// A buffer always holds at least one line.
package buffer
