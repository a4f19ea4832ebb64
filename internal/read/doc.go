// Package read holds the Read entity and its construction from raw
// header, sequence and quality bytes.
//
// A Read owns one byte buffer with four equal-length regions (contents,
// upper-cased contents, reverse complement of the upper-cased contents,
// quality). Every view is a range into that buffer and every chop moves
// the shared active window, so the views never drift apart.
package read
