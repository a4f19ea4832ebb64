// Package trim implements the approximate-matching trimmers that run on a
// constructed Read or a mate pair: paired adapter (primer) chopping,
// cached mate-overlap detection, and poly-A/T trimming.
//
// All scans compare upper-cased views and never allocate.
package trim
