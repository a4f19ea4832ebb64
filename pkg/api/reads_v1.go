// pkg/api/reads_v1.go
package api

// MateV1 is one mate of a ReadV1. Sequence is the active window after all
// chops; the chopped and extracted pieces are reported alongside.
type MateV1 struct {
	Sequence   string `json:"seq"`
	Quality    string `json:"qual,omitempty"`
	Barcode    string `json:"barcode,omitempty"`
	EndTrim    string `json:"endtrim,omitempty"`
	LeftChop   string `json:"left_chop,omitempty"`
	RightChop  string `json:"right_chop,omitempty"`
	Inverted   bool   `json:"inverted,omitempty"`
	Filtered   bool   `json:"filtered,omitempty"`
	Length     int    `json:"length"`
}

// ReadV1 is the stable JSON/JSONL schema for one single-end or paired
// record. Keep fields, names, and types stable. Add new fields only with
// ",omitempty".
type ReadV1 struct {
	Accession string  `json:"accession"`
	Remainder string  `json:"remainder,omitempty"`
	Mate1     MateV1  `json:"mate1"`
	Mate2     *MateV1 `json:"mate2,omitempty"`
	Overlap   int     `json:"overlap,omitempty"` // mate overlap length, pairs only
}
