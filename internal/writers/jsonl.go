// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"readprep/internal/jsonlutil"
)

// StartJSONLWriter streams each Record as one JSON line (v1).
func StartJSONLWriter(out io.Writer, bufSize int) (chan<- Record, <-chan error) {
	return jsonlutil.Start[Record](out, bufSize,
		func(enc *json.Encoder, r Record) error {
			return enc.Encode(ToAPI(r))
		},
		IsBrokenPipe,
	)
}
