package cli

import (
	"fmt"
	"path/filepath"
	"strings"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandInputs expands quoted globs in both file lists (config files and
// some shells hand them over unexpanded). Matches keep glob order; "-" is
// stdin and passes through.
func (o *Options) ExpandInputs() error {
	var err error
	if o.Files1, err = expand(o.Files1); err != nil {
		return err
	}
	o.Files2, err = expand(o.Files2)
	return err
}

func expand(paths []string) ([]string, error) {
	var out []string
	for _, a := range paths {
		if a == "-" || !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}
