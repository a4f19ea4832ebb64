// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

const module = "readprep/"

// outer layers: nothing below them may import these
var outer = []string{
	"readprep/internal/app", "readprep/internal/appshell",
	"readprep/internal/cli", "readprep/internal/cmdutil",
	"readprep/cmd/",
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", module+"...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	core := append([]string{"readprep/internal/writers", "readprep/pkg/"}, outer...)
	bans := map[string][]string{
		"readprep/internal/seq":     core,
		"readprep/internal/read":    append([]string{"readprep/internal/trim", "readprep/internal/ingest"}, core...),
		"readprep/internal/trim":    append([]string{"readprep/internal/ingest"}, core...),
		"readprep/internal/header":  core,
		"readprep/internal/lineio":  core,
		"readprep/internal/source":  core,
		"readprep/internal/runutil": core,
		"readprep/internal/ingest":  core,
		"readprep/internal/writers": append([]string{"readprep/internal/ingest", "readprep/internal/trim"}, outer...),
		"readprep/pkg/api":          {"readprep/internal/"},
	}

	var violations []string
	seen := 0
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		forbidden, ok := bans[p.ImportPath]
		if !ok {
			continue
		}
		seen++
		for _, dep := range p.Imports {
			if !strings.HasPrefix(dep, module) {
				continue
			}
			for _, ban := range forbidden {
				if dep == ban || strings.HasPrefix(dep, strings.TrimSuffix(ban, "/")+"/") {
					violations = append(violations, p.ImportPath+" → "+dep)
				}
			}
		}
	}

	if seen != len(bans) {
		t.Fatalf("go list saw %d of %d checked packages", seen, len(bans))
	}
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
