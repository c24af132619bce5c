// Package fixture loads the table-driven parse fixtures under testdata/:
// one ".txxt" source file per case, plus an optional manifest.yaml
// recording which cases are expected to fail and with which ErrorKind.
package fixture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hesusruiz/vcutils/yaml"
)

// Case is one fixture: a name (the file's base name, sans extension), its
// raw source, and the expected error kind name if the manifest says this
// case should fail ("" when it should parse cleanly).
type Case struct {
	Name          string
	Source        string
	ExpectedError string
}

// Load walks dir for "*.txxt" files (doublestar so nested directories of
// cases are picked up the same way) and cross-references manifest.yaml
// for any case that's expected to produce a fatal ParseError.
func Load(dir string) ([]Case, error) {
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, "**/*.txxt")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	manifest, _ := yaml.ParseYamlFile(filepath.Join(dir, "manifest.yaml"))

	cases := make([]Case, 0, len(matches))
	for _, m := range matches {
		raw, err := os.ReadFile(filepath.Join(dir, m))
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(m), ".txxt")
		cases = append(cases, Case{
			Name:          name,
			Source:        string(raw),
			ExpectedError: expectedErrorKind(manifest, name),
		})
	}
	return cases, nil
}

// expectedErrorKind looks up one case's entry in manifest.yaml (a flat
// "case-name: {kind: ErrorKind}" mapping) and returns its expected
// ErrorKind name, or "" if the case has no entry (it's expected to parse
// cleanly) or there was no manifest at all.
func expectedErrorKind(manifest *yaml.YAML, name string) string {
	if manifest == nil {
		return ""
	}
	entry, ok := manifest.Get(name)
	if !ok || entry == nil {
		return ""
	}
	return yaml.New(entry).String("kind")
}
