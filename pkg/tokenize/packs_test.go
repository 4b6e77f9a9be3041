package tokenize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coolbeans/lexcite/pkg/citation"
	"github.com/coolbeans/lexcite/pkg/reporterdb"
)

const statePackYAML = `name: state-codes
extractors:
  - name: cal-civ-code
    kind: law
    pattern: 'Cal\. Civ\. Code (?P<sectionMarker>§§?)\s*(?P<sections>$sectionList)'
    anchors: ["cal. civ. code"]
    extra:
      law_type: code
`

func writePack(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing pack: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	r, err := NewRegistry(reporterdb.Default())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	path := writePack(t, t.TempDir(), "state.yaml", statePackYAML)

	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	_, tokens, err := r.Tokenize("liability under Cal. Civ. Code § 1798.100(a)")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	tok, ok := tokenOfKind(tokens, citation.TokenLaw)
	if !ok {
		t.Fatalf("pack extractor produced no token: %+v", tokens)
	}
	if tok.Group("sections") != "1798.100(a)" {
		t.Errorf("sections = %q", tok.Group("sections"))
	}
	if tok.Extra["law_type"] != "code" {
		t.Errorf("extra = %v", tok.Extra)
	}
}

func TestLoadFileReplacesEarlierLoad(t *testing.T) {
	r, err := NewRegistry(reporterdb.Default())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	dir := t.TempDir()
	path := writePack(t, dir, "state.yaml", statePackYAML)

	if err := r.LoadFile(path); err != nil {
		t.Fatalf("first LoadFile: %v", err)
	}
	before := r.Count()

	if err := r.LoadFile(path); err != nil {
		t.Fatalf("second LoadFile: %v", err)
	}
	if got := r.Count(); got != before {
		t.Errorf("reloading the same file changed the count: %d -> %d", before, got)
	}
}

func TestLoadFileBadPatternNamesFile(t *testing.T) {
	r, err := NewRegistry(reporterdb.Default())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	path := writePack(t, t.TempDir(), "broken.yaml", `name: broken
extractors:
  - name: broken-law
    kind: law
    pattern: '(unclosed'
`)

	loadErr := r.LoadFile(path)
	if loadErr == nil {
		t.Fatal("expected error for bad pattern")
	}
	if !strings.Contains(loadErr.Error(), "broken.yaml") {
		t.Errorf("error does not name the file: %v", loadErr)
	}
}

func TestLoadFileRejectsUnknownPlaceholder(t *testing.T) {
	r, err := NewRegistry(reporterdb.Default())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	path := writePack(t, t.TempDir(), "bad.yaml", `name: bad
extractors:
  - name: bad-law
    kind: law
    pattern: '$noSuchFragment'
`)

	if err := r.LoadFile(path); err == nil {
		t.Fatal("expected error for unknown placeholder")
	}
}

func TestLoadDirectory(t *testing.T) {
	r, err := NewRegistry(reporterdb.Default())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	dir := t.TempDir()
	writePack(t, dir, "state.yaml", statePackYAML)
	writePack(t, dir, "notes.txt", "not a pack")

	builtin := len(builtinExtractors(reporterdb.Default()))
	if err := r.LoadDirectory(dir); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if got := r.Count(); got != builtin+1 {
		t.Errorf("count = %d, want %d", got, builtin+1)
	}
}

func TestLoadDirectoryMissingIsNoop(t *testing.T) {
	r, err := NewRegistry(reporterdb.Default())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if err := r.LoadDirectory(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Errorf("missing directory should load nothing, got %v", err)
	}
}

func TestReload(t *testing.T) {
	r, err := NewRegistry(reporterdb.Default())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	dir := t.TempDir()
	path := writePack(t, dir, "state.yaml", statePackYAML)

	if err := r.LoadDirectory(dir); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	withPack := r.Count()

	if err := os.Remove(path); err != nil {
		t.Fatalf("removing pack: %v", err)
	}
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := r.Count(); got != withPack-1 {
		t.Errorf("count after reload = %d, want %d", got, withPack-1)
	}
}

func TestPackValidate(t *testing.T) {
	if err := (&Pack{}).Validate(); err == nil {
		t.Error("empty pack should not validate")
	}
	if err := (&Pack{Name: "p"}).Validate(); err == nil {
		t.Error("pack without extractors should not validate")
	}
}
