package gura

import (
	"os"
	"path/filepath"
	"strings"
)

// FileLoader resolves the contents of an imported file. It is pluggable so
// Load can run against virtual filesystems or embedded fixtures in tests —
// see SPEC_FULL.md §10.3.
type FileLoader interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileLoader reads files from the host filesystem. It is the default
// FileLoader used by Load when none is supplied.
type OSFileLoader struct{}

func (OSFileLoader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// computeImports greedily consumes the leading run of gura_import, variable
// and useless_line productions, resolves each collected import against
// parentDir, and splices the expanded imported content in front of the
// remaining buffer. Variable definitions and useless lines consumed during
// this pre-scan are applied to p.variables and then simply vanish from the
// buffer, per spec.md §4.8.
func (p *parser) computeImports(parentDir string) error {
	type importRecord struct {
		path string
		pos  Position
	}
	var toImport []importRecord

	for !p.atEnd() {
		item, ok, err := maybeMatch(p,
			namedRule("gura_import", guraImportRule),
			namedRule("variable", variableBodyRule),
			namedRule("useless_line", uselessLineBodyRule),
		)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if item.kind == bodyImport {
			toImport = append(toImport, importRecord{path: item.importPath, pos: item.importPos})
		}
	}

	if len(toImport) == 0 {
		return nil
	}

	var expanded strings.Builder
	for _, rec := range toImport {
		fullPath := rec.path
		if parentDir != "" {
			fullPath = filepath.Join(parentDir, rec.path)
		}

		if p.importedFiles[fullPath] {
			return &DuplicatedImportError{Pos: rec.pos, Path: fullPath, Input: p.text}
		}

		content, err := p.loader.ReadFile(fullPath)
		if err != nil {
			return &ParseError{
				Pos:   rec.pos,
				Msg:   "cannot read imported file " + fullPath + ": " + err.Error(),
				Input: p.text,
			}
		}

		p.importedFiles[fullPath] = true

		sub := newParser(p.loader, p.envLookup)
		sub.importedFiles = p.importedFiles
		sub.restart(string(content))
		if err := sub.computeImports(filepath.Dir(fullPath)); err != nil {
			return err
		}

		expanded.WriteString(sub.text)
		expanded.WriteByte('\n')
	}

	remaining := p.text[p.pos+1:]
	p.restart(expanded.String() + "\n" + remaining)
	return nil
}
