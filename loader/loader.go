/*
File    : atto/loader/loader.go
Author  : akashmaji(@iisc.ac.in)

Package loader is the one concrete parser.SourceLoader: it turns an
__import path into source text by reading it off disk. The parser
itself stays filesystem-agnostic (spec §5); this is the thin
collaborator that isn't.
*/
package loader

import "os"

// FileLoader reads import paths as plain OS files.
type FileLoader struct{}

// Load reads path's contents, returning them as a string.
func (FileLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
