package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SourceExt is the extension of analyzable files.
const SourceExt = ".veryl"

// skipped directories at any depth
var skipDirs = []string{"target", "dependencies"}

// Sources lists every source file under the metadata source directories,
// sorted and without duplicates. File order is the commit order of pass 1.
func (md *Metadata) Sources() ([]string, error) {
	var out []string
	for _, dir := range md.SourceDirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, os.ErrNotExist) && path == dir {
					return fmt.Errorf("source directory %q does not exist", dir)
				}
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != dir && (strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name)) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != SourceExt || md.excluded(path) {
				return nil
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (md *Metadata) excluded(path string) bool {
	rel, err := filepath.Rel(md.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range md.Exclude {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		if strings.HasSuffix(pat, "/") && strings.HasPrefix(rel, pat) {
			return true
		}
	}
	return false
}
