package convert

import (
	"path/filepath"
	"strings"
)

const (
	srcExt = ".styl"
	dstExt = ".scss"
)

func isSource(name string) bool {
	return strings.EqualFold(filepath.Ext(name), srcExt)
}

func replaceExt(name string) string {
	if isSource(name) {
		name = name[:len(name)-len(srcExt)]
	}
	return name + dstExt
}

// outputPath places converted file under dst keeping its path relative to the
// walked source. A destination naming a .scss file is used as is.
func outputPath(rel, dst string) string {
	if strings.EqualFold(filepath.Ext(dst), dstExt) {
		return dst
	}
	return filepath.Join(dst, filepath.FromSlash(replaceExt(rel)))
}

// moduleName returns the use path of a source file relative to the project
// root, the same form libraries are registered with. Files outside of the root
// have no module.
func moduleName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	rel = filepath.ToSlash(rel)
	if isSource(rel) {
		rel = rel[:len(rel)-len(srcExt)]
	}
	return rel
}
