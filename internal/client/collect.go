package client

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// Collect turns command-line arguments into files. A file argument is used
// as given, whatever its extension; a directory contributes every Word
// document below it, with Path relative to the directory's parent so the
// first segment names the folder.
func Collect(args []string) ([]word2pdf.File, error) {
	var files []word2pdf.File
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		if !info.IsDir() {
			files = append(files, diskFile(arg, filepath.Base(arg), info.Size()))
			continue
		}

		found, err := collectDir(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func collectDir(dir string) ([]word2pdf.File, error) {
	root := filepath.Clean(dir)
	parent := filepath.Dir(root)

	var files []word2pdf.File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fileutil.IsWordDocument(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return err
		}
		files = append(files, diskFile(path, filepath.ToSlash(rel), info.Size()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func diskFile(path, rel string, size int64) word2pdf.File {
	return word2pdf.File{
		Name: filepath.Base(path),
		Path: rel,
		Size: size,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}
