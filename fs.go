package metagen

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	pathpkg "path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// WalkFileSystem walks a file system breadth-first and calls walkFn for each regular file whose
// path passes filter (a nil filter passes every file). The files of a directory are visited in
// name order before any of its subdirectories are entered, and dot-directories are skipped. Paths
// passed to filter and walkFn have no leading slash.
func WalkFileSystem(fs http.FileSystem, filter func(path string) bool, walkFn func(path string) error) error {
	dirs := []string{"/"}
	for len(dirs) > 0 {
		dir := dirs[0]
		dirs = dirs[1:]

		entries, err := readDir(fs, dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			p := pathpkg.Join(dir, e.Name())
			switch mode := e.Mode(); {
			case mode.IsDir():
				if !strings.HasPrefix(e.Name(), ".") {
					dirs = append(dirs, p)
				}
			case mode.IsRegular():
				rel := strings.TrimPrefix(p, "/")
				if filter != nil && !filter(rel) {
					continue
				}
				if err := walkFn(rel); err != nil {
					return errors.WithMessage(err, fmt.Sprintf("walk %s", p))
				}
			default:
				return fmt.Errorf("file %s has unsupported mode %o (symlinks and other special files are not supported)", p, mode)
			}
		}
	}
	return nil
}

// readDir returns the entries of the directory at path, sorted by name.
func readDir(fs http.FileSystem, path string) ([]os.FileInfo, error) {
	dir, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()
	entries, err := dir.Readdir(-1)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// ReadFile reads the whole file at path.
func ReadFile(fs http.FileSystem, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ioutil.ReadAll(f)
}

func isDir(fs http.FileSystem, path string) bool {
	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	fi, err := f.Stat()
	return err == nil && fi.IsDir()
}
