package scripthub

import (
	"os"
	"path/filepath"
)

// DirFile contains details for a file.
type DirFile struct {
	Name     string
	FullPath string
	IsDir    bool
}

// GetDirFiles retrives all the immediate entries within the given directory in
// directory enumeration order, indicating whether each is a Directory.
func GetDirFiles(dir string) ([]DirFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []DirFile{}, err
	}
	files := make([]DirFile, 0, len(entries))
	for _, e := range entries {
		files = append(files, DirFile{
			Name:     e.Name(),
			FullPath: filepath.Join(dir, e.Name()),
			IsDir:    e.IsDir(),
		})
	}
	return files, nil
}

// GetCWD returns the directory containing the running executable.
func GetCWD() (string, error) {
	ex, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(ex), nil
}

// FileExists checks for the existence of the file indicated by filename and returns true if it exists.
func FileExists(filename string) bool {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return false
	}
	return true
}
