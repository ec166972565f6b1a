package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver locates dictionary tables near the running binary
type PathResolver struct {
	executablePath string
	executableDir  string
}

// NewPathResolver creates a new path resolver anchored at the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
	}
	log.Debugf("PathResolver initialized: exec=%s", execPath)
	return pr, nil
}

// FindDictPath resolves a user-specified table path.
// It tries multiple locations in order of preference:
// 1. The path as given (absolute, or relative to the working directory)
// 2. Relative to the executable directory
func (pr *PathResolver) FindDictPath(userPath string) (string, error) {
	if userPath == "" {
		return "", os.ErrNotExist
	}

	candidates := []string{userPath}
	if !filepath.IsAbs(userPath) {
		candidates = append(candidates, filepath.Join(pr.executableDir, userPath))
	}

	for _, path := range candidates {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Found dictionary table: %s", path)
			return path, nil
		}
		log.Debugf("Dictionary candidate not valid: %s", path)
	}
	return "", os.ErrNotExist
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}

// GetExecutablePath returns the full path to the executable
func (pr *PathResolver) GetExecutablePath() string {
	return pr.executablePath
}
