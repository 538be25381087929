package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxNumberedSuffix = 9

// SafePath returns path unchanged when nothing exists there. Otherwise it
// tries name_1.ext .. name_9.ext and finally name_<uuidv7>.ext.
// changed reports whether a different path was chosen.
func SafePath(path string) (out string, changed bool, err error) {
	if strings.TrimSpace(path) == "" {
		return "", false, fmt.Errorf("path is empty")
	}
	exists, err := pathExists(path)
	if err != nil {
		return "", false, err
	}
	if !exists {
		return path, false, nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; i <= maxNumberedSuffix; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		exists, err := pathExists(candidate)
		if err != nil {
			return "", false, err
		}
		if !exists {
			return candidate, true, nil
		}
	}

	suffix := uuid.NewString()
	if u, err := uuid.NewV7(); err == nil {
		suffix = u.String()
	}
	return fmt.Sprintf("%s_%s%s", base, suffix, ext), true, nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
