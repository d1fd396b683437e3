package util

import (
	"bytes"
	"errors"
	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path without ever leaving a partially written file behind.
// Missing parent directories are created.
func WriteFileAtomic(path string, data []byte) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	parentDir := filepath.Dir(path)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}

// ExpandPath resolves a leading "~" to the home directory of the current user
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}
