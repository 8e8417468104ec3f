package fileutil

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// FileExists reports whether path is a regular file (not a directory) on fs.
func FileExists(fs afero.Fs, path string) (bool, error) {
	fileinfo, err := fs.Stat(path)
	if err == nil {
		return !fileinfo.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, errors.WithStack(err)
}
