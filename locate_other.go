//go:build !unix

package syscallmd

import (
	"errors"
	"os"
)

func checkReadable(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return errors.New("is a directory")
	}
	return nil
}
