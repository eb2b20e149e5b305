package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	syscallmd "github.com/shdnx/linux-syscallmd"
)

var syscallHeaderURL = "https://raw.githubusercontent.com/torvalds/linux/%s/include/linux/syscalls.h"

// fetchHeaders makes sure syscalls.h for the given kernel tag is in the cache
// and returns the root of the cached headers tree.
func fetchHeaders(client *http.Client, logger hclog.Logger, cfgDir, version string) (string, error) {
	root := filepath.Join(cacheDir(cfgDir), version)
	cacheFilePath := syscallmd.HeaderPath(root)

	if _, err := os.Stat(cacheFilePath); err == nil {
		logger.Debug("using cached syscall header", "path", cacheFilePath)
		return root, nil
	}

	url := fmt.Sprintf(syscallHeaderURL, version)
	logger.Info("fetching syscall header", "url", url)
	if err := fetchAndCache(client, url, cacheFilePath); err != nil {
		return "", err
	}
	return root, nil
}

func fetchAndCache(client *http.Client, url string, cacheFilePath string) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch syscall header from %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to get syscalls.h at %q: %q", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read syscall header from connection to %q: %w", url, err)
	}

	if err := os.MkdirAll(filepath.Dir(cacheFilePath), 0o744); err != nil {
		return fmt.Errorf("failed to create cache directory for %q: %w", cacheFilePath, err)
	}

	// Write the header into our cache so we don't have to do the http dance again.
	if err := os.WriteFile(cacheFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write syscall header to cache at %q: %w", cacheFilePath, err)
	}
	return nil
}
