// backend-go/cmd/seed/uploader.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sopcenter/backend-go/internal/storage"
)

type datasetUploader struct {
	client storage.ObjectStorage
	srcDir string
}

func newDatasetUploader(c *cli.Context) (*datasetUploader, error) {
	client, err := newS3ClientFromFlags(c)
	if err != nil {
		return nil, err
	}

	srcDir := c.String("dataset-dir")
	info, err := os.Stat(srcDir)
	if err != nil {
		return nil, fmt.Errorf("dataset dir %s: %w", srcDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", srcDir)
	}

	return &datasetUploader{client: client, srcDir: srcDir}, nil
}

// upload pushes every CSV/JSON/XLSX file in the dataset dir to the bucket
// under the prefix. The inverse of download; scratch files like .backup
// copies stay local.
func (u *datasetUploader) upload(ctx context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(u.srcDir)
	if err != nil {
		return nil, fmt.Errorf("reading dataset dir %s: %w", u.srcDir, err)
	}

	var uploaded []string
	for _, entry := range entries {
		if entry.IsDir() || !isDatasetFile(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(u.srcDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		key := objectKey(prefix, entry.Name())
		if err := u.client.UploadObject(ctx, key, data); err != nil {
			return nil, err
		}
		uploaded = append(uploaded, key)
	}

	if len(uploaded) == 0 {
		return nil, fmt.Errorf("no dataset files found in %s", u.srcDir)
	}

	sort.Strings(uploaded)
	return uploaded, nil
}

func objectKey(prefix, name string) string {
	prefixTrimmed := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	if prefixTrimmed == "" {
		return name
	}
	return prefixTrimmed + "/" + name
}
