// backend-go/cmd/seed/downloader.go
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

type datasetDownloader struct {
	client  storage.ObjectStorage
	destDir string
}

func newS3ClientFromFlags(c *cli.Context) (storage.ObjectStorage, error) {
	return storage.NewS3Client(storage.S3Config{
		Endpoint:  c.String("s3-endpoint"),
		AccessKey: c.String("s3-access-key"),
		SecretKey: c.String("s3-secret-key"),
		Bucket:    c.String("s3-bucket"),
		Region:    c.String("s3-region"),
		UseSSL:    c.Bool("s3-use-ssl"),
	})
}

// isDatasetFile reports whether a file name looks like part of a dataset.
func isDatasetFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".csv") ||
		strings.HasSuffix(lower, ".json") ||
		strings.HasSuffix(lower, ".xlsx")
}

func newDatasetDownloader(c *cli.Context) (*datasetDownloader, error) {
	client, err := newS3ClientFromFlags(c)
	if err != nil {
		return nil, err
	}

	destDir := c.String("dataset-dir")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure dataset dir %s: %w", destDir, err)
	}

	return &datasetDownloader{client: client, destDir: destDir}, nil
}

// download pulls every dataset object under the prefix into the dataset dir.
func (d *datasetDownloader) download(ctx context.Context, prefix string) ([]string, error) {
	objects, err := d.client.ListObjects(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list objects for prefix %s: %w", prefix, err)
	}

	var keys []string
	for _, obj := range objects {
		if isDatasetFile(obj.Key) {
			keys = append(keys, obj.Key)
		}
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("no dataset files found for prefix %s", prefix)
	}

	localPaths := make([]string, 0, len(keys))
	for _, key := range keys {
		localPath := filepath.Join(d.destDir, objectRelativePath(prefix, key))
		if err := d.client.DownloadObject(ctx, key, localPath); err != nil {
			return nil, err
		}
		localPaths = append(localPaths, localPath)
	}

	sort.Strings(localPaths)
	return localPaths, nil
}

func objectRelativePath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	prefixTrimmed := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	rel := strings.TrimPrefix(key, prefixTrimmed+"/")
	if rel == "" {
		return filepath.Base(key)
	}
	return rel
}
