package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archive uploads run reports to object storage.
type Archive struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewArchive creates a report archive backed by client.
func NewArchive(client storage.Client, bucket, region string, logger *zap.Logger) *Archive {
	return &Archive{client: client, bucket: bucket, region: region, logger: logger}
}

// ObjectName returns reports/{date}/{runID}.json.
func ObjectName(r *Result) string {
	return fmt.Sprintf("reports/%s/%s.json", r.StartedAt.UTC().Format("2006-01-02"), r.RunID)
}

// Save writes the result as JSON and returns the object name.
func (a *Archive) Save(ctx context.Context, r *Result) (string, error) {
	if err := storage.EnsureBucket(ctx, a.client, a.bucket, a.region); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	name := ObjectName(r)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", name, err)
	}

	a.logger.Debug("Report archived", zap.String("bucket", a.bucket), zap.String("object", name))
	return name, nil
}
