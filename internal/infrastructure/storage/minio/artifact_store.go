// Package minio stores classifier artifacts as objects in a MinIO bucket.
package minio

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/SolBenven/proyecto-final/internal/config"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// ArtifactStore implements deptclass.ArtifactStore on a MinIO bucket.
type ArtifactStore struct {
	client *minio.Client
	bucket string
	log    logging.Logger
}

// NewArtifactStore connects to MinIO and ensures the artifact bucket exists.
func NewArtifactStore(ctx context.Context, cfg config.MinIOConfig, log logging.Logger) (*ArtifactStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create minio client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to check artifact bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create artifact bucket")
		}
		log.Info("artifact bucket created", logging.String("bucket", cfg.Bucket))
	}

	return &ArtifactStore{client: client, bucket: cfg.Bucket, log: log}, nil
}

// Put writes an artifact, replacing any previous object at the key.
func (s *ArtifactStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to store artifact").
			WithDetail("object " + key)
	}
	return nil
}

// Get reads an artifact in full.
func (s *ArtifactStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to open artifact").
			WithDetail("object " + key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, errors.New(errors.ErrCodeNotFound, "artifact not found").
				WithDetail("object " + key)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to read artifact").
			WithDetail("object " + key)
	}
	return data, nil
}

// Exists reports whether an artifact is present at the key.
func (s *ArtifactStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat artifact").
			WithDetail("object " + key)
	}
	return true, nil
}
