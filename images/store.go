// Package images stores article images in S3. Uploads are optional: when no
// bucket is configured the store is nil and the API rejects image uploads,
// while article text flows through the pipeline unaffected.
package images

import (
	"context"
	"fmt"
	"io"

	"newswire/common"
)

// Store writes article images under a bucket/prefix.
type Store struct {
	s3     *common.S3
	bucket string
	prefix string
}

// NewStore creates an image store over an S3 wrapper.
func NewStore(s3 *common.S3, bucket, prefix string) *Store {
	return &Store{s3: s3, bucket: bucket, prefix: prefix}
}

// Key returns the object key for an article's image.
func (s *Store) Key(articleID string) string {
	return s.prefix + "article_images/" + articleID
}

// Put uploads the image for an article and returns the stored key.
func (s *Store) Put(ctx context.Context, articleID string, body io.Reader, contentType string) (string, error) {
	key := s.Key(articleID)
	if err := s.s3.Put(ctx, s.bucket, key, body, contentType); err != nil {
		return "", fmt.Errorf("uploading image for %s: %w", articleID, err)
	}
	return key, nil
}

// Get fetches an article's image. Caller must Close the body.
func (s *Store) Get(ctx context.Context, articleID string) (io.ReadCloser, error) {
	return s.s3.Get(ctx, s.bucket, s.Key(articleID))
}

// Delete removes an article's image.
func (s *Store) Delete(ctx context.Context, articleID string) error {
	return s.s3.Delete(ctx, s.bucket, s.Key(articleID))
}
