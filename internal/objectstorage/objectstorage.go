// Package objectstorage implements the object-storage façade (§4.4):
// length-bounded streaming uploads of fuzzer binaries/seeds/config, chunked
// downloads, and server-side corpus copy, against an S3-compatible bucket.
package objectstorage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// UploadLimitError is raised when cumulative bytes read from the upload
// stream exceed the configured cap; the upload is aborted, not truncated.
type UploadLimitError struct {
	Limit int64
}

func (e *UploadLimitError) Error() string {
	return fmt.Sprintf("objectstorage: upload exceeds limit of %d bytes", e.Limit)
}

// ErrObjectNotFound is returned by every download/copy operation when the
// requested key does not exist in the bucket.
var ErrObjectNotFound = errors.New("objectstorage: object not found")

// Store is the façade handlers and services use for every uploaded
// artifact. It never knows about revisions or fuzzers as domain objects,
// only their ids, which it uses to build deterministic object keys.
type Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string

	logger     mlog.Logger
	hashVerify bool
}

// New builds a Store over an already-connected S3 client. When hashVerify is
// true, every streamed upload is additionally SHA-256 checksummed as it
// passes through and the digest logged once the object is stored; the
// checksum is for integrity logging only and never blocks or retries the
// upload.
func New(client *s3.Client, bucket string, logger mlog.Logger, hashVerify bool) *Store {
	return &Store{
		client:     client,
		uploader:   manager.NewUploader(client),
		bucket:     bucket,
		logger:     logger,
		hashVerify: hashVerify,
	}
}

func keyBinaries(fuzzerID, revisionID string) string {
	return fmt.Sprintf("fuzzers/%s/revisions/%s/binaries.tar.gz", fuzzerID, revisionID)
}

func keySeeds(fuzzerID, revisionID string) string {
	return fmt.Sprintf("fuzzers/%s/revisions/%s/seeds.tar.gz", fuzzerID, revisionID)
}

func keyConfig(fuzzerID, revisionID string) string {
	return fmt.Sprintf("fuzzers/%s/revisions/%s/config.json", fuzzerID, revisionID)
}

func keyCorpusPrefix(fuzzerID, activeRevisionID string) string {
	return fmt.Sprintf("fuzzers/%s/corpus/%s/", fuzzerID, activeRevisionID)
}

// limitedReader wraps r so that reading past limit bytes fails with
// *UploadLimitError instead of silently truncating — the upload path must
// abort and mark the slot failed (§4.3), never store a partial archive as
// if it were complete.
type limitedReader struct {
	r     io.Reader
	limit int64
	read  int64
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read > lr.limit {
		return 0, &UploadLimitError{Limit: lr.limit}
	}

	n, err := lr.r.Read(p)
	lr.read += int64(n)

	if lr.read > lr.limit {
		return n, &UploadLimitError{Limit: lr.limit}
	}

	return n, err
}

// upload streams r to key, capped at limit bytes (inclusive: exactly limit
// bytes succeeds, limit+1 fails per §8 boundary behaviour).
func (s *Store) upload(ctx context.Context, key string, r io.Reader, limit int64) error {
	lr := &limitedReader{r: r, limit: limit}

	var body io.Reader = lr

	var h interface {
		io.Writer
		Sum(b []byte) []byte
	}

	if s.hashVerify {
		sum := sha256.New()
		h = sum
		body = io.TeeReader(lr, sum)
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})

	var limitErr *UploadLimitError
	if errors.As(err, &limitErr) {
		return limitErr
	}

	if err != nil {
		return fmt.Errorf("objectstorage: upload %s: %w", key, err)
	}

	if s.hashVerify && h != nil {
		s.logger.Infof("objectstorage: stored %s sha256=%s", key, hex.EncodeToString(h.Sum(nil)))
	}

	return nil
}

// UploadBinaries streams the binaries archive for a revision, capped at limit bytes.
func (s *Store) UploadBinaries(ctx context.Context, fuzzerID, revisionID string, r io.Reader, limit int64) error {
	return s.upload(ctx, keyBinaries(fuzzerID, revisionID), r, limit)
}

// UploadSeeds streams the seed corpus archive for a revision, capped at limit bytes.
func (s *Store) UploadSeeds(ctx context.Context, fuzzerID, revisionID string, r io.Reader, limit int64) error {
	return s.upload(ctx, keySeeds(fuzzerID, revisionID), r, limit)
}

// UploadConfig stores the fixed-size JSON config blob for a revision.
func (s *Store) UploadConfig(ctx context.Context, fuzzerID, revisionID string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(keyConfig(fuzzerID, revisionID)),
		Body:   newReadSeeker(data),
	})
	if err != nil {
		return fmt.Errorf("objectstorage: upload config: %w", err)
	}

	return nil
}

func (s *Store) download(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrObjectNotFound
		}

		return nil, fmt.Errorf("objectstorage: get %s: %w", key, err)
	}

	return out.Body, nil
}

// DownloadBinaries returns a streaming reader over the binaries archive.
func (s *Store) DownloadBinaries(ctx context.Context, fuzzerID, revisionID string) (io.ReadCloser, error) {
	return s.download(ctx, keyBinaries(fuzzerID, revisionID))
}

// DownloadSeeds returns a streaming reader over the seed corpus archive.
func (s *Store) DownloadSeeds(ctx context.Context, fuzzerID, revisionID string) (io.ReadCloser, error) {
	return s.download(ctx, keySeeds(fuzzerID, revisionID))
}

// DownloadConfig returns a streaming reader over the JSON config blob.
func (s *Store) DownloadConfig(ctx context.Context, fuzzerID, revisionID string) (io.ReadCloser, error) {
	return s.download(ctx, keyConfig(fuzzerID, revisionID))
}

// DownloadCorpus returns a streaming reader over the corpus archive of a
// fuzzer's active revision. Corpus objects are not a single key; the
// gateway addresses them by the same prefix CopyCorpusFiles writes under.
// This returns the first object found under that prefix, matching the
// source's single-archive corpus model.
func (s *Store) DownloadCorpus(ctx context.Context, fuzzerID, activeRevisionID string) (io.ReadCloser, error) {
	prefix := keyCorpusPrefix(fuzzerID, activeRevisionID)

	list, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("objectstorage: list %s: %w", prefix, err)
	}

	if len(list.Contents) == 0 {
		return nil, ErrObjectNotFound
	}

	return s.download(ctx, *list.Contents[0].Key)
}

// CopyCorpusFiles server-side copies every object under the source
// revision's corpus prefix to the destination revision's corpus prefix.
// Returns ErrObjectNotFound if the source has no corpus objects (§4.3
// E_NO_CORPUS_FOUND).
func (s *Store) CopyCorpusFiles(ctx context.Context, fuzzerID, srcRevisionID, dstRevisionID string) error {
	srcPrefix := keyCorpusPrefix(fuzzerID, srcRevisionID)
	dstPrefix := keyCorpusPrefix(fuzzerID, dstRevisionID)

	list, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(srcPrefix),
	})
	if err != nil {
		return fmt.Errorf("objectstorage: list %s: %w", srcPrefix, err)
	}

	if len(list.Contents) == 0 {
		return ErrObjectNotFound
	}

	for _, obj := range list.Contents {
		srcKey := *obj.Key
		dstKey := dstPrefix + srcKey[len(srcPrefix):]

		_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
			Bucket:     aws.String(s.bucket),
			Key:        aws.String(dstKey),
			CopySource: aws.String(s.bucket + "/" + srcKey),
		})
		if err != nil {
			return fmt.Errorf("objectstorage: copy %s -> %s: %w", srcKey, dstKey, err)
		}
	}

	return nil
}

// readSeeker adapts a byte slice to io.ReadSeeker for PutObjectInput.Body,
// which the AWS SDK requires for a non-streaming, fixed-size body.
type readSeeker struct {
	data []byte
	pos  int64
}

func newReadSeeker(data []byte) *readSeeker { return &readSeeker{data: data} }

func (rs *readSeeker) Read(p []byte) (int, error) {
	if rs.pos >= int64(len(rs.data)) {
		return 0, io.EOF
	}

	n := copy(p, rs.data[rs.pos:])
	rs.pos += int64(n)

	return n, nil
}

func (rs *readSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int64

	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = rs.pos + offset
	case io.SeekEnd:
		newPos = int64(len(rs.data)) + offset
	}

	rs.pos = newPos

	return rs.pos, nil
}
