// Package mobjectstorage wraps the AWS SDK v2 S3 client in a small
// connection helper, mirroring the shape of the teacher's own mmongo/
// mrabbitmq wrappers but backing the object-storage façade instead.
package mobjectstorage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// S3Connection is a singleton hub for the gateway's object-storage backend.
// EndpointURL may be empty to use AWS's default resolution, or set to point
// at an on-prem S3-compatible deployment.
type S3Connection struct {
	Region      string
	AccessKey   string
	SecretKey   string
	EndpointURL string
	Bucket      string
	Logger      mlog.Logger

	client    *s3.Client
	connected bool
}

// Connect builds the S3 client. There is no network round trip here; the
// client is lazy, so this only validates static configuration.
func (sc *S3Connection) Connect(ctx context.Context) error {
	sc.Logger.Info("connecting to object storage...")

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(sc.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(sc.AccessKey, sc.SecretKey, "")),
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("mobjectstorage: load config: %w", err)
	}

	sc.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if sc.EndpointURL != "" {
			o.BaseEndpoint = aws.String(sc.EndpointURL)
			o.UsePathStyle = true
		}
	})
	sc.connected = true

	sc.Logger.Info("connected to object storage")

	return nil
}

// GetClient returns the S3 client, connecting lazily on first use.
func (sc *S3Connection) GetClient(ctx context.Context) (*s3.Client, error) {
	if sc.client == nil {
		if err := sc.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return sc.client, nil
}

// HealthCheck verifies the configured bucket is reachable.
func (sc *S3Connection) HealthCheck(ctx context.Context) bool {
	if sc.client == nil {
		return false
	}

	_, err := sc.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(sc.Bucket)})

	return err == nil
}
