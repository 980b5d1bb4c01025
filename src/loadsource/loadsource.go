// Package loadsource resolves a --data location (a local path or an
// s3:// URI) to an io.ReadCloser, so the CSV loader sees the same
// io.Reader-shaped input regardless of where the bytes came from.
package loadsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrInvalidS3URI is wrapped into the error returned when an s3:// value
// doesn't carry both a bucket and a key.
var ErrInvalidS3URI = errors.New("invalid s3:// location")

const s3Prefix = "s3://"

// objectGetter is the seam between Open and the AWS SDK: tests supply a
// fake, production wires an *s3.Client via NewFromConfig.
type objectGetter interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

type s3Client struct{ svc *s3.Client }

func (c *s3Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := c.svc.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Open resolves location to a readable stream. Locations beginning with
// "s3://" are fetched from S3 using the default AWS configuration chain;
// anything else is treated as a local file path.
func Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, s3Prefix) {
		return os.Open(location)
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load AWS configuration: %w", err)
	}
	return openWith(ctx, &s3Client{svc: s3.NewFromConfig(cfg)}, location)
}

func openWith(ctx context.Context, getter objectGetter, location string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URI(location)
	if err != nil {
		return nil, err
	}
	return getter.GetObject(ctx, bucket, key)
}

func parseS3URI(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, s3Prefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidS3URI, location)
	}
	return parts[0], parts[1], nil
}
