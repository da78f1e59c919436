package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"

	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
)

// ErrNoBackup is returned when an import finds nothing to read
var ErrNoBackup = errors.New("no backup found")

// ObjectClient is the slice of *s3.Client the gateway calls
type ObjectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var _ ObjectClient = (*s3.Client)(nil)

// S3Gateway keeps backups as objects in S3.
// Key layout: <prefix>/backups/<ulid>.json, so the newest backup sorts last.
type S3Gateway struct {
	client     ObjectClient
	bucketName string
	prefix     string
}

var _ output.BackupGateway = (*S3Gateway)(nil)

// S3Config holds S3 backup gateway configuration
type S3Config struct {
	BucketName string // S3 bucket name
	Prefix     string // Optional key prefix
	Region     string // AWS region (optional, uses default if empty)
}

// NewS3Gateway creates a gateway using the default AWS credential chain
func NewS3Gateway(ctx context.Context, cfg S3Config) (*S3Gateway, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("s3 backup requires a bucket (s3_bucket)")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	}
	return NewS3GatewayWithClient(s3.NewFromConfig(awsCfg), cfg.BucketName, cfg.Prefix), nil
}

// NewS3GatewayWithClient creates a gateway with a custom S3 client.
// This is primarily used for testing with mock S3 clients
func NewS3GatewayWithClient(client ObjectClient, bucketName, prefix string) *S3Gateway {
	return &S3Gateway{
		client:     client,
		bucketName: bucketName,
		prefix:     strings.Trim(prefix, "/"),
	}
}

// Name identifies the medium
func (g *S3Gateway) Name() string {
	return "s3"
}

// Export uploads data as a new backup object and returns its s3:// URL
func (g *S3Gateway) Export(ctx context.Context, data []byte) (string, error) {
	key := g.buildKey("backups", ulid.Make().String()+".json")
	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", g.bucketName, key), nil
}

// Import downloads a backup. ref may be an s3:// URL, a full key or a bare
// object name; empty selects the newest backup.
func (g *S3Gateway) Import(ctx context.Context, ref string) ([]byte, error) {
	key, err := g.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	obj, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("download %s from S3: %w", key, err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return data, nil
}

func (g *S3Gateway) resolve(ctx context.Context, ref string) (string, error) {
	switch {
	case ref == "":
		return g.latestKey(ctx)
	case strings.HasPrefix(ref, "s3://"):
		rest := strings.TrimPrefix(ref, "s3://")
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket != g.bucketName {
			return "", fmt.Errorf("backup %s is not in bucket %s", ref, g.bucketName)
		}
		return key, nil
	case strings.Contains(ref, "/"):
		return ref, nil
	default:
		return g.buildKey("backups", ref), nil
	}
}

// latestKey lists the backup prefix and returns the greatest key
func (g *S3Gateway) latestKey(ctx context.Context) (string, error) {
	prefix := g.buildKey("backups") + "/"
	pager := s3.NewListObjectsV2Paginator(g.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(g.bucketName),
		Prefix: aws.String(prefix),
	})

	latest := ""
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("list S3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, ".json") && key > latest {
				latest = key
			}
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%w under s3://%s/%s", ErrNoBackup, g.bucketName, prefix)
	}
	return latest, nil
}

// buildKey builds an S3 key with the configured prefix
func (g *S3Gateway) buildKey(parts ...string) string {
	if g.prefix != "" {
		parts = append([]string{g.prefix}, parts...)
	}
	return path.Join(parts...)
}
