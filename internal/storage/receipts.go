// Package storage uploads payment receipts to S3-compatible object storage
// (AWS S3, Cloudflare R2, MinIO).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

var ErrNotConfigured = apperr.Unimplemented("receipt storage is not configured")

type Config struct {
	Bucket        string
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
}

// Configured reports whether enough settings are present to build a client.
func (c Config) Configured() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// ObjectPutter is the subset of *s3.Client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Object struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Receipts struct {
	client  ObjectPutter
	bucket  string
	baseURL string
	now     func() time.Time
	newID   func() uuid.UUID
}

func New(ctx context.Context, cfg Config) (*Receipts, error) {
	if !cfg.Configured() {
		return nil, errors.New("storage bucket and credentials are required")
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return NewWithClient(client, cfg.Bucket, baseURL), nil
}

func NewWithClient(client ObjectPutter, bucket, baseURL string) *Receipts {
	return &Receipts{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		newID:   uuid.New,
	}
}

// Upload stores a receipt under receipts/YYYY/MM/<uuid>-<name> and returns
// its public URL.
func (r *Receipts) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (*Object, error) {
	if r == nil {
		return nil, ErrNotConfigured
	}

	key := ReceiptKey(r.now(), r.newID(), filename)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}

	if _, err := r.client.PutObject(ctx, in); err != nil {
		return nil, fmt.Errorf("uploading receipt: %w", err)
	}

	return &Object{Key: key, URL: r.baseURL + "/" + key}, nil
}

func ReceiptKey(now time.Time, id uuid.UUID, filename string) string {
	return fmt.Sprintf("receipts/%s/%s-%s", now.Format("2006/01"), id, sanitize(filename))
}

// sanitize keeps letters, digits, dots, dashes and underscores of the base
// name. Everything else becomes an underscore.
func sanitize(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "receipt"
	}

	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_') {
			return r
		}

		return '_'
	}, name)
}
