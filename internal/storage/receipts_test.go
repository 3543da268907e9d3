package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taka-daredemo/JICA/internal/apperr"
	"github.com/taka-daredemo/JICA/internal/storage"
)

type fakePutter struct {
	got  *s3.PutObjectInput
	body string
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.got = in

	b, _ := io.ReadAll(in.Body)
	f.body = string(b)

	return &s3.PutObjectOutput{}, f.err
}

func TestReceiptKey(t *testing.T) {
	id := uuid.MustParse("6f1c1a2e-0000-4000-8000-000000000001")
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"Plain", "invoice.pdf", "receipts/2026/03/" + id.String() + "-invoice.pdf"},
		{"Spaces", "my receipt (1).jpg", "receipts/2026/03/" + id.String() + "-my_receipt__1_.jpg"},
		{"PathStripped", "../../etc/passwd", "receipts/2026/03/" + id.String() + "-passwd"},
		{"WindowsPath", `C:\scans\r.png`, "receipts/2026/03/" + id.String() + "-r.png"},
		{"NonASCII", "領収書.pdf", "receipts/2026/03/" + id.String() + "-___.pdf"},
		{"Empty", "", "receipts/2026/03/" + id.String() + "-receipt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.ReceiptKey(now, id, tt.filename))
		})
	}
}

func TestReceipts_Upload(t *testing.T) {
	putter := &fakePutter{}
	r := storage.NewWithClient(putter, "receipts-bucket", "https://pub.example.r2.dev/")

	obj, err := r.Upload(context.Background(), "fuel.pdf", "application/pdf", strings.NewReader("%PDF"), 4)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "receipts/"))
	assert.True(t, strings.HasSuffix(obj.Key, "-fuel.pdf"))
	assert.Equal(t, "https://pub.example.r2.dev/"+obj.Key, obj.URL)

	require.NotNil(t, putter.got)
	assert.Equal(t, "receipts-bucket", aws.ToString(putter.got.Bucket))
	assert.Equal(t, obj.Key, aws.ToString(putter.got.Key))
	assert.Equal(t, "application/pdf", aws.ToString(putter.got.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(putter.got.ContentLength))
	assert.Equal(t, "%PDF", putter.body)
}

func TestReceipts_Upload_DefaultContentType(t *testing.T) {
	putter := &fakePutter{}
	r := storage.NewWithClient(putter, "b", "https://cdn.example")

	_, err := r.Upload(context.Background(), "scan", "", strings.NewReader("x"), 0)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", aws.ToString(putter.got.ContentType))
	assert.Nil(t, putter.got.ContentLength)
}

func TestReceipts_Upload_Errors(t *testing.T) {
	t.Run("ClientError", func(t *testing.T) {
		r := storage.NewWithClient(&fakePutter{err: errors.New("access denied")}, "b", "https://cdn.example")

		_, err := r.Upload(context.Background(), "a.pdf", "", strings.NewReader("x"), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("NotConfigured", func(t *testing.T) {
		var r *storage.Receipts

		_, err := r.Upload(context.Background(), "a.pdf", "", strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, apperr.ErrUnimplemented)
	})
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := storage.New(context.Background(), storage.Config{Bucket: "b"})
	require.Error(t, err)

	r, err := storage.New(context.Background(), storage.Config{
		Bucket:       "b",
		AccessKey:    "key",
		SecretKey:    "secret",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, r)
}
