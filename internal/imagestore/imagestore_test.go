package imagestore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OMEGA178/faktury/internal/logging"
)

func testStore() *Store {
	return New(Config{
		Region: "eu-central-1", Endpoint: "http://localhost:9000",
		Bucket: "faktury", AccessKey: "minio", SecretKey: "minio123",
	}, logging.Discard())
}

func TestNewStorageKey(t *testing.T) {
	a := NewStorageKey()
	b := NewStorageKey()

	assert.True(t, strings.HasPrefix(a, "images/"))
	assert.NotEqual(t, a, b)
}

func TestEnabled(t *testing.T) {
	assert.True(t, testStore().Enabled())
	assert.False(t, New(Config{}, logging.Discard()).Enabled())
}

func TestPresignedPutURL(t *testing.T) {
	orig := presignPutObject
	t.Cleanup(func() { presignPutObject = orig })

	var gotBucket, gotKey string
	presignPutObject = func(_ *s3.PresignClient, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket = *in.Bucket
		gotKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "https://minio/put"}, nil
	}

	key, url, err := testStore().PresignedPutURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://minio/put", url)
	assert.Equal(t, key, gotKey)
	assert.Equal(t, "faktury", gotBucket)
}

func TestPresignedPutURL_Error(t *testing.T) {
	orig := presignPutObject
	t.Cleanup(func() { presignPutObject = orig })

	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign failed")
	}

	_, _, err := testStore().PresignedPutURL(context.Background())
	assert.Error(t, err)
}

func TestPresignedGetURL(t *testing.T) {
	orig := presignGetObject
	t.Cleanup(func() { presignGetObject = orig })

	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "images/2024/3/1/abc", *in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://minio/get"}, nil
	}

	url, err := testStore().PresignedGetURL(context.Background(), "images/2024/3/1/abc")
	require.NoError(t, err)
	assert.Equal(t, "https://minio/get", url)
}

func TestUpload(t *testing.T) {
	image := []byte("fake jpeg bytes")

	t.Run("success", func(t *testing.T) {
		var gotMethod, gotCT string
		var gotBody []byte
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		require.NoError(t, Upload(ts.URL+"/bucket/key?X-Amz-Signature=abc", image))
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "application/octet-stream", gotCT)
		assert.True(t, bytes.Equal(gotBody, image))
	})

	t.Run("rejected", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()

		err := Upload(ts.URL, image)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		assert.Error(t, Upload(ts.URL, image))
	})
}
