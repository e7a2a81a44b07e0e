// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchworks/apparel-backend/internal/config"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newLocalStorage(t *testing.T) *StorageService {
	t.Helper()
	svc, err := NewStorageService(config.AWSConfig{S3Bucket: "refs", PresignTTLMin: 15})
	require.NoError(t, err)
	svc.clock = func() time.Time { return time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC) }
	return svc
}

func upload(svc *StorageService, name string, content []byte) (*UploadResult, error) {
	header := &multipart.FileHeader{Filename: name, Size: int64(len(content))}
	return svc.UploadReference(memFile{bytes.NewReader(content)}, header)
}

func TestUploadReferenceWithoutS3(t *testing.T) {
	svc := newLocalStorage(t)

	result, err := upload(svc, "Front.PNG", pngHeader)
	require.NoError(t, err)

	assert.Regexp(t, `^references/20260602_[0-9a-f-]{36}\.png$`, result.Ref)
	assert.Equal(t, "image/png", result.MimeType)
	assert.Equal(t, int64(len(pngHeader)), result.Size)
}

func TestUploadReferenceRejectsBadFiles(t *testing.T) {
	svc := newLocalStorage(t)

	_, err := upload(svc, "script.exe", pngHeader)
	assert.ErrorContains(t, err, "not allowed")

	_, err = upload(svc, "fake.png", []byte("just some text"))
	assert.ErrorContains(t, err, "invalid reference file")

	header := &multipart.FileHeader{Filename: "huge.png", Size: maxReferenceSize + 1}
	_, err = svc.UploadReference(memFile{bytes.NewReader(pngHeader)}, header)
	assert.ErrorContains(t, err, "exceeds maximum")
}

func TestPresignWithoutS3ReturnsRef(t *testing.T) {
	svc := newLocalStorage(t)

	url, err := svc.Presign("references/20260602_abc.png")
	require.NoError(t, err)
	assert.Equal(t, "references/20260602_abc.png", url)
}
