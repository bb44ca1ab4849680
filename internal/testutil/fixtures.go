package testutil

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"
	"weddingsite/internal/structures"

	"github.com/stretchr/testify/require"
)

// PNG is the smallest header mimetype recognizes as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// NewConfig returns a config whose every directory lives under root.
func NewConfig(root string) *structures.Config {
	return &structures.Config{
		AppName:   "WeddingSite",
		WebServer: structures.Server{Host: "127.0.0.1", Port: 3000},
		Storage: structures.StorageConfig{
			DataDir:   filepath.Join(root, "data"),
			BackupDir: filepath.Join(root, "backups"),
		},
		Uploads: structures.UploadsConfig{
			UploadsDir:  filepath.Join(root, "uploads"),
			GuestDir:    filepath.Join(root, "guest_uploads"),
			AdminDir:    filepath.Join(root, "admin_uploads"),
			MaxFileSize: 1 << 20,
			MaxFiles:    10,
		},
		Site:  structures.SiteConfig{PublicDir: filepath.Join(root, "public")},
		Admin: structures.AdminConfig{User: "admin", Password: "secret"},
		Demo: structures.DemoConfig{
			Enabled:      true,
			Placeholders: []string{"/guest_uploads/demo_001.jpg"},
		},
		Logger: structures.LoggerConfig{Level: "info", Mode: 0644, Dir: filepath.Join(root, "logs")},
	}
}

// UploadFile is one part of a multipart upload.
type UploadFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// MultipartBody encodes files under field plus the plain form values.
func MultipartBody(t *testing.T, field string, files []UploadFile, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+f.Name+`"`)
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

// FileHeaders builds parsed multipart file headers, as a handler would see them.
func FileHeaders(t *testing.T, files ...UploadFile) []*multipart.FileHeader {
	t.Helper()
	body, contentType := MultipartBody(t, "photos", files, nil)
	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["photos"]
}
