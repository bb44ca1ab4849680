package uploads

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"weddingsite/internal/providers"
	"weddingsite/internal/structures"

	"github.com/gabriel-vasile/mimetype"
)

type Policy int

const (
	// GuestPolicy stores files under throwaway temp names in the guest root.
	GuestPolicy Policy = iota
	// AdminPolicy keeps the sanitized original name in the admin root.
	AdminPolicy
)

func (p Policy) String() string {
	if p == AdminPolicy {
		return "admin"
	}
	return "guest"
}

const (
	UploadsPrefix = "/uploads/"
	GuestPrefix   = "/guest_uploads/"
	AdminPrefix   = "/admin_uploads/"
)

var (
	ErrNoFiles      = errors.New("no files uploaded")
	ErrTooManyFiles = errors.New("too many files")
	ErrTooLarge     = errors.New("file too large")
	ErrNotImage     = errors.New("only image files are allowed")
	ErrOutsideRoot  = errors.New("path outside upload roots")
)

var (
	unsafeChars = regexp.MustCompile(`[<>:"|?*/\\\x00-\x1F]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// StoredFile is one accepted upload after it was written to disk.
type StoredFile struct {
	OriginalName string
	FileName     string
	Path         string
	URL          string
	Size         int64
}

type ManagerInterface interface {
	Save(policy Policy, files []*multipart.FileHeader, limit int) ([]StoredFile, error)
	Discard(files []StoredFile)
	RemoveByURL(url string) error
	Exists(url string) bool
}

type Manager struct {
	roots       map[string]string
	guestDir    string
	adminDir    string
	maxFileSize int64
	maxFiles    int
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	now         func() time.Time
}

func NewManager(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Manager, error) {
	u := conf.Uploads
	for _, dir := range []string{u.UploadsDir, u.GuestDir, u.AdminDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("unable to create upload dir %s: %w", dir, err)
		}
	}
	return &Manager{
		roots: map[string]string{
			UploadsPrefix: u.UploadsDir,
			GuestPrefix:   u.GuestDir,
			AdminPrefix:   u.AdminDir,
		},
		guestDir:    u.GuestDir,
		adminDir:    u.AdminDir,
		maxFileSize: u.MaxFileSize,
		maxFiles:    u.MaxFiles,
		logger:      logger,
		metrics:     metrics,
		now:         time.Now,
	}, nil
}

// Save validates the whole batch, then writes it. limit caps the number of
// files below the configured maximum (1 for single-image endpoints); zero
// means the configured maximum. On any write failure the files already
// written for this batch are removed.
func (m *Manager) Save(policy Policy, files []*multipart.FileHeader, limit int) ([]StoredFile, error) {
	if limit <= 0 || limit > m.maxFiles {
		limit = m.maxFiles
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > limit {
		return nil, fmt.Errorf("%w: at most %d allowed", ErrTooManyFiles, limit)
	}
	for _, fh := range files {
		if err := m.validate(fh); err != nil {
			return nil, err
		}
	}

	stored := make([]StoredFile, 0, len(files))
	for _, fh := range files {
		sf, err := m.write(policy, fh)
		if err != nil {
			m.Discard(stored)
			return nil, err
		}
		stored = append(stored, sf)
	}

	m.metrics.AddUploads(policy.String(), len(stored))
	return stored, nil
}

func (m *Manager) validate(fh *multipart.FileHeader) error {
	if fh.Size > m.maxFileSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, fh.Filename, m.maxFileSize)
	}

	contentType := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	if contentType == "" || contentType == "application/octet-stream" {
		sniffed, err := sniff(fh)
		if err != nil {
			return err
		}
		contentType = sniffed
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	return nil
}

func sniff(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	return mt.String(), nil
}

func (m *Manager) write(policy Policy, fh *multipart.FileHeader) (StoredFile, error) {
	src, err := fh.Open()
	if err != nil {
		return StoredFile{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, dir, prefix, err := m.create(policy, fh.Filename)
	if err != nil {
		return StoredFile{}, err
	}
	name := filepath.Base(dst.Name())

	n, err := io.Copy(dst, io.LimitReader(src, m.maxFileSize+1))
	if err == nil && n > m.maxFileSize {
		err = fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, fh.Filename, m.maxFileSize)
	}
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst.Name())
		return StoredFile{}, err
	}

	return StoredFile{
		OriginalName: fh.Filename,
		FileName:     name,
		Path:         filepath.Join(dir, name),
		URL:          prefix + name,
		Size:         n,
	}, nil
}

// create opens the destination with O_EXCL so two uploads never share a file.
func (m *Manager) create(policy Policy, original string) (*os.File, string, string, error) {
	ext := filepath.Ext(original)

	if policy == GuestPolicy {
		name := GuestFileName(m.now(), rand.IntN(1_000_000_000), ext)
		f, err := os.OpenFile(filepath.Join(m.guestDir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		return f, m.guestDir, GuestPrefix, err
	}

	base := SanitizeBaseName(original)
	f, err := os.OpenFile(filepath.Join(m.adminDir, base+ext), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, os.ErrExist) {
		name := base + "_" + strconv.FormatInt(m.now().UnixMilli(), 10) + ext
		f, err = os.OpenFile(filepath.Join(m.adminDir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	}
	return f, m.adminDir, AdminPrefix, err
}

// GuestFileName builds temp_<millis>-<9 digits><ext>.
func GuestFileName(now time.Time, random int, ext string) string {
	return fmt.Sprintf("temp_%d-%09d%s", now.UnixMilli(), random, ext)
}

// SanitizeBaseName strips the extension and replaces characters that are
// unsafe on common filesystems, keeping as much of the original as possible.
func SanitizeBaseName(original string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = whitespace.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == ".." {
		return "upload"
	}
	return base
}

func (m *Manager) Discard(files []StoredFile) {
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			m.logger.Warnf(providers.TypeApp, "Unable to remove upload %s: %s", f.Path, err)
		}
	}
}

// Resolve maps a public upload URL to its path on disk.
func (m *Manager) Resolve(url string) (string, error) {
	for prefix, root := range m.roots {
		if !strings.HasPrefix(url, prefix) {
			continue
		}
		rel := strings.TrimPrefix(url, prefix)
		if rel == "" || !filepath.IsLocal(rel) {
			return "", ErrOutsideRoot
		}
		return filepath.Join(root, rel), nil
	}
	return "", ErrOutsideRoot
}

// RemoveByURL deletes the file behind url. A missing file is not an error,
// neither is a url that points outside the upload roots (external images).
func (m *Manager) RemoveByURL(url string) error {
	path, err := m.Resolve(url)
	if err != nil {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (m *Manager) Exists(url string) bool {
	path, err := m.Resolve(url)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
