// Package services сохраняет фотографии объявлений на диск: по ссылке
// и из multipart-формы. Файлы получают сгенерированные имена.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/booking-service/internal/config"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
)

// Ошибки загрузки.
var (
	ErrLinkRequired = errors.New("the link is required")
	ErrInvalidLink  = errors.New("the link must be an absolute http(s) URL")
	ErrFetchFailed  = errors.New("failed to download image")
	ErrTooManyFiles = errors.New("too many files")
	ErrNoFiles      = errors.New("no files uploaded")
)

// PublicPrefix путь, под которым раздаются загруженные файлы.
const PublicPrefix = "uploads/"

const (
	defaultExt      = ".jpg"
	maxDownloadSize = 20 << 20
)

// HTTPDoer выполняет исходящие HTTP-запросы.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// UploadService пишет файлы в каталог dir.
type UploadService struct {
	dir      string
	client   HTTPDoer
	maxFiles int
	log      *slog.Logger
}

// NewUploadService создаёт каталог загрузок, если его нет.
func NewUploadService(log *slog.Logger, cfg config.Uploads, client HTTPDoer) (*UploadService, error) {
	const op = "services.NewUploadService"
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.FetchTimeout}
	}
	return &UploadService{
		dir:      cfg.Dir,
		client:   client,
		maxFiles: cfg.MaxFiles,
		log:      log,
	}, nil
}

// Dir каталог, в который сохраняются файлы.
func (s *UploadService) Dir() string {
	return s.dir
}

// SaveFromLink скачивает изображение по ссылке и возвращает путь вида uploads/photos<id>.jpg.
func (s *UploadService) SaveFromLink(ctx context.Context, link string) (string, error) {
	const op = "services.UploadService.SaveFromLink"

	link = strings.TrimSpace(link)
	if link == "" {
		return "", ErrLinkRequired
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidLink)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidLink)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrFetchFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%s: %w: status %d", op, ErrFetchFailed, resp.StatusCode)
	}

	name := "photos" + uuid.NewString() + defaultExt
	if err := s.write(name, io.LimitReader(resp.Body, maxDownloadSize+1), maxDownloadSize); err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrFetchFailed, err)
	}
	s.log.Info("image downloaded", slog.String("op", op), slog.String("file", name))
	return PublicPrefix + name, nil
}

// SaveFiles сохраняет файлы формы и возвращает их новые имена в исходном порядке.
// Расширение берётся из исходного имени в нижнем регистре.
func (s *UploadService) SaveFiles(files []*multipart.FileHeader) ([]string, error) {
	const op = "services.UploadService.SaveFiles"

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > s.maxFiles {
		return nil, fmt.Errorf("%s: %w: %d > %d", op, ErrTooManyFiles, len(files), s.maxFiles)
	}

	names := make([]string, 0, len(files))
	for _, fh := range files {
		name := uuid.NewString() + normalizeExt(fh.Filename)
		if err := s.copyPart(fh, name); err != nil {
			s.cleanup(names)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *UploadService) copyPart(fh *multipart.FileHeader, name string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()
	return s.write(name, src, -1)
}

// write создаёт файл name и копирует в него r. При limit >= 0 файл больше limit удаляется.
func (s *UploadService) write(name string, r io.Reader, limit int64) error {
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && limit >= 0 && n > limit {
		err = fmt.Errorf("file exceeds %d bytes", limit)
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func (s *UploadService) cleanup(names []string) {
	for _, name := range names {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			s.log.Warn("failed to remove partial upload", slog.String("file", name), sl.Err(err))
		}
	}
}

func normalizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 10 {
		return defaultExt
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return defaultExt
		}
	}
	return ext
}
