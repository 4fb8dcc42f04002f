package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/internal/utils"
)

// FilesURLPrefix is the URL path uploaded files are served under.
const FilesURLPrefix = "/files/"

var allowedImageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".svg":  {},
}

type fileService struct {
	storage store.FileStorage
	ids     *utils.UUIDGenerator
	logger  *logger.Logger
}

func NewFileService(storage store.FileStorage, logger *logger.Logger) FileService {
	return &fileService{storage: storage, ids: utils.NewUUIDGenerator(), logger: logger}
}

// Save stores r under a generated name keeping the image extension of
// filename. Only image extensions are accepted.
func (f *fileService) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: unsupported file type %q", ErrInvalidDataProvided, ext)
	}

	name := f.ids.Generate() + ext
	size, err := f.storage.Save(ctx, name, r)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("filename", filename).Msg("error saving upload")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	logger.FromContext(ctx).Info().Str("file", name).Int64("size", size).Msg("file uploaded")
	return path.Join(FilesURLPrefix, name), nil
}

func (f *fileService) Dir() string {
	return f.storage.Dir()
}
