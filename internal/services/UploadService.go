package services

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"blogd/internal/models"
	"blogd/internal/providers"
	"blogd/internal/schema"
	"blogd/internal/storage"
	"blogd/internal/structures"
)

const UploadsDir = "uploads"

type UploadServiceInterface interface {
	SaveImage(name, contentType string, data []byte) (models.Upload, error)
}

type UploadService struct {
	dir    string
	logger providers.Logger
}

// SaveImage checks the image and writes it under the public uploads
// directory as <base>-<uuid><ext>. The returned URL is what posts store as
// their featured image.
func (us *UploadService) SaveImage(name, contentType string, data []byte) (models.Upload, error) {
	if errs := schema.CheckUpload(int64(len(data)), contentType, bytes.NewReader(data)); !errs.Empty() {
		return models.Upload{}, errs
	}

	ext := strings.ToLower(filepath.Ext(name))
	base := schema.FileName(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	if base == "" || base == "_" {
		base = "image"
	}
	fileName := fmt.Sprintf("%s-%s%s", base, uuid.NewString(), schema.FileName(ext))

	if err := os.MkdirAll(us.dir, 0o755); err != nil {
		return models.Upload{}, fmt.Errorf("create uploads dir: %w", err)
	}
	if err := storage.WriteFileAtomic(filepath.Join(us.dir, fileName), data, 0o644); err != nil {
		return models.Upload{}, fmt.Errorf("write upload: %w", err)
	}
	us.logger.Infof(providers.TypeApp, "image uploaded: %s (%d bytes)", fileName, len(data))

	return models.Upload{
		URL:      path.Join("/", UploadsDir, fileName),
		FileName: fileName,
		Size:     int64(len(data)),
		Type:     contentType,
	}, nil
}

func NewUploadService(conf *structures.Config, logger providers.Logger) UploadServiceInterface {
	return &UploadService{
		dir:    filepath.Join(conf.Storage.PublicDir, UploadsDir),
		logger: logger,
	}
}
