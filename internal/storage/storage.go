package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Uploader stores product images and resolves the public path written to the
// product document.
type Uploader interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, publicPath string) error
}

const maxImageSize = 5 << 20

// ValidationError marks a rejected upload, as opposed to a backend failure.
// Handlers match it with errors.As to answer 400 instead of 500.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

func validateImage(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", &ValidationError{Reason: "image file extension is required"}
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return "", &ValidationError{Reason: fmt.Sprintf("unsupported image type: %s", extension)}
	}
	if file.Size > maxImageSize {
		return "", &ValidationError{Reason: "image file too large (max 5MB)"}
	}
	return extension, nil
}
