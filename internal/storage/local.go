package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocalDisk writes uploads under the assets directory served by the static
// route, the original single-host deployment layout.
type LocalDisk struct {
	Dir string
}

func NewLocalDisk(dir string) *LocalDisk {
	return &LocalDisk{Dir: dir}
}

func (l *LocalDisk) Save(_ context.Context, file *multipart.FileHeader) (string, error) {
	extension, err := validateImage(file)
	if err != nil {
		return "", err
	}

	filename := primitive.NewObjectID().Hex() + extension

	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		log.Printf("[UPLOAD] Save: failed to create directory %s: %v", l.Dir, err)
		return "", err
	}

	fullPath := filepath.Join(l.Dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] Save: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] Save: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] Save: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	// path written to the product document, served under /assets
	return "/assets/" + filename, nil
}

// Delete removes a previously saved upload. Paths outside the assets route are
// refused so a crafted image value can never reach the rest of the disk.
func (l *LocalDisk) Delete(_ context.Context, publicPath string) error {
	trimmed := strings.TrimSpace(publicPath)
	if trimmed == "" {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	if !strings.HasPrefix(cleanRel, "/assets/") {
		return fmt.Errorf("refusing to delete non-asset path: %s", publicPath)
	}
	cleanRel = strings.TrimPrefix(cleanRel, "/assets/")

	cleanBase := filepath.Clean(l.Dir)
	targetPath := filepath.Join(cleanBase, filepath.FromSlash(cleanRel))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget != cleanBase && !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside assets root: %s", publicPath)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}
