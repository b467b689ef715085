package storage

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalDiskDeleteRefusesNonAssetPaths(t *testing.T) {
	disk := NewLocalDisk(t.TempDir())

	for _, path := range []string{
		"/etc/passwd",
		"uploads/image.jpg",
		"/assets/../secrets.txt",
	} {
		if err := disk.Delete(context.Background(), path); err == nil {
			t.Fatalf("expected %q to be refused", path)
		}
	}
}

func TestLocalDiskDeleteRemovesAssetFile(t *testing.T) {
	dir := t.TempDir()
	disk := NewLocalDisk(dir)

	target := filepath.Join(dir, "abc123.jpg")
	if err := os.WriteFile(target, []byte("img"), 0o644); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}

	if err := disk.Delete(context.Background(), "/assets/abc123.jpg"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}

func TestLocalDiskDeleteMissingFileIsNoError(t *testing.T) {
	disk := NewLocalDisk(t.TempDir())

	if err := disk.Delete(context.Background(), "/assets/missing.jpg"); err != nil {
		t.Fatalf("expected missing file to be tolerated, got %v", err)
	}
	if err := disk.Delete(context.Background(), "  "); err != nil {
		t.Fatalf("expected blank path to be tolerated, got %v", err)
	}
}

func TestValidateImageExtensionWhitelist(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp"} {
		header := &multipart.FileHeader{Filename: name, Size: 1024}
		if _, err := validateImage(header); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", name, err)
		}
	}

	for _, name := range []string{"e.gif", "f.svg", "noext", "g.pdf"} {
		header := &multipart.FileHeader{Filename: name, Size: 1024}
		if _, err := validateImage(header); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestValidateImageSizeLimit(t *testing.T) {
	header := &multipart.FileHeader{Filename: "big.jpg", Size: maxImageSize + 1}
	if _, err := validateImage(header); err == nil {
		t.Fatal("expected oversized image to be rejected")
	}
}
