package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"worldone/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

var storageClient = resty.New()

// UploadFile stores an uploaded file and returns its public URL. When an
// object storage endpoint is configured the blob goes there; otherwise it
// lands in the local uploads directory served under /uploads.
func UploadFile(file *multipart.FileHeader) (string, error) {
	objectName := uuid.NewString() + filepath.Ext(file.Filename)

	if config.AppConfig.StorageURL != "" {
		return uploadToObjectStorage(file, objectName)
	}
	return saveLocalFile(file, objectName)
}

func uploadToObjectStorage(file *multipart.FileHeader, objectName string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	bucket := config.AppConfig.StorageBucket
	uploadURL := fmt.Sprintf("%s/object/%s/%s", config.AppConfig.StorageURL, bucket, objectName)

	resp, err := storageClient.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.StorageKey).
		SetHeader("Content-Type", file.Header.Get("Content-Type")).
		SetBody(data).
		Post(uploadURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("storage upload failed: %d %s", resp.StatusCode(), resp.String())
	}

	return fmt.Sprintf("%s/object/public/%s/%s", config.AppConfig.StorageURL, bucket, objectName), nil
}

func saveLocalFile(file *multipart.FileHeader, objectName string) (string, error) {
	destDir := config.AppConfig.UploadDir
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(destDir, objectName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + objectName, nil
}
