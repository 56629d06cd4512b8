package storage

import (
	"context"
	"io"
)

// UploadResult identifies a stored file. PublicID is the permanent handle
// used for deletion; URL is the delivery address stored on job attachments.
type UploadResult struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// StorageService defines the interface for attachment storage operations.
type StorageService interface {
	UploadFile(ctx context.Context, file io.Reader, destFolder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error)
}
