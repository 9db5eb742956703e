package testutil

import (
	"context"

	"github.com/rewardlab/backend/pkg/storage"
)

type MockStorage struct {
	UploadFunc   func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	DownloadFunc func(context.Context, string) ([]byte, error)
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return &storage.UploadResponse{
		Url:      "/uploads/" + obj.FileName,
		FileName: obj.FileName,
	}, nil
}

func (m *MockStorage) Download(ctx context.Context, fileName string) ([]byte, error) {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, fileName)
	}

	return nil, nil
}
