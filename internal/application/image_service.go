package application

import (
	"context"
	"errors"
	"io"
	"strings"
)

// 画像アップロードのエラー定義
var (
	ErrUnsupportedImageType = errors.New("対応していない画像形式です")
	ErrImageTooLarge        = errors.New("画像サイズが上限を超えています")
)

// MaxImageSize はアップロード可能な画像の上限（5MB）
const MaxImageSize = 5 << 20

// ObjectStorage はオブジェクトストレージのインターフェース
type ObjectStorage interface {
	Upload(ctx context.Context, entity string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, objectURL string) error
}

// ImageService は画像のアップロードと削除を担当する
type ImageService struct {
	storage ObjectStorage
}

func NewImageService(st ObjectStorage) *ImageService {
	return &ImageService{storage: st}
}

// Upload は画像を検証してアップロードし、公開URLを返す
func (s *ImageService) Upload(ctx context.Context, entity string, body io.Reader, contentType string, size int64) (string, error) {
	if !isSupportedImageType(contentType) {
		return "", ErrUnsupportedImageType
	}
	if size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	return s.storage.Upload(ctx, entity, io.LimitReader(body, MaxImageSize), contentType)
}

func (s *ImageService) Delete(ctx context.Context, objectURL string) error {
	return s.storage.Delete(ctx, objectURL)
}

func isSupportedImageType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}
