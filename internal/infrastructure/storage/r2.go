package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/novastellaa/BE-Infokus-Studio/internal/config"
)

var (
	ErrInvalidObjectURL = errors.New("オブジェクトURLが不正です")
)

// R2Storage はCloudflare R2（S3互換API）への画像アップロードを担当する
// 保存されたオブジェクトは公開URLとして返され、コアはURLを不透明な
// 文字列としてのみ扱う
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// New はR2ストレージクライアントを作成する
func New(ctx context.Context, cfg *config.StorageConfig) (*R2Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ストレージ設定の読み込みに失敗: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &R2Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Upload はオブジェクトをアップロードし公開URLを返す
// entity はキーのプレフィックス（packages, proofs 等）
func (s *R2Storage) Upload(ctx context.Context, entity string, body io.Reader, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s", entity, uuid.New().String())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("画像のアップロードに失敗: %w", err)
	}

	return s.publicURL + "/" + key, nil
}

// Delete は公開URLからオブジェクトを削除する
func (s *R2Storage) Delete(ctx context.Context, objectURL string) error {
	key, err := s.keyFromURL(objectURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("画像の削除に失敗: %w", err)
	}
	return nil
}

func (s *R2Storage) keyFromURL(objectURL string) (string, error) {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(objectURL, prefix) {
		return "", ErrInvalidObjectURL
	}
	return strings.TrimPrefix(objectURL, prefix), nil
}
