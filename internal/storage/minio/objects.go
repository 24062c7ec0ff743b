package minio

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
	"github.com/pribylovaa/go-social-network/profile-service/internal/storage"
)

// Upload загружает объект в бакет под ключом вида "<prefix>/<uuid>.<ext>"
// и возвращает ключ вместе с публичным URL. Расширение подбирается по
// contentType; размер и тип файла валидируются выше, в координаторе.
func (s *ObjectsStorage) Upload(ctx context.Context, prefix string, file models.Upload) (*storage.StoredObject, error) {
	const op = "storage/minio/objects/Upload"

	if strings.TrimSpace(prefix) == "" || file.Size <= 0 || file.Content == nil {
		return nil, storage.ErrInvalidArgument
	}

	// Генерация ключа вида: <prefix>/<uuid>.<ext>
	key := path.Join(prefix, uuid.NewString()+extByContentType(file.ContentType))

	_, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key, file.Content, file.Size, mclient.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &storage.StoredObject{
		Key: key,
		URL: s.publicURL(key),
	}, nil
}

// Delete удаляет объект по ключу. MinIO/S3-семантика: удаление
// отсутствующего объекта завершается успешно.
func (s *ObjectsStorage) Delete(ctx context.Context, key string) error {
	const op = "storage/minio/objects/Delete"

	if strings.TrimSpace(key) == "" {
		return storage.ErrInvalidArgument
	}

	if err := s.client.RemoveObject(ctx, s.cfg.S3.Bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// publicURL строит публичную ссылку на объект: от PublicBaseURL (CDN),
// если тот сконфигурирован, иначе — напрямую от endpoint/bucket.
func (s *ObjectsStorage) publicURL(key string) string {
	if base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}

	endpoint := strings.TrimRight(s.cfg.S3.Endpoint, "/")
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	return endpoint + "/" + s.cfg.S3.Bucket + "/" + key
}

// extByContentType подбирает расширение файла по MIME-типу.
func extByContentType(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ""
	}
}
