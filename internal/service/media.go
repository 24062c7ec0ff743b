package service

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
	"github.com/pribylovaa/go-social-network/profile-service/internal/pkg/log"
)

// Координатор замены медиа-слота.
//
// Порядок операций двухфазный: сначала загружается новый объект, старый
// удаляется позже — только после успешного персиста профиля (см.
// UpdateProfile). Слот никогда не остаётся без рабочего объекта: при
// отказе загрузки действующий объект и его ключ не тронуты, при отказе
// персиста свежезагруженные объекты компенсируются удалением. Худший
// исход — осиротевший объект в бакете, не битый слот.

// Имена слотов в деталях клиентских ошибок.
const (
	slotAvatar = "avatar"
	slotCover  = "cover_image"
)

// validateUpload проверяет ограничения файла до каких-либо обращений
// к хранилищу: размер и MIME-тип из allow-list конфигурации.
func (s *Service) validateUpload(slotName string, file models.Upload) error {
	const op = "service/profiles/validateUpload"

	if file.Size <= 0 {
		return fail(op, ErrInvalidParameterValue, slotName+": empty file")
	}

	if file.Size > s.cfg.Media.MaxSizeBytes {
		return fail(op, ErrFileTooLarge,
			fmt.Sprintf("%s: file too big, max = %d bytes", slotName, s.cfg.Media.MaxSizeBytes))
	}

	if !isAllowedContentType(s.cfg.Media.AllowedContentTypes, file.ContentType) {
		return fail(op, ErrInvalidParameterType,
			fmt.Sprintf("%s: unsupported content type %q", slotName, file.ContentType))
	}

	return nil
}

// replaceSlot загружает файл-кандидат и возвращает новый слот
// {key, url}. Профиль здесь не персистится; удаление прежнего объекта —
// ответственность вызывающего (после персиста).
func (s *Service) replaceSlot(ctx context.Context, slotName, prefix string, file models.Upload) (models.MediaSlot, error) {
	const op = "service/profiles/replaceSlot"

	if err := s.validateUpload(slotName, file); err != nil {
		return models.MediaSlot{}, err
	}

	obj, err := s.objects.Upload(ctx, prefix, file)
	if err != nil {
		log.From(ctx).Error("media upload failed", "op", op, "slot", slotName, "err", err)

		return models.MediaSlot{}, fail(op, ErrUploadFailed, slotName+": "+err.Error())
	}

	return models.MediaSlot{Key: obj.Key, URL: obj.URL, Set: true}, nil
}

// cleanupObjects — best-effort удаление объектов по ключам: и для
// компенсации свежих загрузок при откате, и для отложенного удаления
// старых объектов после успешного персиста. Ошибки только логируются.
func (s *Service) cleanupObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.objects.Delete(ctx, key); err != nil {
			log.From(ctx).Warn("orphaned media object", "key", key, "err", err)
		}
	}
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
