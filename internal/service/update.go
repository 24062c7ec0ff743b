package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
	"github.com/pribylovaa/go-social-network/profile-service/internal/pkg/log"
	"github.com/pribylovaa/go-social-network/profile-service/internal/storage"
)

// maxDescriptionRunes — лимит длины описания профиля в символах.
const maxDescriptionRunes = 150

// UpdateProfileInput — параметры частичного обновления профиля.
// Скалярные поля заданы указателями: nil — поле не передавалось и не
// меняется; указатель на пустую строку — явное «очистить».
// Avatar/Cover — файлы-кандидаты на замену соответствующих слотов.
type UpdateProfileInput struct {
	UserID      uuid.UUID
	Username    *string
	Description *string
	Link        *string
	Address     *string
	City        *string
	Country     *string
	Avatar      *models.Upload
	Cover       *models.Upload
}

// UpdateProfile выполняет частичное обновление профиля пользователя.
// UserID приходит из проверенного access-токена и не перепроверяется.
//
// Порядок:
//  1. валидация всех полей и файлов — целиком до каких-либо side effects;
//     любая ошибка валидации оставляет сущность и хранилище нетронутыми;
//  2. загрузка новых объектов слотов, строго последовательно: avatar,
//     затем cover; отказ прерывает операцию, уже загруженные объекты
//     компенсируются удалением;
//  3. персист слитой сущности; отказ — ErrStorageUnavailable, свежие
//     объекты компенсируются, сущность и прежние объекты не тронуты;
//  4. после успешного персиста старые объекты слотов удаляются
//     best-effort, кэш профиля инвалидируется.
//
// Ошибки: ErrMissingParameter, ErrInvalidParameterType/Value,
// ErrFileTooLarge, ErrUploadFailed, ErrNotFound, ErrStorageUnavailable.
// Повторных попыток нет — отказы поднимаются сразу.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.ProfileView, error) {
	const op = "service/profiles/UpdateProfile"

	lg := log.From(ctx).With("op", op, "user_id", input.UserID.String())

	if input.UserID == uuid.Nil {
		lg.Warn("missing parameter: empty user_id")

		return nil, fail(op, ErrMissingParameter, "user_id")
	}

	upd := storage.ProfileUpdate{
		Description: input.Description,
		Link:        input.Link,
		Address:     input.Address,
		City:        input.City,
		Country:     input.Country,
	}

	// username.
	if input.Username != nil {
		val := strings.TrimSpace(*input.Username)

		if err := s.validator.CheckUsername(val); err != nil {
			lg.Warn("invalid username", "reason", err.Error())

			return nil, fail(op, ErrInvalidParameterValue, "username: "+err.Error())
		}

		upd.Username = &val
	}

	// description (пустая строка допустима — это явное «очистить»).
	if input.Description != nil && utf8.RuneCountInString(*input.Description) > maxDescriptionRunes {
		lg.Warn("description too long", "len", utf8.RuneCountInString(*input.Description))

		return nil, fail(op, ErrInvalidParameterValue, "description length")
	}

	// link.
	if input.Link != nil && !s.validator.CheckLink(*input.Link) {
		lg.Warn("link not allowed")

		return nil, fail(op, ErrInvalidParameterValue, "link "+*input.Link+" banned")
	}

	// Файлы обоих слотов валидируются до первой загрузки.
	if input.Avatar != nil {
		if err := s.validateUpload(slotAvatar, *input.Avatar); err != nil {
			lg.Warn("avatar rejected", "err", err)

			return nil, err
		}
	}

	if input.Cover != nil {
		if err := s.validateUpload(slotCover, *input.Cover); err != nil {
			lg.Warn("cover rejected", "err", err)

			return nil, err
		}
	}

	// Мутация читает сущность напрямую из БД, минуя кэш.
	current, err := s.profiles.ProfileByID(ctx, input.UserID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundProfile):
			// Идентификатор пришёл из проверенного токена — отсутствие
			// записи означает рассинхронизацию данных.
			lg.Error("profile missing for authenticated user")

			return nil, fail(op, ErrNotFound, "user")
		default:
			lg.Error("storage error on ProfileByID", "err", err)

			return nil, fail(op, ErrStorageUnavailable, err.Error())
		}
	}

	// Фаза загрузки: avatar полностью раньше cover.
	var uploaded []string // ключи новых объектов — для компенсации
	var oldKeys []string  // прежние ключи — к отложенному удалению

	if input.Avatar != nil {
		slot, err := s.replaceSlot(ctx, slotAvatar, "avatars/"+input.UserID.String(), *input.Avatar)
		if err != nil {
			s.cleanupObjects(ctx, uploaded)

			return nil, err
		}

		uploaded = append(uploaded, slot.Key)
		if current.Avatar.Set {
			oldKeys = append(oldKeys, current.Avatar.Key)
		}
		upd.Avatar = &slot
	}

	if input.Cover != nil {
		slot, err := s.replaceSlot(ctx, slotCover, "covers/"+input.UserID.String(), *input.Cover)
		if err != nil {
			s.cleanupObjects(ctx, uploaded)

			return nil, err
		}

		uploaded = append(uploaded, slot.Key)
		if current.Cover.Set {
			oldKeys = append(oldKeys, current.Cover.Key)
		}
		upd.Cover = &slot
	}

	saved, err := s.profiles.UpdateProfile(ctx, input.UserID, upd)
	if err != nil {
		s.cleanupObjects(ctx, uploaded)

		switch {
		case errors.Is(err, storage.ErrNotFoundProfile):
			lg.Error("profile vanished on save")

			return nil, fail(op, ErrNotFound, "user")
		default:
			lg.Error("storage error on UpdateProfile", "err", err)

			return nil, fail(op, ErrStorageUnavailable, err.Error())
		}
	}

	// Персист прошёл — старые объекты больше не нужны.
	s.cleanupObjects(ctx, oldKeys)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, input.UserID); err != nil {
			lg.Warn("cache invalidate failed", "err", err)
		}
	}

	// Мутация всегда самонаправленная: friend-поля в проекции неизвестны.
	return projectView(saved, nil), nil
}
