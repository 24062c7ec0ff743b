package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
	"github.com/pribylovaa/go-social-network/profile-service/internal/pkg/log"
	"github.com/pribylovaa/go-social-network/profile-service/internal/storage"
)

// GetProfileInput — параметры чтения профиля.
type GetProfileInput struct {
	// ViewerID — идентификатор смотрящего; uuid.Nil при анонимном просмотре.
	ViewerID uuid.UUID
	// TargetID — идентификатор целевого профиля; uuid.Nil, если цель
	// не указана и должна быть выведена из viewer-а (self-запрос).
	TargetID uuid.UUID
}

// GetProfile возвращает публичную проекцию профиля для заданного viewer-а.
//
// Разрешение цели:
//   - явный TargetID, иначе сам viewer; если не разрешимо ни то, ни другое —
//     ErrMissingParameter.
//
// Видимость:
//   - при viewer != target проверяется симметричный предикат блокировки;
//     блок любой стороны — ErrVisibilityDenied, целевые данные не
//     возвращаются (включая подтверждение существования сверх самого отказа).
//
// Проекция:
//   - FriendCount = |friends|; IsFriend вычисляется только при
//     аутентифицированном viewer != target, иначе nil («неизвестно»).
//
// Side effects: нет (чтение может пройти через best-effort кэш).
func (s *Service) GetProfile(ctx context.Context, input GetProfileInput) (*models.ProfileView, error) {
	const op = "service/profiles/GetProfile"

	lg := log.From(ctx).With("op", op)

	targetID := input.TargetID
	if targetID == uuid.Nil {
		targetID = input.ViewerID
	}

	if targetID == uuid.Nil {
		lg.Warn("missing parameter: no target and no viewer")

		return nil, fail(op, ErrMissingParameter, "user_id")
	}

	target, err := s.profileByID(ctx, targetID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundProfile):
			lg.Warn("profile not found", "target_id", targetID.String())

			return nil, fail(op, ErrNotFound, "user")
		default:
			lg.Error("storage error on ProfileByID", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	var isFriend *bool

	if input.ViewerID != uuid.Nil && input.ViewerID != targetID {
		viewer, err := s.profileByID(ctx, input.ViewerID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFoundProfile):
				lg.Warn("viewer profile not found", "viewer_id", input.ViewerID.String())

				return nil, fail(op, ErrNotFound, "viewer")
			default:
				lg.Error("storage error on viewer ProfileByID", "err", err)

				return nil, fmt.Errorf("%s: %w", op, ErrInternal)
			}
		}

		if isBlocked(viewer, target) {
			lg.Warn("visibility denied", "viewer_id", input.ViewerID.String(), "target_id", targetID.String())

			return nil, fail(op, ErrVisibilityDenied, "")
		}

		friend := isFriendOf(target, viewer.ID)
		isFriend = &friend
	}

	return projectView(target, isFriend), nil
}

// profileByID — чтение профиля через кэш (read-through, best-effort):
// ошибка кэша логируется и не влияет на результат.
func (s *Service) profileByID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if s.cache != nil {
		profile, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.From(ctx).Warn("cache get failed", "user_id", userID.String(), "err", err)
		} else if ok {
			return profile, nil
		}
	}

	profile, err := s.profiles.ProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profile); err != nil {
			log.From(ctx).Warn("cache set failed", "user_id", userID.String(), "err", err)
		}
	}

	return profile, nil
}

// projectView собирает эфемерную публичную проекцию профиля.
func projectView(p *models.Profile, isFriend *bool) *models.ProfileView {
	return &models.ProfileView{
		ID:             p.ID,
		Username:       p.Username,
		CreatedSeconds: p.CreatedAt.Unix(),
		Description:    p.Description,
		AvatarURL:      p.Avatar.URL,
		CoverURL:       p.Cover.URL,
		Link:           p.Link,
		Address:        p.Address,
		City:           p.City,
		Country:        p.Country,
		FriendCount:    len(p.Friends),
		IsFriend:       isFriend,
	}
}
