package service

import (
	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
)

// isBlocked — симметричный предикат видимости: блокировка любой из
// сторон закрывает просмотр в обе стороны. Чистая функция, состояние
// не меняет.
func isBlocked(viewer, target *models.Profile) bool {
	return containsID(target.Blocked, viewer.ID) || containsID(viewer.Blocked, target.ID)
}

// isFriendOf проверяет членство viewer-а во friends целевого профиля.
func isFriendOf(target *models.Profile, viewerID uuid.UUID) bool {
	return containsID(target.Friends, viewerID)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}
