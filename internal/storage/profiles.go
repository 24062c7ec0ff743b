// storage содержит контракты слоя хранилищ profile-service.
//
// profiles.go - работа с профилями в БД (чтение со связями друзей/блокировок,
// создание для регистрационного потока и частичное обновление, включая
// согласованную запись медиа-слотов).
// objects.go - контракт объектного хранилища (S3/MinIO) для медиа-слотов.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
)

var (
	// ErrNotFoundProfile — профиль не найден.
	ErrNotFoundProfile = errors.New("not found")
	// ErrAlreadyExists — профиль с тем же первичным ключом уже существует.
	ErrAlreadyExists = errors.New("already exists")
)

// ProfileUpdate — частичный апдейт профиля.
// Скалярные поля задаются pointer-полями: только непустые указатели
// попадают в UPDATE; указатель на пустую строку — явное «очистить».
// Avatar/Cover обновляют пару (key, url) слота атомарно в одном запросе.
type ProfileUpdate struct {
	Username    *string
	Description *string
	Link        *string
	Address     *string
	City        *string
	Country     *string
	Avatar      *models.MediaSlot
	Cover       *models.MediaSlot
}

// Profiles — контракт репозитория профилей.
type Profiles interface {
	// CreateProfile создаёт новый профиль (используется регистрационным потоком).
	CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	// ProfileByID возвращает профиль по user_id вместе со связями
	// friends и blocked.
	ProfileByID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	// UpdateProfile выполняет частичное обновление полей, указанных в update.
	// Реализация должна обновить updated_at.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*models.Profile, error)
}

// ProfilesStorage — верхнеуровневый интерфейс хранилища профилей.
type ProfilesStorage interface {
	Profiles
	Close()
}
