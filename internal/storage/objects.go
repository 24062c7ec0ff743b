package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
)

var (
	// ErrInvalidArgument — нарушены ограничения запроса (пустой ключ/префикс, нулевой размер).
	ErrInvalidArgument = errors.New("invalid argument")
)

// StoredObject — результат успешной загрузки: ключ объекта в бакете
// и его публичный URL. Поля всегда заполняются вместе.
type StoredObject struct {
	Key string
	URL string
}

// Objects — контракт объектного хранилища медиа-слотов.
// Валидация размера/типа файла выполняется выше, в координаторе замены
// слота; здесь — только перенос байтов и удаление по ключу.
type Objects interface {
	// Upload загружает объект под ключом вида "<prefix>/<uuid>.<ext>"
	// и возвращает ключ с публичным URL.
	Upload(ctx context.Context, prefix string, file models.Upload) (*StoredObject, error)
	// Delete удаляет объект по ключу. Удаление отсутствующего объекта
	// не является ошибкой (семантика S3 DeleteObject).
	Delete(ctx context.Context, key string) error
}

// ObjectsStorage — алиас-обёртка для внедрения зависимости.
type ObjectsStorage interface {
	Objects
}
