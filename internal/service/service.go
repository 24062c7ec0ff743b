// service содержит бизнес-логику profile-service:
// - чтение профиля с учётом видимости (блокировки, дружба);
// - частичное обновление профиля, включая замену медиа-слотов
//   (аватар/обложка) в удалённом объектном хранилище.
package service

import (
	"errors"
	"fmt"

	"github.com/pribylovaa/go-social-network/profile-service/internal/cache"
	"github.com/pribylovaa/go-social-network/profile-service/internal/config"
	"github.com/pribylovaa/go-social-network/profile-service/internal/storage"
)

var (
	// ErrMissingParameter — не хватает обязательного параметра (нет ни цели, ни viewer-а).
	ErrMissingParameter = errors.New("missing parameter")
	// ErrInvalidParameterType — параметр не того типа (не-UUID идентификатор, не-картинка в слоте).
	ErrInvalidParameterType = errors.New("invalid parameter type")
	// ErrInvalidParameterValue — параметр допустимого типа, но с неприемлемым значением.
	ErrInvalidParameterValue = errors.New("invalid parameter value")
	// ErrNotFound — сущность не найдена.
	ErrNotFound = errors.New("not found")
	// ErrVisibilityDenied — просмотр запрещён из-за блокировки любой из сторон.
	ErrVisibilityDenied = errors.New("visibility denied")
	// ErrFileTooLarge — файл превышает лимит размера.
	ErrFileTooLarge = errors.New("file too large")
	// ErrUploadFailed — загрузка в объектное хранилище не удалась.
	ErrUploadFailed = errors.New("upload failed")
	// ErrExternalService — ошибка удалённого хранилища вне загрузки (удаление объекта).
	ErrExternalService = errors.New("external service error")
	// ErrStorageUnavailable — персист в БД не удался.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInternal — внутренняя ошибка сервиса.
	ErrInternal = errors.New("internal")
)

// Error — структурированная ошибка сервиса: стабильный вид (Kind,
// один из сентинелов выше) и необязательная деталь для клиента.
// errors.Is по сентинелу работает через Unwrap.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}

	return e.Kind.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Kind }

// Detail извлекает клиентскую деталь из цепочки ошибок.
// Возвращает пустую строку, если детали нет.
func Detail(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Detail
	}

	return ""
}

// fail — хелпер сборки структурированной ошибки с op-префиксом.
func fail(op string, kind error, detail string) error {
	return fmt.Errorf("%s: %w", op, &Error{Kind: kind, Detail: detail})
}

// FieldValidator — внешние прикладные валидаторы полей профиля.
type FieldValidator interface {
	// CheckUsername возвращает причину, по которой имя не подходит, или nil.
	CheckUsername(s string) error
	// CheckLink сообщает, допустима ли ссылка (allow-list по хостам).
	CheckLink(s string) bool
}

// Service — описывает бизнес-логику profile-service.
type Service struct {
	cfg       *config.Config
	profiles  storage.ProfilesStorage
	objects   storage.ObjectsStorage
	cache     cache.ProfileCache
	validator FieldValidator
}

// New создает новый экземпляр Service.
// profileCache может быть nil — тогда чтения всегда идут в БД.
func New(profiles storage.ProfilesStorage, objects storage.ObjectsStorage, profileCache cache.ProfileCache, validator FieldValidator, cfg *config.Config) *Service {
	return &Service{
		cfg:       cfg,
		profiles:  profiles,
		objects:   objects,
		cache:     profileCache,
		validator: validator,
	}
}
