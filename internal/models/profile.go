// models содержит доменные сущности profile-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// MediaSlot — медиа-слот профиля (аватар или обложка).
// Key — ключ объекта в S3/MinIO, URL — публичная ссылка на него.
// Инвариант: Key и URL задаются и сбрасываются только вместе, через
// координатор замены слота; по отдельности они не меняются.
// Set=false означает «слот никогда не устанавливался» — это отличается
// от пустой строки и в БД хранится как NULL.
type MediaSlot struct {
	Key string
	URL string
	Set bool
}

// Profile — внутренняя доменная модель профиля пользователя.
// Friends и Blocked — множества связей (порядок не важен);
// Blocked интерпретируется симметрично на чтении (блок любой стороны
// закрывает видимость в обе стороны).
type Profile struct {
	ID          uuid.UUID
	Username    string
	Description string
	Avatar      MediaSlot
	Cover       MediaSlot
	Link        string
	Address     string
	City        string
	Country     string
	Friends     []uuid.UUID
	Blocked     []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileView — эфемерная проекция профиля для выдачи наружу.
// Не персистится. IsFriend == nil означает «неизвестно»:
// анонимный просмотр или просмотр собственного профиля.
type ProfileView struct {
	ID             uuid.UUID
	Username       string
	CreatedSeconds int64
	Description    string
	AvatarURL      string
	CoverURL       string
	Link           string
	Address        string
	City           string
	Country        string
	FriendCount    int
	IsFriend       *bool
}

// Upload — кандидат на загрузку в объектное хранилище.
// Size и ContentType берутся из multipart-заголовков и валидируются
// до каких-либо обращений к хранилищу.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
