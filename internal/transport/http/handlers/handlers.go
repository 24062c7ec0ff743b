package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
	"github.com/pribylovaa/go-social-network/profile-service/internal/service"
)

// ProfileService — контракт бизнес-логики, потребляемый хендлерами.
// Реализуется internal/service.Service.
type ProfileService interface {
	GetProfile(ctx context.Context, input service.GetProfileInput) (*models.ProfileView, error)
	UpdateProfile(ctx context.Context, input service.UpdateProfileInput) (*models.ProfileView, error)
}

// Handlers агрегирует зависимости HTTP-хендлеров.
type Handlers struct {
	Profiles ProfileService
}

func New(svc ProfileService) *Handlers {
	return &Handlers{Profiles: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// badRequest — вспомогалка: локальная ошибка парсинга -> сервисная
// ошибка нужного вида с деталью для клиента.
func badRequest(kind error, detail string) error {
	return &service.Error{Kind: kind, Detail: detail}
}

// profileResponse — проекция профиля в том виде, в котором её отдаёт API.
// IsFriend присутствует только когда смотрящий аутентифицирован и не
// совпадает с владельцем профиля.
type profileResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Created     int64  `json:"created"`
	Description string `json:"description"`
	Avatar      string `json:"avatar,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
	Link        string `json:"link,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	FriendCount int    `json:"friend_count"`
	IsFriend    *bool  `json:"is_friend,omitempty"`
}

func profileFromView(v *models.ProfileView) profileResponse {
	return profileResponse{
		ID:          v.ID.String(),
		Username:    v.Username,
		Created:     v.CreatedSeconds,
		Description: v.Description,
		Avatar:      v.AvatarURL,
		CoverImage:  v.CoverURL,
		Link:        v.Link,
		Address:     v.Address,
		City:        v.City,
		Country:     v.Country,
		FriendCount: v.FriendCount,
		IsFriend:    v.IsFriend,
	}
}
