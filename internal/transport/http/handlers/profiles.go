package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-social-network/profile-service/internal/auth"
	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
	"github.com/pribylovaa/go-social-network/profile-service/internal/service"
	apierrors "github.com/pribylovaa/go-social-network/profile-service/internal/transport/http/errors"
	"github.com/pribylovaa/go-social-network/profile-service/internal/transport/http/middleware"
)

// multipartMemoryLimit — максимум тела multipart-формы, удерживаемый в
// памяти; остальное net/http сбрасывает во временные файлы.
const multipartMemoryLimit = 10 << 20

// GetProfile — GET /users/{id}: профиль по идентификатору глазами
// смотрящего (анонимного или аутентифицированного).
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		apierrors.WriteError(w, r, badRequest(service.ErrMissingParameter, "user_id"))
		return
	}

	targetID, err := uuid.Parse(raw)
	if err != nil {
		apierrors.WriteError(w, r, badRequest(service.ErrInvalidParameterType, "user_id: not a UUID"))
		return
	}

	// Анонимный viewer представлен uuid.Nil.
	viewerID, _ := middleware.UserIDFrom(r.Context())

	view, err := h.Profiles.GetProfile(r.Context(), service.GetProfileInput{
		ViewerID: viewerID,
		TargetID: targetID,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileFromView(view))
}

// GetOwnProfile — GET /users/me: собственный профиль владельца токена.
func (h *Handlers) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, auth.ErrInvalidToken)
		return
	}

	view, err := h.Profiles.GetProfile(r.Context(), service.GetProfileInput{
		ViewerID: viewerID,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileFromView(view))
}

// UpdateProfile — POST /users/me: частичное обновление собственного
// профиля из multipart-формы. Текстовое поле, отсутствующее в форме,
// не изменяется; присланное пустым — затирает значение. Файловые поля
// avatar и cover_image заменяют соответствующие медиа-слоты.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, auth.ErrInvalidToken)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		apierrors.WriteError(w, r, badRequest(service.ErrInvalidParameterValue, "malformed multipart form"))
		return
	}
	form := r.MultipartForm
	defer func() { _ = form.RemoveAll() }()

	in := service.UpdateProfileInput{
		UserID:      viewerID,
		Username:    formField(form, "username"),
		Description: formField(form, "description"),
		Link:        formField(form, "link"),
		Address:     formField(form, "address"),
		City:        formField(form, "city"),
		Country:     formField(form, "country"),
	}

	avatar, closeAvatar, err := formUpload(form, "avatar")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if closeAvatar != nil {
		defer closeAvatar()
	}
	in.Avatar = avatar

	cover, closeCover, err := formUpload(form, "cover_image")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if closeCover != nil {
		defer closeCover()
	}
	in.Cover = cover

	view, err := h.Profiles.UpdateProfile(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileFromView(view))
}

// formField возвращает указатель на первое значение текстового поля
// или nil, если поле в форме не присутствует. Разница существенна:
// nil означает "не трогать", указатель на "" — "затереть".
func formField(form *multipart.Form, name string) *string {
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}

	v := values[0]
	return &v
}

// formUpload открывает единственный файл файлового поля формы.
// Отсутствие поля — не ошибка (nil, nil, nil); более одного файла в
// слоте — ошибка значения.
func formUpload(form *multipart.Form, name string) (*models.Upload, func(), error) {
	files := form.File[name]
	if len(files) == 0 {
		return nil, nil, nil
	}
	if len(files) > 1 {
		return nil, nil, badRequest(service.ErrInvalidParameterValue, name+": more than one file")
	}

	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, nil, badRequest(service.ErrInvalidParameterValue, name+": unreadable file")
	}

	upload := &models.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}

	return upload, func() { _ = f.Close() }, nil
}
