package service

// Тесты частичного обновления профиля (internal/service/update.go).
//
//  Проверяем:
//  - валидация всех полей и файлов происходит ДО каких-либо side effects
//    (ни чтения сущности, ни загрузок);
//  - сборку storage.ProfileUpdate: nil-указатели не трогают поля,
//    указатель на "" затирает значение;
//  - двухфазную замену медиа-слотов: новый объект грузится до персиста,
//    старый удаляется только после успешного персиста;
//  - компенсацию свежезагруженных объектов при отказе загрузки
//    второго слота и при отказе персиста;
//  - инвалидацию кэша после успешной мутации.
//
// Подготовка окружения:
//   go test ./internal/service -v -race -count=1

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
	"github.com/pribylovaa/go-social-network/profile-service/internal/storage"
	"github.com/pribylovaa/go-social-network/profile-service/internal/validate"
	"github.com/pribylovaa/go-social-network/profile-service/mocks"
)

// upload — хелпер для сборки файла-кандидата.
func upload(contentType string, size int64) *models.Upload {
	return &models.Upload{
		Filename:    "file.bin",
		ContentType: contentType,
		Size:        size,
		Content:     bytes.NewReader(make([]byte, 0)),
	}
}

func strptr(s string) *string { return &s }

// Валидация: пустой user_id -> ErrMissingParameter.
func TestService_UpdateProfile_MissingUserID(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{})
	require.ErrorIs(t, err, ErrMissingParameter)
}

// Валидация: запрещённые символы в username -> ErrInvalidParameterValue,
// ни одного обращения к хранилищу.
func TestService_UpdateProfile_UsernameInvalid(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   uuid.New(),
		Username: strptr("bad<script>"),
	})
	require.ErrorIs(t, err, ErrInvalidParameterValue)
	require.Contains(t, Detail(err), "username")
}

// Валидация: описание длиннее лимита в РУНАХ (не байтах) -> отказ без side effects.
func TestService_UpdateProfile_DescriptionTooLong(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// 151 кириллический символ — в байтах больше 300, важно, что считаем руны.
	long := strings.Repeat("я", maxDescriptionRunes+1)
	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:      uuid.New(),
		Description: &long,
	})
	require.ErrorIs(t, err, ErrInvalidParameterValue)
	require.Equal(t, "description length", Detail(err))
}

// Граница: ровно 150 рун описания проходят валидацию.
func TestService_UpdateProfile_DescriptionAtLimit(t *testing.T) {
	s, mp, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	desc := strings.Repeat("я", maxDescriptionRunes)
	current := mustProfile(uid, "alice")
	saved := mustProfile(uid, "alice")
	saved.Description = desc

	mp.EXPECT().ProfileByID(gomock.Any(), uid).Return(current, nil)
	mp.EXPECT().UpdateProfile(gomock.Any(), uid, gomock.Any()).Return(saved, nil)

	view, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:      uid,
		Description: &desc,
	})
	require.NoError(t, err)
	require.Equal(t, desc, view.Description)
}

// Валидация: хост ссылки из запретного списка -> ErrInvalidParameterValue.
func TestService_UpdateProfile_BannedLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mp := mocks.NewMockProfilesStorage(ctrl)
	mo := mocks.NewMockObjectsStorage(ctrl)
	s := New(mp, mo, nil, validate.New([]string{"spam.example"}), testConfig())

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: uuid.New(),
		Link:   strptr("https://evil.spam.example/page"),
	})
	require.ErrorIs(t, err, ErrInvalidParameterValue)
	require.Contains(t, Detail(err), "link")
}

// Валидация: файл больше лимита -> ErrFileTooLarge до каких-либо загрузок.
func TestService_UpdateProfile_FileTooLarge(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: uuid.New(),
		Avatar: upload("image/jpeg", (4<<20)+1),
	})
	require.ErrorIs(t, err, ErrFileTooLarge)
}

// Валидация: MIME вне allow-list -> ErrInvalidParameterType.
func TestService_UpdateProfile_WrongContentType(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: uuid.New(),
		Cover:  upload("application/pdf", 1024),
	})
	require.ErrorIs(t, err, ErrInvalidParameterType)
	require.Contains(t, Detail(err), "cover_image")
}

// Валидация файлов идёт до загрузок: битый cover отменяет операцию
// ещё до загрузки валидного avatar.
func TestService_UpdateProfile_InvalidCoverBlocksAvatarUpload(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: uuid.New(),
		Avatar: upload("image/png", 1024),
		Cover:  upload("text/plain", 1024),
	})
	require.ErrorIs(t, err, ErrInvalidParameterType)
}

// Сборка апдейта: nil не трогает поле, указатель на "" затирает.
func TestService_UpdateProfile_TextFields(t *testing.T) {
	s, mp, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	current := mustProfile(uid, "alice")
	saved := mustProfile(uid, "  carol  ")
	saved.Username = "carol"

	mp.EXPECT().ProfileByID(gomock.Any(), uid).Return(current, nil)
	mp.EXPECT().
		UpdateProfile(gomock.Any(), uid, gomock.AssignableToTypeOf(storage.ProfileUpdate{})).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, upd storage.ProfileUpdate) (*models.Profile, error) {
			require.NotNil(t, upd.Username)
			require.Equal(t, "carol", *upd.Username) // TrimSpace до записи
			require.NotNil(t, upd.City)
			require.Equal(t, "", *upd.City) // явное «очистить»
			require.Nil(t, upd.Description)
			require.Nil(t, upd.Link)
			require.Nil(t, upd.Avatar)
			require.Nil(t, upd.Cover)
			return saved, nil
		})

	view, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   uid,
		Username: strptr("  carol  "),
		City:     strptr(""),
	})
	require.NoError(t, err)
	require.Equal(t, "carol", view.Username)
	require.Nil(t, view.IsFriend)
}

// Маппинг: профиль аутентифицированного пользователя отсутствует -> ErrNotFound.
func TestService_UpdateProfile_NotFound(t *testing.T) {
	s, mp, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	mp.EXPECT().ProfileByID(gomock.Any(), uid).Return(nil, storage.ErrNotFoundProfile)

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   uid,
		Username: strptr("carol"),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

// Замена слота: новый объект грузится до персиста, старый удаляется
// строго после успешного персиста.
func TestService_UpdateProfile_AvatarReplace_OK(t *testing.T) {
	s, mp, mo, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	current := mustProfile(uid, "alice")
	current.Avatar = models.MediaSlot{Key: "avatars/old", URL: "http://s3/avatars/old", Set: true}

	newObj := &storage.StoredObject{Key: "avatars/new", URL: "http://s3/avatars/new"}
	saved := mustProfile(uid, "alice")
	saved.Avatar = models.MediaSlot{Key: newObj.Key, URL: newObj.URL, Set: true}

	readEntity := mp.EXPECT().ProfileByID(gomock.Any(), uid).Return(current, nil)
	uploadNew := mo.EXPECT().
		Upload(gomock.Any(), "avatars/"+uid.String(), gomock.Any()).
		Return(newObj, nil).
		After(readEntity)
	persist := mp.EXPECT().
		UpdateProfile(gomock.Any(), uid, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, upd storage.ProfileUpdate) (*models.Profile, error) {
			require.NotNil(t, upd.Avatar)
			require.Equal(t, "avatars/new", upd.Avatar.Key)
			require.True(t, upd.Avatar.Set)
			return saved, nil
		}).
		After(uploadNew)
	mo.EXPECT().Delete(gomock.Any(), "avatars/old").Return(nil).After(persist)

	view, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: uid,
		Avatar: upload("image/jpeg", 1024),
	})
	require.NoError(t, err)
	require.Equal(t, "http://s3/avatars/new", view.AvatarURL)
}

// Первая установка слота: прежнего объекта нет — удалять нечего.
func TestService_UpdateProfile_AvatarFirstSet_NoDelete(t *testing.T) {
	s, mp, mo, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	current := mustProfile(uid, "alice") // Avatar.Set == false

	newObj := &storage.StoredObject{Key: "avatars/first", URL: "http://s3/avatars/first"}
	saved := mustProfile(uid, "alice")
	saved.Avatar = models.MediaSlot{Key: newObj.Key, URL: newObj.URL, Set: true}

	mp.EXPECT().ProfileByID(gomock.Any(), uid).Return(current, nil)
	mo.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(newObj, nil)
	mp.EXPECT().UpdateProfile(gomock.Any(), uid, gomock.Any()).Return(saved, nil)
	// mo.Delete не ожидается вовсе.

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: uid,
		Avatar: upload("image/png", 2048),
	})
	require.NoError(t, err)
}

// Порядок слотов: avatar загружается полностью раньше cover; отказ cover
// компенсирует уже загруженный avatar, персиста нет, старые объекты целы.
func TestService_UpdateProfile_CoverUploadFails_CompensatesAvatar(t *testing.T) {
	s, mp, mo, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	current := mustProfile(uid, "alice")
	current.Avatar = models.MediaSlot{Key: "avatars/old", URL: "http://s3/avatars/old", Set: true}

	newAvatar := &storage.StoredObject{Key: "avatars/new", URL: "http://s3/avatars/new"}

	mp.EXPECT().ProfileByID(gomock.Any(), uid).Return(current, nil)
	up1 := mo.EXPECT().
		Upload(gomock.Any(), "avatars/"+uid.String(), gomock.Any()).
		Return(newAvatar, nil)
	up2 := mo.EXPECT().
		Upload(gomock.Any(), "covers/"+uid.String(), gomock.Any()).
		Return(nil, errors.New("s3 down")).
		After(up1)
	// Компенсация: удаляется только свежий avatar, старый ключ не трогаем.
	mo.EXPECT().Delete(gomock.Any(), "avatars/new").Return(nil).After(up2)

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: uid,
		Avatar: upload("image/jpeg", 1024),
		Cover:  upload("image/png", 1024),
	})
	require.ErrorIs(t, err, ErrUploadFailed)
	require.Contains(t, Detail(err), "cover_image")
}

// Отказ персиста: свежие объекты компенсируются, старые не удаляются,
// наружу — ErrStorageUnavailable.
func TestService_UpdateProfile_PersistFails_CompensatesUploads(t *testing.T) {
	s, mp, mo, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	current := mustProfile(uid, "alice")
	current.Avatar = models.MediaSlot{Key: "avatars/old", URL: "http://s3/avatars/old", Set: true}

	newObj := &storage.StoredObject{Key: "avatars/new", URL: "http://s3/avatars/new"}

	mp.EXPECT().ProfileByID(gomock.Any(), uid).Return(current, nil)
	mo.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(newObj, nil)
	persist := mp.EXPECT().
		UpdateProfile(gomock.Any(), uid, gomock.Any()).
		Return(nil, errors.New("pg down"))
	mo.EXPECT().Delete(gomock.Any(), "avatars/new").Return(nil).After(persist)

	_, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: uid,
		Avatar: upload("image/jpeg", 1024),
	})
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

// Ошибка отложенного удаления старого объекта не фатальна для мутации.
func TestService_UpdateProfile_OldDeleteFailureIgnored(t *testing.T) {
	s, mp, mo, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	current := mustProfile(uid, "alice")
	current.Cover = models.MediaSlot{Key: "covers/old", URL: "http://s3/covers/old", Set: true}

	newObj := &storage.StoredObject{Key: "covers/new", URL: "http://s3/covers/new"}
	saved := mustProfile(uid, "alice")
	saved.Cover = models.MediaSlot{Key: newObj.Key, URL: newObj.URL, Set: true}

	mp.EXPECT().ProfileByID(gomock.Any(), uid).Return(current, nil)
	mo.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(newObj, nil)
	mp.EXPECT().UpdateProfile(gomock.Any(), uid, gomock.Any()).Return(saved, nil)
	mo.EXPECT().Delete(gomock.Any(), "covers/old").Return(errors.New("s3 hiccup"))

	view, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: uid,
		Cover:  upload("image/png", 512),
	})
	require.NoError(t, err)
	require.Equal(t, "http://s3/covers/new", view.CoverURL)
}

// Кэш: успешная мутация инвалидирует запись профиля.
func TestService_UpdateProfile_CacheInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mp := mocks.NewMockProfilesStorage(ctrl)
	mo := mocks.NewMockObjectsStorage(ctrl)
	mc := mocks.NewMockProfileCache(ctrl)
	s := New(mp, mo, mc, validate.New(nil), testConfig())

	uid := uuid.New()
	current := mustProfile(uid, "alice")
	saved := mustProfile(uid, "bob")

	mp.EXPECT().ProfileByID(gomock.Any(), uid).Return(current, nil)
	mp.EXPECT().UpdateProfile(gomock.Any(), uid, gomock.Any()).Return(saved, nil)
	mc.EXPECT().Invalidate(gomock.Any(), uid).Return(nil)

	view, err := s.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   uid,
		Username: strptr("bob"),
	})
	require.NoError(t, err)
	require.Equal(t, "bob", view.Username)
}
