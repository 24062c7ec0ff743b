package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
	"github.com/pribylovaa/go-social-network/profile-service/internal/storage"
)

// profileColumns — единый список колонок таблицы profiles,
// используемый в SELECT/RETURNING, чтобы гарантировать одинаковый порядок сканирования.
const profileColumns = `
user_id, username, description, avatar_key, avatar_url, cover_key, cover_url,
link, address, city, country, created_at, updated_at
`

// scanProfile сканирует одну строку профиля из результата запроса
// в доменную модель. Пары (key, url) медиа-слотов хранятся как NULL,
// пока слот ни разу не устанавливался; NULL транслируется в Set=false.
func scanProfile(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile
	var avatarKey, avatarURL, coverKey, coverURL *string

	if err := row.Scan(
		&profile.ID,
		&profile.Username,
		&profile.Description,
		&avatarKey,
		&avatarURL,
		&coverKey,
		&coverURL,
		&profile.Link,
		&profile.Address,
		&profile.City,
		&profile.Country,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}

	profile.Avatar = toSlot(avatarKey, avatarURL)
	profile.Cover = toSlot(coverKey, coverURL)

	return &profile, nil
}

// toSlot собирает медиа-слот из nullable-колонок.
// Инвариант схемы: key и url либо оба NULL, либо оба заданы.
func toSlot(key, url *string) models.MediaSlot {
	if key == nil {
		return models.MediaSlot{}
	}

	slot := models.MediaSlot{Key: *key, Set: true}
	if url != nil {
		slot.URL = *url
	}

	return slot
}

// fromSlot разбирает медиа-слот обратно в nullable-значения для INSERT/UPDATE.
func fromSlot(slot models.MediaSlot) (key, url *string) {
	if !slot.Set {
		return nil, nil
	}

	k, u := slot.Key, slot.URL
	return &k, &u
}

// CreateProfile вставляет новую запись профиля.
// Связи friends/blocked при создании пусты — ими управляют
// соответствующие сервисы (friends/blocking), не этот репозиторий.
// Ошибки: storage.ErrAlreadyExists при конфликте уникальности (PK), иные — как есть.
func (s *ProfilesStorage) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	const op = "storage/postgres/profiles/CreateProfile"

	q := `
	INSERT INTO profiles (user_id, username, description, avatar_key, avatar_url, cover_key, cover_url, link, address, city, country)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING
	` + profileColumns

	avatarKey, avatarURL := fromSlot(profile.Avatar)
	coverKey, coverURL := fromSlot(profile.Cover)

	row := s.db.QueryRow(ctx, q,
		profile.ID,
		profile.Username,
		profile.Description,
		avatarKey,
		avatarURL,
		coverKey,
		coverURL,
		profile.Link,
		profile.Address,
		profile.City,
		profile.Country,
	)

	result, err := scanProfile(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// ProfileByID возвращает профиль по user_id вместе со связями friends/blocked.
// Ошибки: storage.ErrNotFoundProfile, либо ошибка выполнения запроса.
func (s *ProfilesStorage) ProfileByID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	const op = "storage/postgres/profiles/ProfileByID"

	q := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	row := s.db.QueryRow(ctx, q, userID)

	result, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundProfile)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if result.Friends, err = s.relationIDs(ctx, `SELECT friend_id FROM friends WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if result.Blocked, err = s.relationIDs(ctx, `SELECT blocked_id FROM blocks WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// relationIDs читает множество идентификаторов связи (friends/blocks).
func (s *ProfilesStorage) relationIDs(ctx context.Context, q string, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// UpdateProfile выполняет частичный апдейт: обновляет только поля,
// указанные непустыми pointer-полями, и всегда сдвигает updated_at = now().
// Медиа-слоты пишутся парой (key, url) одним запросом — порознь эти
// колонки не обновляются никогда.
// Ошибки: storage.ErrNotFoundProfile при отсутствии записи.
func (s *ProfilesStorage) UpdateProfile(ctx context.Context, userID uuid.UUID, update storage.ProfileUpdate) (*models.Profile, error) {
	const op = "storage/postgres/profiles/UpdateProfile"

	sets := []string{"updated_at = now()"}
	args := make([]any, 0, 10)
	count := 0

	addSet := func(column string, value any) {
		count++
		sets = append(sets, fmt.Sprintf("%s = $%d", column, count))
		args = append(args, value)
	}

	if update.Username != nil {
		addSet("username", *update.Username)
	}

	if update.Description != nil {
		addSet("description", *update.Description)
	}

	if update.Link != nil {
		addSet("link", *update.Link)
	}

	if update.Address != nil {
		addSet("address", *update.Address)
	}

	if update.City != nil {
		addSet("city", *update.City)
	}

	if update.Country != nil {
		addSet("country", *update.Country)
	}

	if update.Avatar != nil {
		key, url := fromSlot(*update.Avatar)
		addSet("avatar_key", key)
		addSet("avatar_url", url)
	}

	if update.Cover != nil {
		key, url := fromSlot(*update.Cover)
		addSet("cover_key", key)
		addSet("cover_url", url)
	}

	count++
	args = append(args, userID)

	q := fmt.Sprintf(`UPDATE profiles SET %s WHERE user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), count, profileColumns)

	row := s.db.QueryRow(ctx, q, args...)

	result, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundProfile)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if result.Friends, err = s.relationIDs(ctx, `SELECT friend_id FROM friends WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if result.Blocked, err = s.relationIDs(ctx, `SELECT blocked_id FROM blocks WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
