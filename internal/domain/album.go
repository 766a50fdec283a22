package domain

import (
	"time"

	"github.com/google/uuid"
)

// Album представляет модель альбома (группы) в системе,
// соответствует таблице albums в бд
type Album struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	CoverPhotoURL string    `json:"cover_photo_url" db:"cover_photo_url"`
	CreatedBy     uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Агрегаты, заполняются запросом списка альбомов (COUNT по связанным таблицам)
	MemberCount int `json:"member_count" db:"member_count"`
	PhotoCount  int `json:"photo_count" db:"photo_count"`
}

func (Album) TableName() string {
	return "albums"
}

// AlbumUpdate описывает изменяемые поля альбома.
// nil-поле означает "не трогать"
type AlbumUpdate struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	CoverPhotoURL *string `json:"cover_photo_url,omitempty"`
}
