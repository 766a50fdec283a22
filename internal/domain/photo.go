package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Photo представляет модель фотографии в системе,
// соответствует таблице photos в бд
type Photo struct {
	ID            uuid.UUID `json:"id" db:"id"`
	AlbumID       uuid.UUID `json:"group_id" db:"group_id"`
	UploadedBy    uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
	FileURL       string    `json:"file_url" db:"file_url"`
	FileName      string    `json:"file_name" db:"file_name"`
	FileSize      int64     `json:"file_size" db:"file_size"`
	MimeType      string    `json:"mime_type" db:"mime_type"`
	ObjectKey     string    `json:"object_key" db:"object_key"`
	DetectedFaces FaceList  `json:"detected_faces,omitempty" db:"detected_faces"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (Photo) TableName() string {
	return "photos"
}

// FaceList — список дескрипторов лиц, хранится в колонке detected_faces (JSONB).
// Список может отсутствовать (NULL), быть пустым или появиться позже:
// аннотация выполняется асинхронно воркером уже после создания записи.
type FaceList []DetectedFace

// Value реализует driver.Valuer для записи в JSONB
func (f FaceList) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка маршалинга detected_faces: %w", err)
	}
	return b, nil
}

// Scan реализует sql.Scanner для чтения из JSONB
func (f *FaceList) Scan(src interface{}) error {
	if src == nil {
		*f = nil
		return nil
	}

	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("неожиданный тип для detected_faces: %T", src)
	}

	if err := json.Unmarshal(b, f); err != nil {
		return fmt.Errorf("ошибка демаршалинга detected_faces: %w", err)
	}
	return nil
}
