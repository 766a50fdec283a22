package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member представляет участника альбома,
// соответствует таблице members в бд
type Member struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AlbumID           uuid.UUID `json:"group_id" gorm:"type:uuid;column:group_id"`
	Name              string    `json:"name"`
	PhoneNumber       string    `json:"phone_number,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Member) TableName() string {
	return "members"
}

// MemberUpdate описывает изменяемые поля участника
type MemberUpdate struct {
	Name              *string `json:"name,omitempty"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// VerificationState — состояние проверки телефона участника.
// Живет только в памяти (сессия OTP), в бд не сохраняется.
type VerificationState int

const (
	VerificationUnverified VerificationState = iota
	VerificationPending
	VerificationVerified
)

func (s VerificationState) String() string {
	switch s {
	case VerificationPending:
		return "pending"
	case VerificationVerified:
		return "verified"
	default:
		return "unverified"
	}
}
