package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMemberStorage реализует интерфейс ports.MemberStorage с использованием GORM
type GormMemberStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormMemberStorage создает новый экземпляр GormMemberStorage
func NewGormMemberStorage(db *gorm.DB, logger *slog.Logger) *GormMemberStorage {
	return &GormMemberStorage{db: db, logger: logger}
}

// SaveMember сохраняет участника альбома в бд с помощью GORM
func (s *GormMemberStorage) SaveMember(ctx context.Context, member *domain.Member) error {
	start := time.Now()

	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}

	result := s.db.WithContext(ctx).Create(member)
	if result.Error != nil {
		s.logger.Error("failed to save member", "name", member.Name, "group_id", member.AlbumID, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении участника с GORM: %w", result.Error)
	}

	s.logger.Info("member saved successfully",
		"id", member.ID,
		"group_id", member.AlbumID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetMemberByID получает участника по ID с помощью GORM
func (s *GormMemberStorage) GetMemberByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	var member domain.Member
	result := s.db.WithContext(ctx).First(&member, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s.logger.Warn("member not found by id", "id", id)
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении участника по ID с GORM: %w", result.Error)
	}
	return &member, nil
}

// ListMembersByAlbum получает участников альбома по убыванию created_at
func (s *GormMemberStorage) ListMembersByAlbum(ctx context.Context, albumID uuid.UUID) ([]domain.Member, error) {
	start := time.Now()

	var members []domain.Member
	result := s.db.WithContext(ctx).
		Where("group_id = ?", albumID).
		Order("created_at DESC").
		Find(&members)

	if result.Error != nil {
		s.logger.Error("failed to list members", "group_id", albumID, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении участников альбома с GORM: %w", result.Error)
	}

	s.logger.Info("listed album members successfully",
		"group_id", albumID,
		"count", len(members),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return members, nil
}

// UpdateMember обновляет переданные поля участника и возвращает свежую запись
func (s *GormMemberStorage) UpdateMember(ctx context.Context, id uuid.UUID, upd domain.MemberUpdate) (*domain.Member, error) {
	updates := map[string]interface{}{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.PhoneNumber != nil {
		updates["phone_number"] = *upd.PhoneNumber
	}
	if upd.ProfilePictureURL != nil {
		updates["profile_picture_url"] = *upd.ProfilePictureURL
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&domain.Member{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			s.logger.Error("failed to update member", "id", id, "error", result.Error)
			return nil, fmt.Errorf("ошибка при обновлении участника с GORM: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			s.logger.Warn("member not found for update", "id", id)
			return nil, nil
		}
	}

	return s.GetMemberByID(ctx, id)
}

// DeleteMember удаляет участника
func (s *GormMemberStorage) DeleteMember(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	result := s.db.WithContext(ctx).Delete(&domain.Member{}, "id = ?", id)
	if result.Error != nil {
		s.logger.Error("failed to delete member", "id", id, "error", result.Error)
		return fmt.Errorf("ошибка при удалении участника с GORM: %w", result.Error)
	}

	s.logger.Info("member deleted",
		"id", id,
		"rows_affected", result.RowsAffected,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// SearchMembers ищет участников по имени или номеру телефона
// (подстрока, без учета регистра)
func (s *GormMemberStorage) SearchMembers(ctx context.Context, query string) ([]domain.Member, error) {
	start := time.Now()

	pattern := "%" + strings.ToLower(query) + "%"

	var members []domain.Member
	result := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR phone_number LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&members)

	if result.Error != nil {
		s.logger.Error("failed to search members", "query", query, "error", result.Error)
		return nil, fmt.Errorf("ошибка при поиске участников с GORM: %w", result.Error)
	}

	s.logger.Info("members search completed",
		"query", query,
		"found", len(members),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return members, nil
}
