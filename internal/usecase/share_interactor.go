package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/AlbumApp/internal/core/ports"
	"github.com/google/uuid"
)

// ShareUseCase определяет проверку телефонов и рассылку фотографий
type ShareUseCase interface {
	SendOTP(ctx context.Context, phoneNumber string) (*ports.OTPSession, error)
	VerifyOTP(ctx context.Context, phoneNumber, code, sessionID string) (bool, error)
	// SharePhoto рассылает фото получателям; результат разбит на
	// succeeded/failed по получателям с сохранением порядка
	SharePhoto(ctx context.Context, actorID, photoID uuid.UUID, recipients []string, caption string) (*ports.ShareResult, error)
}

// shareUseCase implements ShareUseCase
type shareUseCase struct {
	photoStorage ports.PhotoStorage
	otpNotifier  ports.OTPNotifier
	messenger    ports.Messenger
	logger       *slog.Logger
}

// NewShareUseCase создает новый экземпляр ShareUseCase
func NewShareUseCase(
	photoStorage ports.PhotoStorage,
	otpNotifier ports.OTPNotifier,
	messenger ports.Messenger,
	logger *slog.Logger,
) ShareUseCase {
	return &shareUseCase{
		photoStorage: photoStorage,
		otpNotifier:  otpNotifier,
		messenger:    messenger,
		logger:       logger,
	}
}

// SendOTP отправляет одноразовый код на номер телефона
func (uc *shareUseCase) SendOTP(ctx context.Context, phoneNumber string) (*ports.OTPSession, error) {
	if phoneNumber == "" {
		return nil, fmt.Errorf("%w: не указан номер телефона", ErrValidation)
	}

	session, err := uc.otpNotifier.SendOTP(ctx, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при отправке OTP на %s: %w", phoneNumber, err)
	}
	return session, nil
}

// VerifyOTP проверяет одноразовый код
func (uc *shareUseCase) VerifyOTP(ctx context.Context, phoneNumber, code, sessionID string) (bool, error) {
	if code == "" {
		return false, fmt.Errorf("%w: не указан код", ErrValidation)
	}

	ok, err := uc.otpNotifier.VerifyOTP(ctx, phoneNumber, code, sessionID)
	if err != nil {
		return false, fmt.Errorf("usecase: ошибка при проверке OTP: %w", err)
	}
	return ok, nil
}

// SharePhoto рассылает публичный URL фото всем получателям
func (uc *shareUseCase) SharePhoto(ctx context.Context, actorID, photoID uuid.UUID, recipients []string, caption string) (*ports.ShareResult, error) {
	if actorID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: не указаны получатели", ErrValidation)
	}

	photo, err := uc.photoStorage.GetPhotoByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении фото %s: %w", photoID, err)
	}
	if photo == nil {
		return nil, fmt.Errorf("usecase: фото %s: %w", photoID, ErrNotFound)
	}

	result, err := uc.messenger.SendPhotoToMany(ctx, recipients, photo.FileURL, caption)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка рассылки фото %s: %w", photoID, err)
	}

	uc.logger.Info("photo shared",
		"photo_id", photoID,
		"recipients", len(recipients),
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)
	return result, nil
}
