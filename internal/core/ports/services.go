package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/AlbumApp/internal/domain"
)

// FaceDetector определяет интерфейс детектора лиц.
// Контракт: асинхронный вызов, результат может быть пустым.
// Вызывающий прикрепляет результат к уже созданному фото, поэтому
// ошибка детектора не должна ронять загрузку.
type FaceDetector interface {
	DetectFaces(ctx context.Context, image io.Reader) (domain.FaceList, error)
}

// OTPSession — сессия проверки номера телефона.
// Живет только в памяти процесса, в бд не сохраняется.
type OTPSession struct {
	SessionID   string                   `json:"session_id"`
	PhoneNumber string                   `json:"phone_number"`
	State       domain.VerificationState `json:"-"`
}

// OTPNotifier определяет интерфейс отправки и проверки одноразовых кодов.
// В текущей реализации (мок) нет ни срока жизни кода, ни лимита попыток —
// реальная интеграция с SMS-провайдером обязана их добавить.
type OTPNotifier interface {
	SendOTP(ctx context.Context, phoneNumber string) (*OTPSession, error)
	VerifyOTP(ctx context.Context, phoneNumber, code, sessionID string) (bool, error)
}

// ShareResult — разбиение результата массовой отправки по получателям.
// Порядок внутри Succeeded/Failed повторяет порядок входного списка.
type ShareResult struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// Messenger определяет интерфейс отправки фото получателям (WhatsApp и т.п.).
// Отправки независимы: сбой одного получателя не прерывает остальных,
// частичный результат не теряется.
type Messenger interface {
	SendPhoto(ctx context.Context, recipient, mediaURL, caption string) error
	SendPhotoToMany(ctx context.Context, recipients []string, mediaURL, caption string) (*ShareResult, error)
}
