package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/core/ports"
	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
)

// Код, который принимает мок-проверка. В реальной интеграции с SMS-провайдером
// код генерируется на каждую сессию.
const mockValidCode = "123456"

// MockOTPNotifier — заглушка отправки одноразовых кодов.
// Отправка всегда успешна после искусственной задержки; проверка принимает
// только фиксированный код. Срока жизни кода и лимита попыток нет — это
// осознанные пробелы мока, реальная реализация обязана их добавить.
type MockOTPNotifier struct {
	mu       sync.Mutex
	sessions map[string]*ports.OTPSession
	delay    time.Duration
	logger   *slog.Logger
}

func NewMockOTPNotifier(logger *slog.Logger) *MockOTPNotifier {
	return &MockOTPNotifier{
		sessions: make(map[string]*ports.OTPSession),
		delay:    time.Second,
		logger:   logger,
	}
}

// NewMockOTPNotifierNoDelay — вариант без задержки, для тестов
func NewMockOTPNotifierNoDelay(logger *slog.Logger) *MockOTPNotifier {
	n := NewMockOTPNotifier(logger)
	n.delay = 0
	return n
}

// SendOTP имитирует отправку кода на номер телефона и открывает сессию проверки
func (n *MockOTPNotifier) SendOTP(ctx context.Context, phoneNumber string) (*ports.OTPSession, error) {
	if err := n.sleep(ctx); err != nil {
		return nil, err
	}

	session := &ports.OTPSession{
		SessionID:   uuid.NewString(),
		PhoneNumber: phoneNumber,
		State:       domain.VerificationPending,
	}

	n.mu.Lock()
	n.sessions[session.SessionID] = session
	n.mu.Unlock()

	n.logger.Info("mock OTP sent", "phone_number", phoneNumber, "session_id", session.SessionID)
	return session, nil
}

// VerifyOTP имитирует проверку кода: true только для фиксированного значения.
// Номер и сессия на результат не влияют (поведение прототипа сохранено).
func (n *MockOTPNotifier) VerifyOTP(ctx context.Context, phoneNumber, code, sessionID string) (bool, error) {
	if err := n.sleep(ctx); err != nil {
		return false, err
	}

	ok := code == mockValidCode

	n.mu.Lock()
	if session, found := n.sessions[sessionID]; found {
		if ok {
			session.State = domain.VerificationVerified
		} else {
			session.State = domain.VerificationUnverified
		}
	}
	n.mu.Unlock()

	n.logger.Info("mock OTP verified", "phone_number", phoneNumber, "session_id", sessionID, "valid", ok)
	return ok, nil
}

// SessionState возвращает текущее состояние сессии проверки
func (n *MockOTPNotifier) SessionState(sessionID string) domain.VerificationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	if session, found := n.sessions[sessionID]; found {
		return session.State
	}
	return domain.VerificationUnverified
}

func (n *MockOTPNotifier) sleep(ctx context.Context) error {
	if n.delay == 0 {
		return nil
	}
	select {
	case <-time.After(n.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
