package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/core/ports"
)

var errMockDelivery = errors.New("мок-доставка не удалась")

// MockMessenger — заглушка отправки фото через WhatsApp.
// Реальная интеграция с WhatsApp Business API должна сохранить контракт:
// отправки по получателям независимы, результат разбивается на
// succeeded/failed с сохранением исходного порядка.
type MockMessenger struct {
	delay  time.Duration
	logger *slog.Logger

	// failFor позволяет тестам назначить получателей, для которых отправка падает
	mu      sync.Mutex
	failFor map[string]bool
}

func NewMockMessenger(logger *slog.Logger) *MockMessenger {
	return &MockMessenger{
		delay:   time.Second,
		logger:  logger,
		failFor: make(map[string]bool),
	}
}

// NewMockMessengerNoDelay — вариант без задержки, для тестов
func NewMockMessengerNoDelay(logger *slog.Logger) *MockMessenger {
	m := NewMockMessenger(logger)
	m.delay = 0
	return m
}

// FailFor помечает получателя как "сбойного" (для тестов изоляции ошибок)
func (m *MockMessenger) FailFor(recipient string) {
	m.mu.Lock()
	m.failFor[recipient] = true
	m.mu.Unlock()
}

// SendPhoto имитирует отправку одного фото одному получателю
func (m *MockMessenger) SendPhoto(ctx context.Context, recipient, mediaURL, caption string) error {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	shouldFail := m.failFor[recipient]
	m.mu.Unlock()

	if shouldFail {
		m.logger.Warn("mock WhatsApp send failed", "recipient", recipient)
		return errMockDelivery
	}

	m.logger.Info("mock WhatsApp photo sent", "recipient", recipient, "media_url", mediaURL)
	return nil
}

// SendPhotoToMany рассылает фото всем получателям параллельно.
// Сбой одного получателя не прерывает остальных; результат каждого
// попадает либо в Succeeded, либо в Failed, в порядке входного списка.
func (m *MockMessenger) SendPhotoToMany(ctx context.Context, recipients []string, mediaURL, caption string) (*ports.ShareResult, error) {
	results := make([]error, len(recipients))

	var wg sync.WaitGroup
	for i, recipient := range recipients {
		wg.Add(1)
		go func(i int, recipient string) {
			defer wg.Done()
			results[i] = m.SendPhoto(ctx, recipient, mediaURL, caption)
		}(i, recipient)
	}
	wg.Wait()

	// Разбиение стабильно: порядок внутри каждой части повторяет входной список
	result := &ports.ShareResult{
		Succeeded: []string{},
		Failed:    []string{},
	}
	for i, recipient := range recipients {
		if results[i] == nil {
			result.Succeeded = append(result.Succeeded, recipient)
		} else {
			result.Failed = append(result.Failed, recipient)
		}
	}

	m.logger.Info("mock WhatsApp fan-out completed",
		"recipients", len(recipients),
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)
	return result, nil
}
