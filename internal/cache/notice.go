package cache

import "time"

// Level — уровень уведомления
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice — транзиентное уведомление о результате мутации (аналог toast
// в прототипе). Доставляется подписчикам канала Notices.
type Notice struct {
	Level     Level     `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notices возвращает канал уведомлений. Канал буферизован; при переполнении
// новые уведомления отбрасываются с предупреждением в лог.
func (s *Service) Notices() <-chan Notice {
	return s.notices
}

// Publish публикует уведомление, не блокируя вызывающего
func (s *Service) Publish(notice Notice) {
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now()
	}

	select {
	case s.notices <- notice:
	default:
		s.logger.Warn("notice channel full, dropping notice",
			"level", notice.Level,
			"message", notice.Message,
		)
	}
}
