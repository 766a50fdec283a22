package cache

import (
	"context"
)

// Mutation описывает протокол одной мутации: какие ключи затронуты и какие
// сообщения показать пользователю
type Mutation struct {
	// SuccessMessage называет затронутую сущность, например "Альбом создан"
	SuccessMessage string
	// FallbackError — сообщение по умолчанию для данной операции,
	// если ошибка шлюза пришла без текста
	FallbackError string
	// InvalidateKeys — конкретные ключи, данные которых могла изменить мутация
	InvalidateKeys []Key
	// InvalidateResources — ресурсы, инвалидируемые целиком (все родители)
	InvalidateResources []Resource
}

// Mutate выполняет мутацию по протоколу координатора:
//  1. вызвать операцию шлюза;
//  2. при успехе инвалидировать все затронутые ключи;
//  3. опубликовать ровно одно уведомление (успех или ошибка).
//
// Инвалидация происходит строго до публикации уведомления, чтобы любой
// перерисовавшийся по уведомлению подписчик уже не получил устаревших данных.
// Повторов операция не делает.
//
// Операция может вернуть собственный текст успеха (например, с числом
// найденных лиц); пустая строка означает "взять m.SuccessMessage".
func (s *Service) Mutate(ctx context.Context, m Mutation, op func(ctx context.Context) (string, error)) error {
	opMessage, err := op(ctx)
	if err != nil {
		message := err.Error()
		if message == "" {
			message = m.FallbackError
		}
		s.Publish(Notice{Level: LevelError, Title: "Error", Message: message})
		return err
	}

	s.Invalidate(m.InvalidateKeys...)
	for _, resource := range m.InvalidateResources {
		s.InvalidateResource(resource)
	}

	successMessage := m.SuccessMessage
	if opMessage != "" {
		successMessage = opMessage
	}
	s.Publish(Notice{Level: LevelSuccess, Title: "Success", Message: successMessage})
	return nil
}
