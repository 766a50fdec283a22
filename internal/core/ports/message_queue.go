package ports

import (
	"context"

	"github.com/GoArmGo/AlbumApp/internal/messaging/payloads"
)

// FaceAnnotationPublisher определяет методы для публикации задач аннотации лиц
// Этот интерфейс используется usecase'ом загрузки фото
type FaceAnnotationPublisher interface {
	PublishFaceAnnotationRequest(ctx context.Context, payload payloads.FaceAnnotationPayload) error
}

// FaceAnnotationConsumer определяет методы для потребления задач аннотации
// будет использоваться воркером для получения задач из очереди
type FaceAnnotationConsumer interface {
	// StartConsumingFaceAnnotationRequests начинает прослушивание очереди задач аннотации
	// принимает функцию-обработчик, которая будет вызываться для каждого полученного сообщения
	StartConsumingFaceAnnotationRequests(ctx context.Context, handler func(context.Context, payloads.FaceAnnotationPayload) error) error
}
