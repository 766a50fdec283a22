package payloads

import "github.com/google/uuid"

// FaceAnnotationPayload — задача аннотации лиц для воркера
type FaceAnnotationPayload struct {
	PhotoID   uuid.UUID `json:"photo_id"`
	AlbumID   uuid.UUID `json:"album_id"`
	ObjectKey string    `json:"object_key"`
	FileURL   string    `json:"file_url"`
}
