package faceapi

import "github.com/GoArmGo/AlbumApp/internal/domain"

// DetectionResponse — ответ CompreFace на запрос детекции
type DetectionResponse struct {
	Result          []domain.DetectedFace `json:"result"`
	PluginsVersions map[string]string     `json:"plugins_versions"`
}
