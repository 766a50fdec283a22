package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/config"
	"github.com/GoArmGo/AlbumApp/internal/domain"
)

const detectionPath = "/api/v1/detection/detect"

// Client представляет клиент для взаимодействия с CompreFace API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient создает новый экземпляр клиента CompreFace.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.FaceAPI.BaseURL,
		apiKey:     cfg.FaceAPI.APIKey,
	}
}

// DetectFaces отправляет изображение в CompreFace и возвращает дескрипторы найденных лиц.
// Пустой список — нормальный результат (лиц не нашлось).
func (c *Client) DetectFaces(ctx context.Context, image io.Reader) (domain.FaceList, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "upload")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания multipart-формы: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("ошибка записи изображения в форму: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("ошибка закрытия multipart-формы: %w", err)
	}

	endpoint := c.baseURL + detectionPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP-запроса: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения HTTP-запроса к CompreFace: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("compreFace API вернул статус %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var detection DetectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&detection); err != nil {
		return nil, fmt.Errorf("ошибка декодирования JSON ответа CompreFace: %w", err)
	}

	return domain.FaceList(detection.Result), nil
}
