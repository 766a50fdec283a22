package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/cache"
	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/GoArmGo/AlbumApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePhotoUseCase struct {
	result *usecase.UploadResult
	err    error
	got    usecase.UploadInput
}

func (f *fakePhotoUseCase) UploadPhoto(ctx context.Context, actorID uuid.UUID, input usecase.UploadInput) (*usecase.UploadResult, error) {
	if actorID == uuid.Nil {
		return nil, usecase.ErrNotAuthenticated
	}
	f.got = input
	return f.result, f.err
}

func (f *fakePhotoUseCase) ListPhotos(ctx context.Context, albumID uuid.UUID) ([]domain.Photo, error) {
	return nil, nil
}

func (f *fakePhotoUseCase) GetPhoto(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	return nil, usecase.ErrNotFound
}

func (f *fakePhotoUseCase) DeletePhoto(ctx context.Context, actorID, id uuid.UUID) error {
	return nil
}

func (f *fakePhotoUseCase) AnnotatePhoto(ctx context.Context, photoID uuid.UUID, objectKey string) (int, error) {
	return 0, nil
}

func multipartBody(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func newPhotoTestRouter(uc usecase.PhotoUseCase) (*chi.Mux, *cache.Service) {
	logger := discardLogger()
	cacheSvc := cache.NewService(0, logger)
	h := NewPhotoHandler(uc, cacheSvc, logger)

	r := chi.NewRouter()
	r.Use(WithUser(logger))
	r.Post("/groups/{groupID}/photos", h.UploadPhoto)
	return r, cacheSvc
}

func TestUploadPhotoNoticeNamesFaceCount(t *testing.T) {
	uc := &fakePhotoUseCase{result: &usecase.UploadResult{
		Photo:         &domain.Photo{ID: uuid.New(), FileName: "beach.jpg"},
		Annotated:     true,
		FacesDetected: 2,
	}}
	r, cacheSvc := newPhotoTestRouter(uc)

	body, contentType := multipartBody(t, "beach.jpg", "jpeg-bytes")
	req := httptest.NewRequest(http.MethodPost, "/groups/"+uuid.NewString()+"/photos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "beach.jpg", uc.got.FileName)

	notice := requireNotice(t, cacheSvc)
	assert.Equal(t, cache.LevelSuccess, notice.Level)
	assert.Equal(t, "Фото успешно загружено! Обнаружено лиц: 2", notice.Message)
}

func TestUploadPhotoNoticeWithoutAnnotation(t *testing.T) {
	uc := &fakePhotoUseCase{result: &usecase.UploadResult{
		Photo: &domain.Photo{ID: uuid.New(), FileName: "beach.jpg"},
	}}
	r, cacheSvc := newPhotoTestRouter(uc)

	body, contentType := multipartBody(t, "beach.jpg", "jpeg-bytes")
	req := httptest.NewRequest(http.MethodPost, "/groups/"+uuid.NewString()+"/photos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	// Аннотация отложена воркеру: число лиц в сообщении не упоминается
	notice := requireNotice(t, cacheSvc)
	assert.Equal(t, "Фото успешно загружено!", notice.Message)
}

func TestUploadPhotoNoticeZeroFacesNotMentioned(t *testing.T) {
	uc := &fakePhotoUseCase{result: &usecase.UploadResult{
		Photo:         &domain.Photo{ID: uuid.New(), FileName: "beach.jpg"},
		Annotated:     true,
		FacesDetected: 0,
	}}
	r, cacheSvc := newPhotoTestRouter(uc)

	body, contentType := multipartBody(t, "beach.jpg", "jpeg-bytes")
	req := httptest.NewRequest(http.MethodPost, "/groups/"+uuid.NewString()+"/photos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	// Лиц не нашлось — ноль в сообщении не упоминается
	notice := requireNotice(t, cacheSvc)
	assert.Equal(t, "Фото успешно загружено!", notice.Message)
}

func TestUploadPhotoWithoutFile(t *testing.T) {
	r, cacheSvc := newPhotoTestRouter(&fakePhotoUseCase{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/groups/"+uuid.NewString()+"/photos", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	select {
	case notice := <-cacheSvc.Notices():
		t.Fatalf("блокировка формы не публикует уведомлений: %+v", notice)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUploadPhotoInvalidatesAlbumPhotos(t *testing.T) {
	albumID := uuid.New()
	uc := &fakePhotoUseCase{result: &usecase.UploadResult{
		Photo: &domain.Photo{ID: uuid.New(), AlbumID: albumID},
	}}
	r, cacheSvc := newPhotoTestRouter(uc)

	key := cache.Key{Resource: cache.ResourcePhotos, Parent: albumID}
	_, err := cacheSvc.Get(context.Background(), key, func(ctx context.Context) (interface{}, error) {
		return []domain.Photo{}, nil
	})
	require.NoError(t, err)

	body, contentType := multipartBody(t, "beach.jpg", "jpeg-bytes")
	req := httptest.NewRequest(http.MethodPost, "/groups/"+albumID.String()+"/photos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, cacheSvc.IsStale(key))
}
