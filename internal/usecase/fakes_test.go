package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/core/ports"
	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/GoArmGo/AlbumApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

// Фейки хранилищ и внешних сервисов для тестов сценариев.
// Поведение повторяет контракты портов: отсутствующая запись — (nil, nil),
// порядок списков — по убыванию created_at.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAlbumStorage struct {
	albums  map[uuid.UUID]*domain.Album
	failOps bool
}

func newFakeAlbumStorage() *fakeAlbumStorage {
	return &fakeAlbumStorage{albums: make(map[uuid.UUID]*domain.Album)}
}

func (f *fakeAlbumStorage) SaveAlbum(ctx context.Context, album *domain.Album) error {
	if f.failOps {
		return errors.New("хранилище недоступно")
	}
	if album.ID == uuid.Nil {
		album.ID = uuid.New()
	}
	album.CreatedAt = time.Now()
	copied := *album
	f.albums[album.ID] = &copied
	return nil
}

func (f *fakeAlbumStorage) GetAlbumByID(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	if f.failOps {
		return nil, errors.New("хранилище недоступно")
	}
	album, ok := f.albums[id]
	if !ok {
		return nil, nil
	}
	copied := *album
	return &copied, nil
}

func (f *fakeAlbumStorage) ListAlbums(ctx context.Context) ([]domain.Album, error) {
	albums := make([]domain.Album, 0, len(f.albums))
	for _, album := range f.albums {
		albums = append(albums, *album)
	}
	sort.Slice(albums, func(i, j int) bool { return albums[i].CreatedAt.After(albums[j].CreatedAt) })
	return albums, nil
}

func (f *fakeAlbumStorage) UpdateAlbum(ctx context.Context, id uuid.UUID, upd domain.AlbumUpdate) (*domain.Album, error) {
	album, ok := f.albums[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		album.Name = *upd.Name
	}
	if upd.Description != nil {
		album.Description = *upd.Description
	}
	if upd.CoverPhotoURL != nil {
		album.CoverPhotoURL = *upd.CoverPhotoURL
	}
	copied := *album
	return &copied, nil
}

func (f *fakeAlbumStorage) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	delete(f.albums, id)
	return nil
}

type fakeMemberStorage struct {
	members map[uuid.UUID]*domain.Member
}

func newFakeMemberStorage() *fakeMemberStorage {
	return &fakeMemberStorage{members: make(map[uuid.UUID]*domain.Member)}
}

func (f *fakeMemberStorage) SaveMember(ctx context.Context, member *domain.Member) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	member.CreatedAt = time.Now()
	copied := *member
	f.members[member.ID] = &copied
	return nil
}

func (f *fakeMemberStorage) GetMemberByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	copied := *member
	return &copied, nil
}

func (f *fakeMemberStorage) ListMembersByAlbum(ctx context.Context, albumID uuid.UUID) ([]domain.Member, error) {
	var members []domain.Member
	for _, member := range f.members {
		if member.AlbumID == albumID {
			members = append(members, *member)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt.After(members[j].CreatedAt) })
	return members, nil
}

func (f *fakeMemberStorage) UpdateMember(ctx context.Context, id uuid.UUID, upd domain.MemberUpdate) (*domain.Member, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		member.Name = *upd.Name
	}
	if upd.PhoneNumber != nil {
		member.PhoneNumber = *upd.PhoneNumber
	}
	if upd.ProfilePictureURL != nil {
		member.ProfilePictureURL = *upd.ProfilePictureURL
	}
	copied := *member
	return &copied, nil
}

func (f *fakeMemberStorage) DeleteMember(ctx context.Context, id uuid.UUID) error {
	delete(f.members, id)
	return nil
}

func (f *fakeMemberStorage) SearchMembers(ctx context.Context, query string) ([]domain.Member, error) {
	lowered := strings.ToLower(query)
	var members []domain.Member
	for _, member := range f.members {
		if strings.Contains(strings.ToLower(member.Name), lowered) ||
			strings.Contains(member.PhoneNumber, query) {
			members = append(members, *member)
		}
	}
	return members, nil
}

type fakePhotoStorage struct {
	photos   map[uuid.UUID]*domain.Photo
	failSave bool
}

func newFakePhotoStorage() *fakePhotoStorage {
	return &fakePhotoStorage{photos: make(map[uuid.UUID]*domain.Photo)}
}

func (f *fakePhotoStorage) SavePhoto(ctx context.Context, photo *domain.Photo) error {
	if f.failSave {
		return errors.New("вставка не удалась")
	}
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	photo.CreatedAt = time.Now()
	copied := *photo
	f.photos[photo.ID] = &copied
	return nil
}

func (f *fakePhotoStorage) GetPhotoByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	photo, ok := f.photos[id]
	if !ok {
		return nil, nil
	}
	copied := *photo
	return &copied, nil
}

func (f *fakePhotoStorage) ListPhotosByAlbum(ctx context.Context, albumID uuid.UUID) ([]domain.Photo, error) {
	var photos []domain.Photo
	for _, photo := range f.photos {
		if photo.AlbumID == albumID {
			photos = append(photos, *photo)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].CreatedAt.After(photos[j].CreatedAt) })
	return photos, nil
}

func (f *fakePhotoStorage) UpdateDetectedFaces(ctx context.Context, id uuid.UUID, faces domain.FaceList) (*domain.Photo, error) {
	photo, ok := f.photos[id]
	if !ok {
		return nil, nil
	}
	photo.DetectedFaces = faces
	copied := *photo
	return &copied, nil
}

func (f *fakePhotoStorage) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	delete(f.photos, id)
	return nil
}

type fakeFileStorage struct {
	objects    map[string][]byte
	failUpload bool
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{objects: make(map[string][]byte)}
}

func (f *fakeFileStorage) UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error) {
	if f.failUpload {
		return "", errors.New("S3 недоступен")
	}
	data, err := io.ReadAll(fileContent)
	if err != nil {
		return "", err
	}
	f.objects[objectKey] = data
	return "http://files.test/" + objectKey, nil
}

func (f *fakeFileStorage) GetFile(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	data, ok := f.objects[objectKey]
	if !ok {
		return nil, errors.New("объект не найден")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFileStorage) DeleteFile(ctx context.Context, objectKey string) error {
	delete(f.objects, objectKey)
	return nil
}

type fakeDetector struct {
	faces domain.FaceList
	err   error
}

func (f *fakeDetector) DetectFaces(ctx context.Context, image io.Reader) (domain.FaceList, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.faces, nil
}

type fakePublisher struct {
	published []payloads.FaceAnnotationPayload
	err       error
}

func (f *fakePublisher) PublishFaceAnnotationRequest(ctx context.Context, payload payloads.FaceAnnotationPayload) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, payload)
	return nil
}

type fakeMessenger struct {
	result *ports.ShareResult
	gotURL string
}

func (f *fakeMessenger) SendPhoto(ctx context.Context, recipient, mediaURL, caption string) error {
	return nil
}

func (f *fakeMessenger) SendPhotoToMany(ctx context.Context, recipients []string, mediaURL, caption string) (*ports.ShareResult, error) {
	f.gotURL = mediaURL
	if f.result != nil {
		return f.result, nil
	}
	return &ports.ShareResult{Succeeded: append([]string{}, recipients...), Failed: []string{}}, nil
}

// testFaces возвращает n минимальных валидных дескрипторов
func testFaces(t *testing.T, n int) domain.FaceList {
	t.Helper()
	faces := make(domain.FaceList, 0, n)
	for i := 0; i < n; i++ {
		faces = append(faces, domain.DetectedFace{
			Box: domain.BoundingBox{Probability: 0.9, XMin: 50, YMin: 50, XMax: 200, YMax: 200},
		})
	}
	return faces
}
