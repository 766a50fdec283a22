package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type photoFixture struct {
	albums    *fakeAlbumStorage
	photos    *fakePhotoStorage
	files     *fakeFileStorage
	detector  *fakeDetector
	publisher *fakePublisher
	uc        PhotoUseCase
	albumID   uuid.UUID
	actorID   uuid.UUID
}

func newPhotoFixture(t *testing.T) *photoFixture {
	t.Helper()

	f := &photoFixture{
		albums:    newFakeAlbumStorage(),
		photos:    newFakePhotoStorage(),
		files:     newFakeFileStorage(),
		detector:  &fakeDetector{},
		publisher: &fakePublisher{},
		actorID:   uuid.New(),
	}
	f.uc = NewPhotoUseCase(f.photos, f.albums, f.files, f.detector, f.publisher, discardLogger())

	album := &domain.Album{Name: "Отпуск", CreatedBy: f.actorID}
	require.NoError(t, f.albums.SaveAlbum(context.Background(), album))
	f.albumID = album.ID

	return f
}

func (f *photoFixture) uploadInput(content string) UploadInput {
	return UploadInput{
		AlbumID:  f.albumID,
		FileName: "beach.jpg",
		FileSize: int64(len(content)),
		MimeType: "image/jpeg",
		Content:  strings.NewReader(content),
	}
}

func TestUploadPhotoRoundTrip(t *testing.T) {
	f := newPhotoFixture(t)
	f.detector.faces = testFaces(t, 2)

	result, err := f.uc.UploadPhoto(context.Background(), f.actorID, f.uploadInput("jpeg-bytes"))
	require.NoError(t, err)

	assert.True(t, result.Annotated)
	assert.Equal(t, 2, result.FacesDetected)

	photo := result.Photo
	assert.Equal(t, f.albumID, photo.AlbumID)
	assert.Equal(t, f.actorID, photo.UploadedBy)
	assert.Equal(t, "beach.jpg", photo.FileName)
	assert.Equal(t, "image/jpeg", photo.MimeType)
	assert.Equal(t, int64(len("jpeg-bytes")), photo.FileSize)
	assert.Len(t, photo.DetectedFaces, 2)

	// Ключ объекта: <id загрузившего>/<метка>.<расширение>
	assert.True(t, strings.HasPrefix(photo.ObjectKey, f.actorID.String()+"/"))
	assert.True(t, strings.HasSuffix(photo.ObjectKey, ".jpg"))
	assert.Equal(t, "http://files.test/"+photo.ObjectKey, photo.FileURL)

	// Байты дошли до объектного хранилища без искажений
	assert.Equal(t, []byte("jpeg-bytes"), f.files.objects[photo.ObjectKey])

	// Аннотация прошла инлайн, воркеру делать нечего
	assert.Empty(t, f.publisher.published)
}

func TestUploadPhotoRequiresAuth(t *testing.T) {
	f := newPhotoFixture(t)

	_, err := f.uc.UploadPhoto(context.Background(), uuid.Nil, f.uploadInput("x"))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, f.files.objects, "до эффектов дело не доходит")
}

func TestUploadPhotoAlbumMissing(t *testing.T) {
	f := newPhotoFixture(t)

	input := f.uploadInput("x")
	input.AlbumID = uuid.New()

	_, err := f.uc.UploadPhoto(context.Background(), f.actorID, input)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadPhotoInsertFailureLeavesObject(t *testing.T) {
	f := newPhotoFixture(t)
	f.photos.failSave = true

	_, err := f.uc.UploadPhoto(context.Background(), f.actorID, f.uploadInput("x"))
	require.Error(t, err)

	// Частичное состояние наблюдаемо: объект уже в хранилище, отката нет
	assert.Len(t, f.files.objects, 1)
	assert.Empty(t, f.photos.photos)
}

func TestUploadPhotoDetectorFailureDefersToWorker(t *testing.T) {
	f := newPhotoFixture(t)
	f.detector.err = errors.New("детектор упал")

	result, err := f.uc.UploadPhoto(context.Background(), f.actorID, f.uploadInput("x"))
	require.NoError(t, err, "сбой аннотации не роняет загрузку")

	assert.False(t, result.Annotated)
	assert.Zero(t, result.FacesDetected)

	require.Len(t, f.publisher.published, 1)
	task := f.publisher.published[0]
	assert.Equal(t, result.Photo.ID, task.PhotoID)
	assert.Equal(t, result.Photo.ObjectKey, task.ObjectKey)
}

func TestUploadPhotoPublishFailureStillSucceeds(t *testing.T) {
	f := newPhotoFixture(t)
	f.detector.err = errors.New("детектор упал")
	f.publisher.err = errors.New("брокер недоступен")

	result, err := f.uc.UploadPhoto(context.Background(), f.actorID, f.uploadInput("x"))
	require.NoError(t, err)
	assert.False(t, result.Annotated)
}

func TestAnnotatePhotoWorkerPath(t *testing.T) {
	f := newPhotoFixture(t)
	f.detector.faces = testFaces(t, 3)

	photo := &domain.Photo{AlbumID: f.albumID, UploadedBy: f.actorID, ObjectKey: "key/1.jpg"}
	require.NoError(t, f.photos.SavePhoto(context.Background(), photo))
	f.files.objects["key/1.jpg"] = []byte("jpeg-bytes")

	count, err := f.uc.AnnotatePhoto(context.Background(), photo.ID, photo.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	stored, err := f.photos.GetPhotoByID(context.Background(), photo.ID)
	require.NoError(t, err)
	assert.Len(t, stored.DetectedFaces, 3)
}

func TestAnnotatePhotoGoneBeforeTask(t *testing.T) {
	f := newPhotoFixture(t)
	f.detector.faces = testFaces(t, 1)
	f.files.objects["key/2.jpg"] = []byte("jpeg-bytes")

	// Фото удалили, пока задача ждала в очереди
	count, err := f.uc.AnnotatePhoto(context.Background(), uuid.New(), "key/2.jpg")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeletePhotoRemovesRowAndObject(t *testing.T) {
	f := newPhotoFixture(t)
	f.detector.faces = testFaces(t, 1)

	result, err := f.uc.UploadPhoto(context.Background(), f.actorID, f.uploadInput("x"))
	require.NoError(t, err)

	require.NoError(t, f.uc.DeletePhoto(context.Background(), f.actorID, result.Photo.ID))

	assert.Empty(t, f.photos.photos)
	assert.Empty(t, f.files.objects)
}

func TestPhotoLifecycle(t *testing.T) {
	f := newPhotoFixture(t)
	f.detector.faces = testFaces(t, 1)

	result, err := f.uc.UploadPhoto(context.Background(), f.actorID, f.uploadInput("кадр"))
	require.NoError(t, err)

	photos, err := f.uc.ListPhotos(context.Background(), f.albumID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, result.Photo.ID, photos[0].ID)

	require.NoError(t, f.uc.DeletePhoto(context.Background(), f.actorID, result.Photo.ID))

	photos, err = f.uc.ListPhotos(context.Background(), f.albumID)
	require.NoError(t, err)
	assert.Empty(t, photos)
}
