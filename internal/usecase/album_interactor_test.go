package usecase

import (
	"context"
	"testing"

	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAlbum(t *testing.T) {
	storage := newFakeAlbumStorage()
	uc := NewAlbumUseCase(storage, discardLogger())
	actorID := uuid.New()

	album, err := uc.CreateAlbum(context.Background(), actorID, "  Отпуск 2026  ", "море")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, album.ID)
	assert.Equal(t, "Отпуск 2026", album.Name, "имя нормализуется")
	assert.Equal(t, actorID, album.CreatedBy)
}

func TestCreateAlbumRequiresAuth(t *testing.T) {
	uc := NewAlbumUseCase(newFakeAlbumStorage(), discardLogger())

	_, err := uc.CreateAlbum(context.Background(), uuid.Nil, "Отпуск", "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCreateAlbumRequiresName(t *testing.T) {
	storage := newFakeAlbumStorage()
	uc := NewAlbumUseCase(storage, discardLogger())

	_, err := uc.CreateAlbum(context.Background(), uuid.New(), "   ", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, storage.albums, "до шлюза запрос не доходит")
}

func TestGetAlbumNotFound(t *testing.T) {
	uc := NewAlbumUseCase(newFakeAlbumStorage(), discardLogger())

	_, err := uc.GetAlbum(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAlbumPartial(t *testing.T) {
	storage := newFakeAlbumStorage()
	uc := NewAlbumUseCase(storage, discardLogger())
	actorID := uuid.New()

	created, err := uc.CreateAlbum(context.Background(), actorID, "Отпуск", "старое описание")
	require.NoError(t, err)

	newName := "Отпуск 2026"
	updated, err := uc.UpdateAlbum(context.Background(), actorID, created.ID, domain.AlbumUpdate{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Отпуск 2026", updated.Name)
	assert.Equal(t, "старое описание", updated.Description, "незаданные поля не трогаются")
}

func TestUpdateAlbumRejectsEmptyName(t *testing.T) {
	uc := NewAlbumUseCase(newFakeAlbumStorage(), discardLogger())

	empty := ""
	_, err := uc.UpdateAlbum(context.Background(), uuid.New(), uuid.New(), domain.AlbumUpdate{Name: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteAlbumRequiresAuth(t *testing.T) {
	uc := NewAlbumUseCase(newFakeAlbumStorage(), discardLogger())

	err := uc.DeleteAlbum(context.Background(), uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
