package usecase

import (
	"context"
	"testing"

	"github.com/GoArmGo/AlbumApp/internal/adapter/notify"
	"github.com/GoArmGo/AlbumApp/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShareFixture() (ShareUseCase, *fakePhotoStorage, *fakeMessenger) {
	photos := newFakePhotoStorage()
	messenger := &fakeMessenger{}
	uc := NewShareUseCase(photos, notify.NewMockOTPNotifierNoDelay(discardLogger()), messenger, discardLogger())
	return uc, photos, messenger
}

func TestSendAndVerifyOTP(t *testing.T) {
	uc, _, _ := newShareFixture()

	session, err := uc.SendOTP(context.Background(), "+79001234567")
	require.NoError(t, err)
	require.NotEmpty(t, session.SessionID)

	ok, err := uc.VerifyOTP(context.Background(), session.PhoneNumber, "123456", session.SessionID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.VerifyOTP(context.Background(), session.PhoneNumber, "999999", session.SessionID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSendOTPRequiresPhone(t *testing.T) {
	uc, _, _ := newShareFixture()

	_, err := uc.SendOTP(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSharePhotoSendsFileURL(t *testing.T) {
	uc, photos, messenger := newShareFixture()

	photo := &domain.Photo{AlbumID: uuid.New(), FileURL: "http://files.test/u/1.jpg"}
	require.NoError(t, photos.SavePhoto(context.Background(), photo))

	result, err := uc.SharePhoto(context.Background(), uuid.New(), photo.ID, []string{"+7-A", "+7-B"}, "смотри")
	require.NoError(t, err)

	assert.Equal(t, []string{"+7-A", "+7-B"}, result.Succeeded)
	assert.Equal(t, "http://files.test/u/1.jpg", messenger.gotURL, "получателям уходит публичный URL фото")
}

func TestSharePhotoMissingPhoto(t *testing.T) {
	uc, _, _ := newShareFixture()

	_, err := uc.SharePhoto(context.Background(), uuid.New(), uuid.New(), []string{"+7-A"}, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSharePhotoRequiresRecipients(t *testing.T) {
	uc, _, _ := newShareFixture()

	_, err := uc.SharePhoto(context.Background(), uuid.New(), uuid.New(), nil, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSharePhotoRequiresAuth(t *testing.T) {
	uc, _, _ := newShareFixture()

	_, err := uc.SharePhoto(context.Background(), uuid.Nil, uuid.New(), []string{"+7-A"}, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
