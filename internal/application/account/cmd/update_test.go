package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/onboardly/accounts-backend/internal/domain/account"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/tests/builders"
	"gitlab.com/onboardly/accounts-backend/tests/mocks"
)

type UpdateSuite struct {
	Handler     *UpdateHandler
	MockRepo    *mocks.AccountRepo
	MockStorage *mocks.ImageStorage
}

const testImageBaseURL = "http://localhost:9000/account-images"

func NewUpdateSuite() *UpdateSuite {
	mockRepo := mocks.NewAccountRepo()
	mockStorage := mocks.NewImageStorage()
	handler := NewUpdateHandler(UpdateHandlerArgs{
		Repo:         mockRepo,
		ImageStorage: mockStorage,
		ImageService: account.NewImageService(testImageBaseURL),
	})

	return &UpdateSuite{
		Handler:     handler,
		MockRepo:    mockRepo,
		MockStorage: mockStorage,
	}
}

func imageUpload() *ImageUpload {
	content := strings.Repeat("a", 200)
	return &ImageUpload{
		File:        strings.NewReader(content),
		Filename:    "avatar.jpg",
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
	}
}

func updateFrom(acc *account.Account) Update {
	return Update{
		AccountID:     acc.ID(),
		FirstName:     acc.FirstName(),
		LastName:      acc.LastName(),
		DateOfBirth:   acc.DateOfBirth(),
		StreetAddress: acc.StreetAddress(),
		PostalCode:    acc.PostalCode(),
		City:          acc.City(),
	}
}

func TestUpdateHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewUpdateSuite()
	acc := builders.NewAccountBuilder().Build()
	s.MockRepo.SeedAccount(t, acc)

	err := s.Handler.Handle(t.Context(), Update{
		AccountID:     acc.ID(),
		FirstName:     "Greta",
		LastName:      "Svensson",
		DateOfBirth:   time.Date(1990, 2, 1, 0, 0, 0, 0, time.UTC),
		StreetAddress: "Kungsgatan 3",
		PostalCode:    "41119",
		City:          "Göteborg",
	})
	require.NoError(t, err)

	got := s.MockRepo.AssertAccountExistsByID(t, acc.ID())
	require.NotNil(t, got)
	assert.Equal(t, "Greta", got.FirstName())
	assert.Equal(t, "Svensson", got.LastName())
	assert.Equal(t, "Göteborg", got.City())
	mocks.RequireEventExists(t, s.MockRepo.EventRepo, &account.Updated{})
}

func TestUpdateHandler_NilPhone_LeavesStoredValue(t *testing.T) {
	t.Parallel()

	s := NewUpdateSuite()
	acc := builders.NewAccountBuilder().WithPhoneNumber("+46700000001").Build()
	s.MockRepo.SeedAccount(t, acc)

	err := s.Handler.Handle(t.Context(), updateFrom(acc))
	require.NoError(t, err)

	got := s.MockRepo.AssertAccountExistsByID(t, acc.ID())
	require.NotNil(t, got)
	assert.Equal(t, "+46700000001", got.PhoneNumber())
}

func TestUpdateHandler_PhoneSet_OverwritesOnlyPhone(t *testing.T) {
	t.Parallel()

	s := NewUpdateSuite()
	acc := builders.NewAccountBuilder().WithPhoneNumber("+46700000001").Build()
	s.MockRepo.SeedAccount(t, acc)
	wantCity := acc.City()

	upd := updateFrom(acc)
	phone := "+46709999999"
	upd.PhoneNumber = &phone

	err := s.Handler.Handle(t.Context(), upd)
	require.NoError(t, err)

	got := s.MockRepo.AssertAccountExistsByID(t, acc.ID())
	require.NotNil(t, got)
	assert.Equal(t, phone, got.PhoneNumber())
	assert.Equal(t, wantCity, got.City())
}

func TestUpdateHandler_EmptyPhoneSet_ClearsPhone(t *testing.T) {
	t.Parallel()

	s := NewUpdateSuite()
	acc := builders.NewAccountBuilder().WithPhoneNumber("+46700000001").Build()
	s.MockRepo.SeedAccount(t, acc)

	upd := updateFrom(acc)
	empty := ""
	upd.PhoneNumber = &empty

	err := s.Handler.Handle(t.Context(), upd)
	require.NoError(t, err)

	got := s.MockRepo.AssertAccountExistsByID(t, acc.ID())
	require.NotNil(t, got)
	assert.Empty(t, got.PhoneNumber())
}

func TestUpdateHandler_NewImage_RemovesReplacedObject(t *testing.T) {
	t.Parallel()

	s := NewUpdateSuite()
	acc := builders.NewAccountBuilder().
		WithProfileImageURL(testImageBaseURL + "/profiles/1/old.jpg").
		Build()
	s.MockRepo.SeedAccount(t, acc)

	upd := updateFrom(acc)
	upd.Image = imageUpload()

	err := s.Handler.Handle(t.Context(), upd)
	require.NoError(t, err)

	got := s.MockRepo.AssertAccountExistsByID(t, acc.ID())
	require.NotNil(t, got)
	assert.NotEqual(t, testImageBaseURL+"/profiles/1/old.jpg", got.ProfileImageURL())
	assert.True(t, strings.HasPrefix(got.ProfileImageURL(), testImageBaseURL+"/profiles/"))

	require.Len(t, s.MockStorage.UploadedKeys(), 1)
	assert.Equal(t, []string{"profiles/1/old.jpg"}, s.MockStorage.DeletedKeys())
}

func TestUpdateHandler_NewImage_PlaceholderNeverDeleted(t *testing.T) {
	t.Parallel()

	s := NewUpdateSuite()
	acc := builders.NewAccountBuilder().Build()
	s.MockRepo.SeedAccount(t, acc)

	upd := updateFrom(acc)
	upd.Image = imageUpload()

	err := s.Handler.Handle(t.Context(), upd)
	require.NoError(t, err)

	s.MockStorage.AssertDeleteCount(t, 0)
}

func TestUpdateHandler_ReplacedImageDeleteFails_UpdateStillSucceeds(t *testing.T) {
	t.Parallel()

	s := NewUpdateSuite()
	acc := builders.NewAccountBuilder().
		WithProfileImageURL(testImageBaseURL + "/profiles/1/old.jpg").
		Build()
	s.MockRepo.SeedAccount(t, acc)
	s.MockStorage.DeleteErr = errorx.NewUpstreamError()

	upd := updateFrom(acc)
	upd.Image = imageUpload()

	err := s.Handler.Handle(t.Context(), upd)
	require.NoError(t, err)

	got := s.MockRepo.AssertAccountExistsByID(t, acc.ID())
	require.NotNil(t, got)
	assert.True(t, strings.HasPrefix(got.ProfileImageURL(), testImageBaseURL+"/profiles/"))
}

func TestUpdateHandler_InvalidImageType(t *testing.T) {
	t.Parallel()

	s := NewUpdateSuite()
	acc := builders.NewAccountBuilder().Build()
	s.MockRepo.SeedAccount(t, acc)

	upd := updateFrom(acc)
	img := imageUpload()
	img.ContentType = "application/pdf"
	upd.Image = img

	err := s.Handler.Handle(t.Context(), upd)
	require.Error(t, err)
	assert.Empty(t, s.MockStorage.UploadedKeys())
}

func TestUpdateHandler_NotFound(t *testing.T) {
	t.Parallel()

	s := NewUpdateSuite()

	upd := updateFrom(builders.NewAccountBuilder().Build())
	err := s.Handler.Handle(t.Context(), upd)
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}
