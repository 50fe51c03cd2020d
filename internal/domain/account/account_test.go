package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNewAccountArgs() NewAccountArgs {
	return NewAccountArgs{
		UserID:        "a3c9f3f0-7e61-4a7b-9a44-6d9e3a1f0c2b",
		FirstName:     "Astrid",
		LastName:      "Lindqvist",
		DateOfBirth:   time.Date(1994, 6, 15, 0, 0, 0, 0, time.UTC),
		PhoneNumber:   "+46701234567",
		StreetAddress: "Storgatan 12",
		PostalCode:    "11455",
		City:          "Stockholm",
	}
}

func TestNewAccount(t *testing.T) {
	t.Parallel()

	args := validNewAccountArgs()
	acc, err := NewAccount(args)
	require.NoError(t, err)

	assert.False(t, acc.ID().IsZero())
	assert.Equal(t, args.UserID, acc.UserID())
	assert.Equal(t, "Astrid", acc.FirstName())
	assert.Equal(t, "Lindqvist", acc.LastName())
	assert.Equal(t, args.DateOfBirth, acc.DateOfBirth())
	assert.Equal(t, "Stockholm", acc.City())
	assert.False(t, acc.CreatedAt().IsZero())
	assert.Equal(t, acc.CreatedAt(), acc.UpdatedAt())

	events := acc.GetUncommittedEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*Created)
	require.True(t, ok)
	assert.Equal(t, acc.ID(), created.AccountID)
	assert.Equal(t, args.UserID, created.UserID)
}

func TestNewAccount_MissingUserID(t *testing.T) {
	t.Parallel()

	args := validNewAccountArgs()
	args.UserID = ""

	_, err := NewAccount(args)
	require.ErrorIs(t, err, ErrMissingUserID)
}

func TestNewAccount_MissingName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*NewAccountArgs)
	}{
		{name: "no first name", mutate: func(a *NewAccountArgs) { a.FirstName = "" }},
		{name: "no last name", mutate: func(a *NewAccountArgs) { a.LastName = "" }},
		{name: "no date of birth", mutate: func(a *NewAccountArgs) { a.DateOfBirth = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := validNewAccountArgs()
			tt.mutate(&args)

			_, err := NewAccount(args)
			assert.Error(t, err)
		})
	}
}

func TestNewAccount_NoImage_UsesPlaceholder(t *testing.T) {
	t.Parallel()

	acc, err := NewAccount(validNewAccountArgs())
	require.NoError(t, err)
	assert.Equal(t, PlaceholderImageURL, acc.ProfileImageURL())
}

func TestNewAccount_WithImage(t *testing.T) {
	t.Parallel()

	args := validNewAccountArgs()
	args.ProfileImageURL = "https://cdn.example.com/avatars/astrid.jpg"

	acc, err := NewAccount(args)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/astrid.jpg", acc.ProfileImageURL())
}

func TestApplyChange(t *testing.T) {
	t.Parallel()

	acc, err := NewAccount(validNewAccountArgs())
	require.NoError(t, err)
	acc.MarkEventsAsCommitted()

	err = acc.ApplyChange(Changeset{
		FirstName:     "Greta",
		LastName:      "Svensson",
		DateOfBirth:   time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		StreetAddress: "Avenyn 3",
		PostalCode:    "41136",
		City:          "Göteborg",
	})
	require.NoError(t, err)

	assert.Equal(t, "Greta", acc.FirstName())
	assert.Equal(t, "Svensson", acc.LastName())
	assert.Equal(t, "Göteborg", acc.City())

	events := acc.GetUncommittedEvents()
	require.Len(t, events, 1)
	assert.IsType(t, &Updated{}, events[0])
}

func TestApplyChange_NilPhone_KeepsStoredValue(t *testing.T) {
	t.Parallel()

	acc, err := NewAccount(validNewAccountArgs())
	require.NoError(t, err)

	err = acc.ApplyChange(Changeset{
		FirstName:   acc.FirstName(),
		LastName:    acc.LastName(),
		DateOfBirth: acc.DateOfBirth(),
	})
	require.NoError(t, err)
	assert.Equal(t, "+46701234567", acc.PhoneNumber())
}

func TestApplyChange_EmptyPhone_Clears(t *testing.T) {
	t.Parallel()

	acc, err := NewAccount(validNewAccountArgs())
	require.NoError(t, err)

	empty := ""
	err = acc.ApplyChange(Changeset{
		FirstName:   acc.FirstName(),
		LastName:    acc.LastName(),
		DateOfBirth: acc.DateOfBirth(),
		PhoneNumber: &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, acc.PhoneNumber())
}

func TestApplyChange_EmptyImage_RevertsToPlaceholder(t *testing.T) {
	t.Parallel()

	args := validNewAccountArgs()
	args.ProfileImageURL = "https://cdn.example.com/avatars/astrid.jpg"
	acc, err := NewAccount(args)
	require.NoError(t, err)

	empty := ""
	err = acc.ApplyChange(Changeset{
		FirstName:       acc.FirstName(),
		LastName:        acc.LastName(),
		DateOfBirth:     acc.DateOfBirth(),
		ProfileImageURL: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, PlaceholderImageURL, acc.ProfileImageURL())
}

func TestApplyChange_MissingName(t *testing.T) {
	t.Parallel()

	acc, err := NewAccount(validNewAccountArgs())
	require.NoError(t, err)

	err = acc.ApplyChange(Changeset{LastName: "Svensson", DateOfBirth: acc.DateOfBirth()})
	assert.Error(t, err)
}

func TestMarkDeleted(t *testing.T) {
	t.Parallel()

	acc, err := NewAccount(validNewAccountArgs())
	require.NoError(t, err)
	acc.MarkEventsAsCommitted()

	acc.MarkDeleted()

	events := acc.GetUncommittedEvents()
	require.Len(t, events, 1)
	deleted, ok := events[0].(*Deleted)
	require.True(t, ok)
	assert.Equal(t, acc.ID(), deleted.AccountID)
	assert.Equal(t, acc.UserID(), deleted.UserID)
}

func TestRehydrateAccount(t *testing.T) {
	t.Parallel()

	id := NewID()
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	acc := RehydrateAccount(RehydrateAccountArgs{
		ID:          id,
		UserID:      "a3c9f3f0-7e61-4a7b-9a44-6d9e3a1f0c2b",
		FirstName:   "Astrid",
		LastName:    "Lindqvist",
		DateOfBirth: time.Date(1994, 6, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   created,
		UpdatedAt:   created,
	})

	assert.Equal(t, id, acc.ID())
	assert.Equal(t, created, acc.CreatedAt())
	assert.Equal(t, PlaceholderImageURL, acc.ProfileImageURL())
	assert.Empty(t, acc.GetUncommittedEvents())
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id := NewID()

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)
}
