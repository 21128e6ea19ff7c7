package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameboxd/backend/internal/rawg"
	"gameboxd/backend/internal/store"
)

func TestCreateListDefaultsToPrivate(t *testing.T) {
	st := store.NewMemory()
	svc := NewListService(st, nil)
	alice := seedUser(t, st, "a@x.com")

	list, err := svc.Create("  Backlog  ", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backlog", list.Name)
	assert.False(t, list.IsPublic)

	_, err = svc.Create("   ", alice.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListVisibility(t *testing.T) {
	st := store.NewMemory()
	svc := NewListService(st, nil)
	alice := seedUser(t, st, "a@x.com")
	bob := seedUser(t, st, "b@x.com")

	list, err := svc.Create("Backlog", alice.ID)
	require.NoError(t, err)

	// Owner sees it, anyone else gets not found.
	_, err = svc.ByID(context.Background(), list.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.ByID(context.Background(), list.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ByID(context.Background(), list.ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	public := true
	_, err = svc.Update(list.ID, alice.ID, UpdateListInput{IsPublic: &public})
	require.NoError(t, err)

	got, err := svc.ByID(context.Background(), list.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublic)
}

func TestUpdateListScopedToOwner(t *testing.T) {
	st := store.NewMemory()
	svc := NewListService(st, nil)
	alice := seedUser(t, st, "a@x.com")
	bob := seedUser(t, st, "b@x.com")

	list, err := svc.Create("Backlog", alice.ID)
	require.NoError(t, err)

	name := "Stolen"
	_, err = svc.Update(list.ID, bob.ID, UpdateListInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	empty := " "
	_, err = svc.Update(list.ID, alice.ID, UpdateListInput{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name = "Favorites"
	updated, err := svc.Update(list.ID, alice.ID, UpdateListInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Favorites", updated.Name)
}

func TestAddGameToList(t *testing.T) {
	st := store.NewMemory()
	svc := NewListService(st, nil)
	alice := seedUser(t, st, "a@x.com")
	bob := seedUser(t, st, "b@x.com")

	list, err := svc.Create("Backlog", alice.ID)
	require.NoError(t, err)

	item, err := svc.AddGame(list.ID, "42", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, item.ListID)
	assert.Equal(t, "42", item.GameID)

	_, err = svc.AddGame(list.ID, "42", alice.ID)
	assert.ErrorIs(t, err, ErrAlreadyInList)

	// Someone else's list looks like it does not exist.
	_, err = svc.AddGame(list.ID, "43", bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddGame(list.ID, "", alice.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveListItem(t *testing.T) {
	st := store.NewMemory()
	svc := NewListService(st, nil)
	alice := seedUser(t, st, "a@x.com")
	bob := seedUser(t, st, "b@x.com")

	list, err := svc.Create("Backlog", alice.ID)
	require.NoError(t, err)
	item, err := svc.AddGame(list.ID, "42", alice.ID)
	require.NoError(t, err)

	err = svc.RemoveItem(list.ID, item.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.RemoveItem(list.ID, item.ID, alice.ID))

	err = svc.RemoveItem(list.ID, item.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteListRemovesItems(t *testing.T) {
	st := store.NewMemory()
	svc := NewListService(st, nil)
	alice := seedUser(t, st, "a@x.com")

	list, err := svc.Create("Backlog", alice.ID)
	require.NoError(t, err)
	_, err = svc.AddGame(list.ID, "42", alice.ID)
	require.NoError(t, err)

	err = svc.Delete(list.ID, alice.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(list.ID, alice.ID))
	_, err = svc.ByID(context.Background(), list.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := st.HasListItem(list.ID, "42")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListDetailJoinsItemGames(t *testing.T) {
	server := catalogStub(t, map[string]string{
		"/games/42": `{"id": 42, "name": "Outer Wilds", "background_image": "https://img/42.jpg"}`,
	})
	defer server.Close()

	st := store.NewMemory()
	svc := NewListService(st, rawg.NewClient(server.URL, "", nil))
	alice := seedUser(t, st, "a@x.com")

	list, err := svc.Create("Backlog", alice.ID)
	require.NoError(t, err)
	_, err = svc.AddGame(list.ID, "42", alice.ID)
	require.NoError(t, err)
	// A game the provider cannot serve still shows up, just without a record.
	_, err = svc.AddGame(list.ID, "999", alice.ID)
	require.NoError(t, err)

	got, err := svc.ByID(context.Background(), list.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Game)
	assert.Equal(t, "Outer Wilds", got.Items[0].Game.Name)
	assert.Equal(t, "https://img/42.jpg", got.Items[0].Game.BackgroundImage)
	assert.Nil(t, got.Items[1].Game)
}
