package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/testutil"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestShoppingListDisabled(t *testing.T) {
	db := testutil.NewTestDB(t)
	organizer := testutil.CreateUser(t, db, "organizer")
	event := testutil.CreateEvent(t, db, organizer, testutil.EventOptions{Shopping: false})

	_, err := CreateShoppingItem(db, organizer, event.ID, ShoppingItemInput{Name: "Chips", Quantity: 1})
	requireKind(t, err, http.StatusBadRequest)

	_, err = ListShoppingItems(db, organizer, event.ID)
	requireKind(t, err, http.StatusBadRequest)
}

func TestCreateShoppingItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	organizer := testutil.CreateUser(t, db, "organizer")
	participant := testutil.CreateUser(t, db, "participant")
	stranger := testutil.CreateUser(t, db, "stranger")
	event := testutil.CreateEvent(t, db, organizer, testutil.EventOptions{Public: true, Shopping: true})
	testutil.AddParticipant(t, db, event, participant)

	_, err := CreateShoppingItem(db, stranger, event.ID, ShoppingItemInput{Name: "Chips", Quantity: 1})
	requireKind(t, err, http.StatusForbidden)
	_, err = CreateShoppingItem(db, participant, event.ID, ShoppingItemInput{Name: "Chips", Quantity: 0})
	requireKind(t, err, http.StatusBadRequest)
	_, err = CreateShoppingItem(db, participant, event.ID, ShoppingItemInput{Name: " ", Quantity: 1})
	requireKind(t, err, http.StatusBadRequest)
	_, err = CreateShoppingItem(db, participant, event.ID+100, ShoppingItemInput{Name: "Chips", Quantity: 1})
	requireKind(t, err, http.StatusNotFound)

	arrival := time.Now().UTC().Add(25 * time.Hour).Truncate(time.Second)
	item, err := CreateShoppingItem(db, participant, event.ID, ShoppingItemInput{Name: " Chips ", Quantity: 3, ArrivalTime: &types.FlexTime{Time: arrival}})
	require.NoError(t, err)
	assert.Equal(t, "Chips", item.Name)
	assert.Equal(t, 3, item.Quantity)
	require.NotNil(t, item.CreatedBy)
	assert.Equal(t, participant.ID, item.CreatedBy.ID)

	_, err = CreateShoppingItem(db, organizer, event.ID, ShoppingItemInput{Name: "Chips", Quantity: 1})
	requireKind(t, err, http.StatusConflict)

	_, err = CreateShoppingItem(db, organizer, event.ID, ShoppingItemInput{Name: "Salsa", Quantity: 1})
	require.NoError(t, err)

	items, err := ListShoppingItems(db, participant, event.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Salsa", items[0].Name)
	assert.Equal(t, "Chips", items[1].Name)
	require.NotNil(t, items[0].CreatedBy)
	assert.Equal(t, organizer.ID, items[0].CreatedBy.ID)
	require.NotNil(t, items[1].ArrivalTime)
	assert.True(t, arrival.Equal(*items[1].ArrivalTime))

	_, err = ListShoppingItems(db, stranger, event.ID)
	requireKind(t, err, http.StatusForbidden)
}

func TestUpdateAndDeleteShoppingItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	organizer := testutil.CreateUser(t, db, "organizer")
	creator := testutil.CreateUser(t, db, "creator")
	other := testutil.CreateUser(t, db, "other")
	event := testutil.CreateEvent(t, db, organizer, testutil.EventOptions{Shopping: true})
	testutil.AddParticipant(t, db, event, creator)
	testutil.AddParticipant(t, db, event, other)

	item, err := CreateShoppingItem(db, creator, event.ID, ShoppingItemInput{Name: "Bread", Quantity: 1})
	require.NoError(t, err)
	_, err = CreateShoppingItem(db, creator, event.ID, ShoppingItemInput{Name: "Butter", Quantity: 1})
	require.NoError(t, err)

	_, err = UpdateShoppingItem(db, other, event.ID, item.ID, ShoppingItemUpdate{Quantity: intPtr(4)})
	requireKind(t, err, http.StatusForbidden)

	updated, err := UpdateShoppingItem(db, creator, event.ID, item.ID, ShoppingItemUpdate{Quantity: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, "Bread", updated.Name)

	_, err = UpdateShoppingItem(db, organizer, event.ID, item.ID, ShoppingItemUpdate{Name: strPtr("Butter")})
	requireKind(t, err, http.StatusConflict)

	_, err = UpdateShoppingItem(db, organizer, event.ID, item.ID, ShoppingItemUpdate{Quantity: intPtr(0)})
	requireKind(t, err, http.StatusBadRequest)

	renamed, err := UpdateShoppingItem(db, organizer, event.ID, item.ID, ShoppingItemUpdate{Name: strPtr("Sourdough")})
	require.NoError(t, err)
	assert.Equal(t, "Sourdough", renamed.Name)
	require.NotNil(t, renamed.CreatedBy)
	assert.Equal(t, creator.ID, renamed.CreatedBy.ID)

	_, err = UpdateShoppingItem(db, creator, event.ID, item.ID+100, ShoppingItemUpdate{})
	requireKind(t, err, http.StatusNotFound)

	err = DeleteShoppingItem(db, other, event.ID, item.ID)
	requireKind(t, err, http.StatusForbidden)

	require.NoError(t, DeleteShoppingItem(db, creator, event.ID, item.ID))
	assert.Zero(t, testutil.Count(t, db, &models.ShoppingItem{}, "id = ?", item.ID))

	err = DeleteShoppingItem(db, creator, event.ID, item.ID)
	requireKind(t, err, http.StatusNotFound)
}
