package services

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTicketType(t *testing.T) {
	db := testutil.NewTestDB(t)
	organizer := testutil.CreateUser(t, db, "organizer")
	participant := testutil.CreateUser(t, db, "participant")
	public := testutil.CreateEvent(t, db, organizer, testutil.EventOptions{Public: true})
	testutil.AddParticipant(t, db, public, participant)
	private := testutil.CreateEvent(t, db, organizer, testutil.EventOptions{})

	valid := TicketTypeInput{Name: "Early bird", Amount: decimal.RequireFromString("12.505"), QuantityLimit: 10}

	_, err := CreateTicketType(db, organizer, private.ID, valid)
	requireKind(t, err, http.StatusForbidden)

	_, err = CreateTicketType(db, participant, public.ID, valid)
	requireKind(t, err, http.StatusForbidden)

	_, err = CreateTicketType(db, organizer, public.ID+100, valid)
	requireKind(t, err, http.StatusNotFound)

	_, err = CreateTicketType(db, organizer, public.ID, TicketTypeInput{Name: "Bad", Amount: decimal.NewFromInt(-1), QuantityLimit: 1})
	requireKind(t, err, http.StatusBadRequest)
	_, err = CreateTicketType(db, organizer, public.ID, TicketTypeInput{Name: "Bad", Amount: decimal.Zero, QuantityLimit: 0})
	requireKind(t, err, http.StatusBadRequest)
	_, err = CreateTicketType(db, organizer, public.ID, TicketTypeInput{Name: " ", Amount: decimal.Zero, QuantityLimit: 1})
	requireKind(t, err, http.StatusBadRequest)

	ticketType, err := CreateTicketType(db, organizer, public.ID, valid)
	require.NoError(t, err)
	assert.True(t, ticketType.Amount.Equal(decimal.RequireFromString("12.51")), "amount is rounded to cents, got %s", ticketType.Amount)

	listed, err := ListTicketTypes(db, public.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Early bird", listed[0].Name)
	assert.True(t, listed[0].Amount.Equal(decimal.RequireFromString("12.51")))

	_, err = ListTicketTypes(db, private.ID)
	requireKind(t, err, http.StatusForbidden)
}

func TestPurchaseTicket(t *testing.T) {
	db := testutil.NewTestDB(t)
	organizer := testutil.CreateUser(t, db, "organizer")
	participant := testutil.CreateUser(t, db, "participant")
	event := testutil.CreateEvent(t, db, organizer, testutil.EventOptions{Public: true})
	testutil.AddParticipant(t, db, event, participant)
	other := testutil.CreateEvent(t, db, organizer, testutil.EventOptions{Public: true})

	ticketType, err := CreateTicketType(db, organizer, event.ID, TicketTypeInput{Name: "GA", Amount: decimal.NewFromInt(20), QuantityLimit: 2})
	require.NoError(t, err)

	purchase, err := PurchaseTicket(db, event.ID, PurchaseInput{
		TicketTypeID: *flexID(ticketType.ID),
		Email:        " Buyer@Example.com ",
		FirstName:    strPtr(" Ada "),
		LastName:     strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", purchase.Email)
	require.NotNil(t, purchase.FirstName)
	assert.Equal(t, "Ada", *purchase.FirstName)
	assert.Nil(t, purchase.LastName)
	_, err = uuid.Parse(purchase.Reference)
	assert.NoError(t, err)

	_, err = PurchaseTicket(db, event.ID, PurchaseInput{TicketTypeID: *flexID(ticketType.ID), Email: "buyer@example.com"})
	requireKind(t, err, http.StatusConflict)

	_, err = PurchaseTicket(db, event.ID, PurchaseInput{TicketTypeID: *flexID(ticketType.ID), Email: "nope"})
	requireKind(t, err, http.StatusBadRequest)

	// a ticket type only sells for its own event
	_, err = PurchaseTicket(db, other.ID, PurchaseInput{TicketTypeID: *flexID(ticketType.ID), Email: "second@example.com"})
	requireKind(t, err, http.StatusNotFound)

	_, err = PurchaseTicket(db, event.ID, PurchaseInput{TicketTypeID: *flexID(ticketType.ID), Email: "second@example.com"})
	require.NoError(t, err)

	_, err = PurchaseTicket(db, event.ID, PurchaseInput{TicketTypeID: *flexID(ticketType.ID), Email: "third@example.com"})
	requireKind(t, err, http.StatusConflict)
	assert.EqualValues(t, 2, testutil.Count(t, db, &models.TicketPurchase{}, "ticket_type_id = ?", ticketType.ID))

	_, err = ListPurchases(db, participant, event.ID)
	requireKind(t, err, http.StatusForbidden)

	purchases, err := ListPurchases(db, organizer, event.ID)
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	assert.Equal(t, "buyer@example.com", purchases[0].Email)
	assert.Equal(t, "second@example.com", purchases[1].Email)
}

func TestPurchaseTicketConcurrent(t *testing.T) {
	db := newFileDB(t)
	organizer := testutil.CreateUser(t, db, "organizer")
	event := testutil.CreateEvent(t, db, organizer, testutil.EventOptions{Public: true})

	limited, err := CreateTicketType(db, organizer, event.ID, TicketTypeInput{Name: "Limited", Amount: decimal.NewFromInt(5), QuantityLimit: 6})
	require.NoError(t, err)
	open, err := CreateTicketType(db, organizer, event.ID, TicketTypeInput{Name: "Open", Amount: decimal.NewFromInt(5), QuantityLimit: 100})
	require.NoError(t, err)

	purchase := func(n int, ticketTypeID uint, email func(int) string) (ok int, errs []error) {
		var wg sync.WaitGroup
		results := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = PurchaseTicket(db, event.ID, PurchaseInput{TicketTypeID: *flexID(ticketTypeID), Email: email(i)})
			}(i)
		}
		wg.Wait()
		for _, err := range results {
			if err == nil {
				ok++
				continue
			}
			errs = append(errs, err)
		}
		return ok, errs
	}

	ok, errs := purchase(10, limited.ID, func(i int) string { return fmt.Sprintf("buyer%d@example.com", i) })
	assert.Equal(t, 6, ok)
	require.Len(t, errs, 4)
	for _, err := range errs {
		requireKind(t, err, http.StatusConflict)
	}
	assert.EqualValues(t, 6, testutil.Count(t, db, &models.TicketPurchase{}, "ticket_type_id = ?", limited.ID))

	ok, errs = purchase(8, open.ID, func(int) string { return "same@example.com" })
	assert.Equal(t, 1, ok)
	require.Len(t, errs, 7)
	for _, err := range errs {
		requireKind(t, err, http.StatusConflict)
	}
	assert.EqualValues(t, 1, testutil.Count(t, db, &models.TicketPurchase{}, "email = ?", "same@example.com"))
}
