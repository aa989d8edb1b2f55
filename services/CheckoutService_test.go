package services

import (
	"testing"

	"gameZoid/entities"
	"gameZoid/models"
	"gameZoid/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckoutService(t *testing.T) (CheckoutService, CartService, repository.RecordStore) {
	be := repository.NewMemoryBackend()
	rs, err := repository.NewRecordStore(be)
	require.NoError(t, err)
	cr, err := repository.NewCartRepository(be)
	require.NoError(t, err)
	cartService := NewCartService(rs, cr)
	return NewCheckoutService(cartService), cartService, rs
}

func validBilling() models.BillingInfo {
	return models.BillingInfo{
		FirstName: "Test",
		LastName:  "User",
		Email:     "user@test.com",
		Phone:     "+1 (555) 123-4567",
		Address:   "1 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
		Country:   "USA",
	}
}

func TestCheckoutService_ValidBilling(t *testing.T) {
	cos, _, _ := setupCheckoutService(t)

	assert.NoError(t, cos.ValidateBilling(validBilling()))
}

func TestCheckoutService_MissingRequiredField(t *testing.T) {
	cos, _, _ := setupCheckoutService(t)

	billing := validBilling()
	billing.City = "   "
	assert.ErrorIs(t, cos.ValidateBilling(billing), models.ErrBadRequest)
}

func TestCheckoutService_InvalidEmail(t *testing.T) {
	cos, _, _ := setupCheckoutService(t)

	billing := validBilling()
	billing.Email = "not-an-email"
	assert.ErrorIs(t, cos.ValidateBilling(billing), models.ErrBadRequest)
}

func TestCheckoutService_PhoneToleratesPunctuation(t *testing.T) {
	cos, _, _ := setupCheckoutService(t)

	billing := validBilling()
	billing.Phone = "555-123-4567"
	assert.NoError(t, cos.ValidateBilling(billing))

	billing.Phone = "letters"
	assert.ErrorIs(t, cos.ValidateBilling(billing), models.ErrBadRequest)
}

func TestCheckoutService_EmptyCartIsTerminal(t *testing.T) {
	cos, _, _ := setupCheckoutService(t)

	_, err := cos.SubmitCheckout(validBilling())
	assert.ErrorIs(t, err, models.ErrNotAllowed)
}

func TestCheckoutService_SnapshotCarriesEnrichedItems(t *testing.T) {
	cos, cartService, rs := setupCheckoutService(t)

	id, err := rs.AddItem(repository.CollectionGames, models.CatalogItem{Name: "Elden Ring", Price: 59.99, Category: "Action RPG"})
	require.NoError(t, err)
	require.NoError(t, cartService.AddCartItem("user@test.com", id, models.ItemTypeGame))

	snapshot, err := cos.SubmitCheckout(validBilling())
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "Elden Ring", snapshot.Items[0].Name)
	assert.Equal(t, 59.99, snapshot.Total)
	assert.False(t, snapshot.CreatedAt.IsZero())
}

func TestCheckoutService_CompletePaymentClearsCart(t *testing.T) {
	cos, cartService, rs := setupCheckoutService(t)

	id, err := rs.AddItem(repository.CollectionGames, models.CatalogItem{Name: "Elden Ring", Price: 59.99})
	require.NoError(t, err)
	require.NoError(t, cartService.AddCartItem("user@test.com", id, models.ItemTypeGame))

	snapshot, err := cos.SubmitCheckout(validBilling())
	require.NoError(t, err)

	result, err := cos.CompletePayment(snapshot)
	require.NoError(t, err)
	assert.NotEmpty(t, result.OrderId)
	assert.Equal(t, snapshot.Total, result.Total)

	resp, err := cartService.GetCartItems()
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestCheckoutService_CompletePaymentRejectsEmptySnapshot(t *testing.T) {
	cos, _, _ := setupCheckoutService(t)

	_, err := cos.CompletePayment(entities.CheckoutSnapshot{})
	assert.ErrorIs(t, err, models.ErrBadRequest)
}
