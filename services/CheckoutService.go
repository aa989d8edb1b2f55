package services

import (
	"log"
	"regexp"
	"strings"
	"time"

	"gameZoid/entities"
	"gameZoid/models"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

type CheckoutService struct {
	cs CartService
}

func NewCheckoutService(cartService CartService) CheckoutService {
	return CheckoutService{
		cs: cartService,
	}
}

// ValidateBilling checks the required billing fields plus the email and
// phone formats. The phone check tolerates spaces, dashes and parentheses.
func (cos *CheckoutService) ValidateBilling(billing models.BillingInfo) error {
	required := map[string]string{
		"firstName": billing.FirstName,
		"lastName":  billing.LastName,
		"email":     billing.Email,
		"phone":     billing.Phone,
		"address":   billing.Address,
		"city":      billing.City,
		"state":     billing.State,
		"zipCode":   billing.ZipCode,
		"country":   billing.Country,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			log.Printf("ValidateBilling: %s is required", field)
			return models.ErrBadRequest
		}
	}
	if !emailPattern.MatchString(strings.TrimSpace(billing.Email)) {
		log.Printf("ValidateBilling: invalid email")
		return models.ErrBadRequest
	}
	phone := phoneSeparators.Replace(strings.TrimSpace(billing.Phone))
	if !phonePattern.MatchString(phone) {
		log.Printf("ValidateBilling: invalid phone")
		return models.ErrBadRequest
	}
	return nil
}

// SubmitCheckout validates the billing form and bundles the enriched line
// items into a snapshot for the payment flow. An empty cart is terminal.
func (cos *CheckoutService) SubmitCheckout(billing models.BillingInfo) (snapshot entities.CheckoutSnapshot, err error) {
	if err = cos.ValidateBilling(billing); err != nil {
		return
	}
	resp, e := cos.cs.GetCartItems()
	if e != nil {
		err = e
		return
	}
	if len(resp.Items) == 0 {
		log.Printf("SubmitCheckout: cart is empty")
		err = models.ErrNotAllowed
		return
	}
	snapshot = entities.CheckoutSnapshot{
		Billing:   billing,
		Items:     resp.Items,
		Total:     resp.Total,
		CreatedAt: time.Now().UTC(),
	}
	return
}

// CompletePayment simulates the payment succeeding: the cart is cleared and
// the snapshot is consumed. The receipt is the caller's problem.
func (cos *CheckoutService) CompletePayment(snapshot entities.CheckoutSnapshot) (result entities.PaymentResult, err error) {
	if len(snapshot.Items) == 0 {
		err = models.ErrBadRequest
		return
	}
	if _, err = cos.cs.ClearCart(); err != nil {
		return
	}
	result = entities.PaymentResult{
		OrderId:     uuid.NewString(),
		Total:       snapshot.Total,
		CompletedAt: time.Now().UTC(),
	}
	return
}
