package payments

import "time"

// CreatePaymentInput is the CreatePaymentInput of CreatePayment. Amount and
// currency rules are enforced by the API.
type CreatePaymentInput struct {
	RideID          string   `json:"rideId" validate:"required"`
	Amount          *float64 `json:"amount" validate:"required"`
	Currency        string   `json:"currency" validate:"required"`
	Method          string   `json:"method" validate:"required"`
	PaymentMethodID string   `json:"paymentMethodId,omitempty"`
}

// Payment is the payment created by CreatePayment
type Payment struct {
	ID            string    `json:"id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
}
