package dto

import (
	"encoding/json"
	"strings"
	"time"
)

// PaymentIntentRequest is the body of POST /create-payment-intent. Amount accepts either a
// JSON number or a numeric string.
type PaymentIntentRequest struct {
	Amount json.RawMessage `json:"amount" swaggertype:"number" example:"20"`
}

// AmountLiteral returns the raw amount without surrounding quotes.
func (r PaymentIntentRequest) AmountLiteral() string {
	return rawLiteral(r.Amount)
}

// PaymentIntentResponse carries the client secret used by the browser to confirm payment.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret" example:"pi_3N_secret_abc"`
}

// VerifyPaymentRequest is the body of POST /verify-payment.
type VerifyPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" example:"pi_3N..."`
}

// PaymentDetails are the normalized facts of a settled payment.
type PaymentDetails struct {
	PaymentStatus string    `json:"paymentStatus" example:"succeeded"`
	AmountPaid    float64   `json:"amountPaid" example:"20"`
	Currency      string    `json:"currency" example:"usd"`
	CreatedAt     time.Time `json:"createdAt"`
}

// EnrollRequest is the body of POST /enrollments.
type EnrollRequest struct {
	ClassID       string          `json:"classId" example:"6f1c1d2e-8a43-4d55-9d55-0d0b5f8c2a11"`
	StudentEmail  string          `json:"studentEmail" example:"s@x.com"`
	TransactionID string          `json:"transactionId" example:"pi_3N..."`
	Amount        json.RawMessage `json:"amount" swaggertype:"number" example:"20"`
}

// AmountLiteral returns the raw amount without surrounding quotes.
func (r EnrollRequest) AmountLiteral() string {
	return rawLiteral(r.Amount)
}

// EnrollResponse summarizes a new enrollment.
type EnrollResponse struct {
	EnrollmentID string `json:"enrollmentId"`
	ClassID      string `json:"classId"`
	ClassName    string `json:"className"`
}

func rawLiteral(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}
