package payment

import (
	"context"
	"time"
)

// StatusSucceeded is the terminal success state of a payment intent.
const StatusSucceeded = "succeeded"

// Intent is the provider-neutral view of a payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	// Amount is in minor currency units (cents).
	Amount    int64
	Currency  string
	CreatedAt time.Time
}

// Provider creates and inspects payment intents.
type Provider interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}
