package gateways

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidUpload marks an upload rejected for its type or size
var ErrInvalidUpload = errors.New("invalid upload")

// Email is one outbound message
type Email struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Notifier delivers transactional email
type Notifier interface {
	Send(ctx context.Context, email Email) error
}

// Geocoder resolves a postal address to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// IdentityProvider exchanges an OAuth authorization code for the user's email
type IdentityProvider interface {
	ExchangeEmail(ctx context.Context, code string) (string, error)
}

// LogoStore persists uploaded logos and returns their public path
type LogoStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}
