//go:build !windows

package comobj

import "github.com/smnsjas/go-aojia/dispatch"

// Apartment is unavailable without COM; Enter always fails.
type Apartment struct{}

// NewApartment returns an Apartment whose Enter fails with
// ErrUnsupportedPlatform.
func NewApartment() *Apartment {
	return &Apartment{}
}

// Enter implements session.Apartment.
func (a *Apartment) Enter() error { return ErrUnsupportedPlatform }

// Create implements session.Apartment.
func (a *Apartment) Create(clsid string) (dispatch.Object, error) {
	return nil, ErrUnsupportedPlatform
}

// Leave implements session.Apartment.
func (a *Apartment) Leave() {}
