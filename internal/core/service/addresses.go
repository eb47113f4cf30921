package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/port"
)

// ErrInvalidAddress is returned when required address fields are
// missing; no network call is made in that case.
var ErrInvalidAddress = errors.New("invalid address")

// AddressBook caches the user's shipping addresses and keeps the
// single-default invariant locally: after any mutation that sets a
// default, every other cached entry has its default flag unset.
// The server stays the source of truth.
type AddressBook struct {
	mu        sync.Mutex
	gateway   port.AddressGateway
	addresses []domain.Address
}

func NewAddressBook(gateway port.AddressGateway) *AddressBook {
	return &AddressBook{gateway: gateway}
}

func (b *AddressBook) Refresh(ctx context.Context) error {
	const op = "AddressBook.Refresh"

	as, err := b.gateway.FetchAddresses(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	b.addresses = as
	b.mu.Unlock()
	return nil
}

func (b *AddressBook) Addresses() []domain.Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	as := make([]domain.Address, len(b.addresses))
	copy(as, b.addresses)
	return as
}

func (b *AddressBook) Create(
	ctx context.Context, a domain.Address,
) (domain.Address, error) {
	const op = "AddressBook.Create"

	if err := validateAddress(a); err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := b.gateway.CreateAddress(ctx, a)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	b.addresses = append(b.addresses, created)
	if created.Default {
		b.keepSingleDefault(created.AddressID)
	}
	b.mu.Unlock()
	return created, nil
}

func (b *AddressBook) Update(
	ctx context.Context, a domain.Address,
) (domain.Address, error) {
	const op = "AddressBook.Update"

	if err := validateAddress(a); err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := b.gateway.UpdateAddress(ctx, a)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	for i := range b.addresses {
		if b.addresses[i].AddressID == updated.AddressID {
			b.addresses[i] = updated
		}
	}
	if updated.Default {
		b.keepSingleDefault(updated.AddressID)
	}
	b.mu.Unlock()
	return updated, nil
}

func (b *AddressBook) Delete(ctx context.Context, addressID string) error {
	const op = "AddressBook.Delete"

	if err := b.gateway.DeleteAddress(ctx, addressID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	kept := b.addresses[:0]
	for _, a := range b.addresses {
		if a.AddressID != addressID {
			kept = append(kept, a)
		}
	}
	b.addresses = kept
	b.mu.Unlock()
	return nil
}

// keepSingleDefault unsets the default flag on every entry except
// the given one. Caller holds the lock.
func (b *AddressBook) keepSingleDefault(addressID string) {
	for i := range b.addresses {
		if b.addresses[i].AddressID != addressID {
			b.addresses[i].Default = false
		}
	}
}

func validateAddress(a domain.Address) error {
	var missing []string
	if strings.TrimSpace(a.Line1) == "" {
		missing = append(missing, "line1")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.Country) == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return fmt.Errorf(
			"%w: missing fields: %s",
			ErrInvalidAddress, strings.Join(missing, ", "),
		)
	}
	return nil
}
