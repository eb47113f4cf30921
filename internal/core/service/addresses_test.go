package service_test

import (
	"testing"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validAddress(id string, isDefault bool) domain.Address {
	return domain.Address{
		AddressID: id,
		Label:     "home",
		Line1:     "1 Ridge Rd",
		City:      "Innsbruck",
		Country:   "AT",
		Default:   isDefault,
	}
}

func countDefaults(as []domain.Address) int {
	n := 0
	for _, a := range as {
		if a.Default {
			n++
		}
	}
	return n
}

func TestAddressBook(t *testing.T) {

	t.Run("ValidationSkipsNetwork", func(t *testing.T) {
		gw := new(MockAddressGateway)
		b := service.NewAddressBook(gw)

		_, err := b.Create(t.Context(), domain.Address{Label: "home"})
		require.ErrorIs(t, err, service.ErrInvalidAddress)
		gw.AssertNotCalled(t, "CreateAddress", mock.Anything, mock.Anything)
	})

	t.Run("CreateDefaultUnsetsOthers", func(t *testing.T) {
		gw := new(MockAddressGateway)
		gw.On("FetchAddresses", t.Context()).Return([]domain.Address{
			validAddress("a1", true),
			validAddress("a2", false),
		}, nil)

		b := service.NewAddressBook(gw)
		require.NoError(t, b.Refresh(t.Context()))

		created := validAddress("a3", true)
		gw.On("CreateAddress", t.Context(), created).Return(created, nil)

		_, err := b.Create(t.Context(), created)
		require.NoError(t, err)

		as := b.Addresses()
		require.Len(t, as, 3)
		assert.Equal(t, 1, countDefaults(as))
		assert.True(t, as[2].Default)
	})

	t.Run("UpdateDefaultUnsetsOthers", func(t *testing.T) {
		gw := new(MockAddressGateway)
		gw.On("FetchAddresses", t.Context()).Return([]domain.Address{
			validAddress("a1", true),
			validAddress("a2", false),
		}, nil)

		b := service.NewAddressBook(gw)
		require.NoError(t, b.Refresh(t.Context()))

		updated := validAddress("a2", true)
		gw.On("UpdateAddress", t.Context(), updated).Return(updated, nil)

		_, err := b.Update(t.Context(), updated)
		require.NoError(t, err)

		as := b.Addresses()
		assert.Equal(t, 1, countDefaults(as))
		assert.False(t, as[0].Default)
		assert.True(t, as[1].Default)
	})

	t.Run("NonDefaultUpdateKeepsExistingDefault", func(t *testing.T) {
		gw := new(MockAddressGateway)
		gw.On("FetchAddresses", t.Context()).Return([]domain.Address{
			validAddress("a1", true),
			validAddress("a2", false),
		}, nil)

		b := service.NewAddressBook(gw)
		require.NoError(t, b.Refresh(t.Context()))

		updated := validAddress("a2", false)
		updated.Label = "office"
		gw.On("UpdateAddress", t.Context(), updated).Return(updated, nil)

		_, err := b.Update(t.Context(), updated)
		require.NoError(t, err)

		as := b.Addresses()
		assert.True(t, as[0].Default)
		assert.Equal(t, "office", as[1].Label)
	})

	t.Run("DeleteDropsFromCache", func(t *testing.T) {
		gw := new(MockAddressGateway)
		gw.On("FetchAddresses", t.Context()).Return([]domain.Address{
			validAddress("a1", true),
			validAddress("a2", false),
		}, nil)
		gw.On("DeleteAddress", t.Context(), "a1").Return(nil)

		b := service.NewAddressBook(gw)
		require.NoError(t, b.Refresh(t.Context()))
		require.NoError(t, b.Delete(t.Context(), "a1"))

		as := b.Addresses()
		require.Len(t, as, 1)
		assert.Equal(t, "a2", as[0].AddressID)
	})
}
