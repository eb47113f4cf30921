package service_test

import (
	"context"
	"io"
	"time"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogGateway struct {
	mock.Mock
}

func (m *MockCatalogGateway) FetchProducts(
	ctx context.Context, f domain.Filter, limit, offset int,
) ([]domain.Product, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogGateway) FetchPopular(
	ctx context.Context, limit, offset int,
) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogGateway) FetchProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogGateway) FetchVariants(
	ctx context.Context, name, excludeColor string,
) ([]domain.ProductVariant, error) {
	args := m.Called(ctx, name, excludeColor)
	return args.Get(0).([]domain.ProductVariant), args.Error(1)
}

func (m *MockCatalogGateway) IncrementViews(
	ctx context.Context, productID string,
) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockCatalogGateway) FetchCategories(
	ctx context.Context,
) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

type MockFacetsGateway struct {
	mock.Mock
}

func (m *MockFacetsGateway) FetchBrandFacet(
	ctx context.Context, f domain.Filter,
) ([]string, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFacetsGateway) FetchSizeFacet(
	ctx context.Context, f domain.Filter,
) ([]string, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFacetsGateway) FetchGenderFacet(
	ctx context.Context, f domain.Filter,
) ([]string, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]string), args.Error(1)
}

type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Login(ctx context.Context, cr domain.Credentials) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *MockAuthGateway) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAuthGateway) Register(ctx context.Context, cr domain.Credentials) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *MockAuthGateway) Me(ctx context.Context) (domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockAuthGateway) AdminLogin(
	ctx context.Context, cr domain.Credentials,
) (string, error) {
	args := m.Called(ctx, cr)
	return args.String(0), args.Error(1)
}

func (m *MockAuthGateway) RequestPasswordReset(
	ctx context.Context, email string,
) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthGateway) ConfirmPasswordReset(
	ctx context.Context, token, password string,
) error {
	args := m.Called(ctx, token, password)
	return args.Error(0)
}

func (m *MockAuthGateway) RequestEmailVerification(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAuthGateway) ConfirmEmailVerification(
	ctx context.Context, token string,
) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type MockFavoritesGateway struct {
	mock.Mock
}

func (m *MockFavoritesGateway) FetchFavorites(
	ctx context.Context,
) ([]domain.Favorite, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockFavoritesGateway) AddFavorite(
	ctx context.Context, p domain.Product,
) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockFavoritesGateway) RemoveFavorite(
	ctx context.Context, name, color string,
) error {
	args := m.Called(ctx, name, color)
	return args.Error(0)
}

type MockAddressGateway struct {
	mock.Mock
}

func (m *MockAddressGateway) FetchAddresses(
	ctx context.Context,
) ([]domain.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *MockAddressGateway) CreateAddress(
	ctx context.Context, a domain.Address,
) (domain.Address, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Address), args.Error(1)
}

func (m *MockAddressGateway) UpdateAddress(
	ctx context.Context, a domain.Address,
) (domain.Address, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Address), args.Error(1)
}

func (m *MockAddressGateway) DeleteAddress(
	ctx context.Context, addressID string,
) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

type MockImagesGateway struct {
	mock.Mock
}

func (m *MockImagesGateway) UploadProductImage(
	ctx context.Context, productID, name string, file io.Reader,
) (string, error) {
	args := m.Called(ctx, productID, name, file)
	return args.String(0), args.Error(1)
}

func (m *MockImagesGateway) DeleteProductImage(
	ctx context.Context, productID, imageURL string,
) error {
	args := m.Called(ctx, productID, imageURL)
	return args.Error(0)
}

func (m *MockImagesGateway) SetProductImageURLs(
	ctx context.Context, productID, joined string,
) error {
	args := m.Called(ctx, productID, joined)
	return args.Error(0)
}

func (m *MockImagesGateway) SyncGroupImages(
	ctx context.Context, name, color string,
) error {
	args := m.Called(ctx, name, color)
	return args.Error(0)
}

type MockCollectionsGateway struct {
	mock.Mock
}

func (m *MockCollectionsGateway) FetchCollections(
	ctx context.Context,
) ([]domain.Collection, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Collection), args.Error(1)
}

func (m *MockCollectionsGateway) FetchCollection(
	ctx context.Context, collectionID string,
) (domain.Collection, error) {
	args := m.Called(ctx, collectionID)
	return args.Get(0).(domain.Collection), args.Error(1)
}

func (m *MockCollectionsGateway) CreateCollection(
	ctx context.Context, c domain.Collection,
) (domain.Collection, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Collection), args.Error(1)
}

func (m *MockCollectionsGateway) UpdateCollection(
	ctx context.Context, c domain.Collection,
) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCollectionsGateway) DeleteCollection(
	ctx context.Context, collectionID string,
) error {
	args := m.Called(ctx, collectionID)
	return args.Error(0)
}

type MockImportGateway struct {
	mock.Mock
}

func (m *MockImportGateway) ImportSpreadsheet(
	ctx context.Context, filename string, file io.Reader,
) (domain.ImportSummary, error) {
	args := m.Called(ctx, filename, file)
	return args.Get(0).(domain.ImportSummary), args.Error(1)
}

type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Token() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStateStore) SetToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockStateStore) ClearToken() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStateStore) LastImport() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockStateStore) SetLastImport(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}
