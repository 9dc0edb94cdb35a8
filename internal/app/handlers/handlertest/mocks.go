// Package handlertest holds testify mocks of the application ports.
package handlertest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prorent/internal/domain/availability"
	"prorent/internal/domain/pricing"
	"prorent/internal/domain/reservation"
)

// MockCatalog mocks policies.Catalog.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) RoomType(ctx context.Context, id string) (pricing.RoomType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(pricing.RoomType), args.Error(1)
}

func (m *MockCatalog) UnavailableDates(ctx context.Context, roomTypeID string) (availability.UnavailableDateSet, error) {
	args := m.Called(ctx, roomTypeID)
	set, _ := args.Get(0).(availability.UnavailableDateSet)
	return set, args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateReservation(ctx context.Context, token string, req reservation.Request) (reservation.Receipt, error) {
	args := m.Called(ctx, token, req)
	return args.Get(0).(reservation.Receipt), args.Error(1)
}

type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Get(ctx context.Context, owner string) (reservation.Draft, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(reservation.Draft), args.Error(1)
}

func (m *MockDraftStore) Put(ctx context.Context, owner string, draft reservation.Draft) error {
	return m.Called(ctx, owner, draft).Error(0)
}

func (m *MockDraftStore) Delete(ctx context.Context, owner string) error {
	return m.Called(ctx, owner).Error(0)
}
