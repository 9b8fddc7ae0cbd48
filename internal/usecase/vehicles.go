package usecase

import (
	"context"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/infra"
	"rentwheels/internal/pkg/errs"

	"github.com/google/uuid"
)

// VehicleQueries is the read-only catalog surface plus the advisory
// availability check used while browsing.
type VehicleQueries interface {
	List(ctx context.Context, filter VehicleFilter) ([]*VehicleView, error)
	Get(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	CheckAvailability(ctx context.Context, id uuid.UUID, rng booking.DateRange) (Availability, error)
}

type vehicleQueriesImpl struct {
	vehicles VehicleReads
	resolver *AvailabilityResolver
}

func NewVehicleQueries(vehicles VehicleReads, resolver *AvailabilityResolver) VehicleQueries {
	return &vehicleQueriesImpl{
		vehicles: vehicles,
		resolver: resolver,
	}
}

func (q *vehicleQueriesImpl) List(ctx context.Context, filter VehicleFilter) ([]*VehicleView, error) {
	vehicles, err := q.vehicles.List(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list vehicles")
	}
	return vehicles, nil
}

func (q *vehicleQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	v, err := q.vehicles.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrVehicleNotFound
		}
		return nil, errs.Wrap(err, "failed to find vehicle")
	}
	return v, nil
}

func (q *vehicleQueriesImpl) CheckAvailability(ctx context.Context, id uuid.UUID, rng booking.DateRange) (Availability, error) {
	if _, err := q.Get(ctx, id); err != nil {
		return Availability{}, err
	}
	return q.resolver.Check(ctx, id, rng)
}
