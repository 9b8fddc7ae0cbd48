package readstore

import (
	"context"
	"errors"

	"rentwheels/internal/infra"
	"rentwheels/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleReadStore struct {
	db *pgxpool.Pool
}

func NewVehicleReadStore(db *pgxpool.Pool) *VehicleReadStore {
	return &VehicleReadStore{db: db}
}

const vehicleColumns = `id, name, rate_per_day, seats, city, state, registration`

func (r *VehicleReadStore) List(ctx context.Context, filter usecase.VehicleFilter) ([]*usecase.VehicleView, error) {
	query := `SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE ($1 = '' OR city = $1)
		  AND ($2 = '' OR state = $2)
		  AND seats >= $3
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, filter.City, filter.State, filter.MinSeats)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	defer rows.Close()

	var vehicles []*usecase.VehicleView
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle row", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicle rows", err)
	}

	return vehicles, nil
}

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*usecase.VehicleView, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	v, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}

	return v, nil
}

func scanVehicle(row pgx.Row) (*usecase.VehicleView, error) {
	var v usecase.VehicleView
	err := row.Scan(&v.ID, &v.Name, &v.RatePerDay, &v.Seats, &v.City, &v.State, &v.Registration)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
