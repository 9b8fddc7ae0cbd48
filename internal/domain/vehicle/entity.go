package vehicle

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNegativeRate = errors.New("daily rate cannot be negative")
	ErrEmptyName    = errors.New("vehicle name cannot be empty")
)

// Vehicle is read-only to the booking core; inventory management lives in the
// admin surface.
type Vehicle struct {
	id           uuid.UUID
	name         string
	ratePerDay   int64 // rupees
	seats        int
	city         string
	state        string
	registration string
}

func NewVehicle(id uuid.UUID, name string, ratePerDay int64, seats int, city, state, registration string) (*Vehicle, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if ratePerDay < 0 {
		return nil, ErrNegativeRate
	}

	return &Vehicle{
		id:           id,
		name:         name,
		ratePerDay:   ratePerDay,
		seats:        seats,
		city:         city,
		state:        state,
		registration: registration,
	}, nil
}

func (v *Vehicle) ID() uuid.UUID        { return v.id }
func (v *Vehicle) Name() string         { return v.name }
func (v *Vehicle) RatePerDay() int64    { return v.ratePerDay }
func (v *Vehicle) Seats() int           { return v.seats }
func (v *Vehicle) City() string         { return v.city }
func (v *Vehicle) State() string        { return v.state }
func (v *Vehicle) Registration() string { return v.registration }
