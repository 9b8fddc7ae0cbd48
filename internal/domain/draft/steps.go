package draft

// Step is the wizard position a draft is at. Forward movement is gated by
// that step's validation; backward movement is always allowed and never
// discards entered data.
type Step int

const (
	StepSelectingVehicle Step = iota + 1
	StepEnteringTripDetails
	StepEnteringPersonalInfo
	StepReviewingPayment
	StepSubmitted
	StepFailed
)

var stepNames = map[Step]string{
	StepSelectingVehicle:     "selecting_vehicle",
	StepEnteringTripDetails:  "entering_trip_details",
	StepEnteringPersonalInfo: "entering_personal_info",
	StepReviewingPayment:     "reviewing_payment",
	StepSubmitted:            "submitted",
	StepFailed:               "failed",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Step) IsTerminal() bool {
	return s == StepSubmitted
}

// Next returns the step that follows s in the forward direction. Submitted
// and Failed have no forward successor; Failed re-enters the review step via
// Retry on the session machine.
func (s Step) Next() (Step, bool) {
	switch s {
	case StepSelectingVehicle:
		return StepEnteringTripDetails, true
	case StepEnteringTripDetails:
		return StepEnteringPersonalInfo, true
	case StepEnteringPersonalInfo:
		return StepReviewingPayment, true
	default:
		return s, false
	}
}

func (s Step) Prev() (Step, bool) {
	switch s {
	case StepEnteringTripDetails:
		return StepSelectingVehicle, true
	case StepEnteringPersonalInfo:
		return StepEnteringTripDetails, true
	case StepReviewingPayment:
		return StepEnteringPersonalInfo, true
	default:
		return s, false
	}
}
