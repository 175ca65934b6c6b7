package cart

import "errors"

// Step is the checkout wizard position. The flow is
// cart → service → schedule → review, with the schedule step skipped when no
// line needs a time slot.
type Step string

const (
	StepCart     Step = "cart"
	StepService  Step = "service"
	StepSchedule Step = "schedule"
	StepReview   Step = "review"
)

func (s Step) Valid() bool {
	switch s {
	case StepCart, StepService, StepSchedule, StepReview:
		return true
	}
	return false
}

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrServiceRequired  = errors.New("every item needs a service before continuing")
	ErrScheduleRequired = errors.New("every item needs a schedule before continuing")
	ErrInvalidStep      = errors.New("no such transition from the current step")
	ErrInvalidService   = errors.New("unknown service")
)

// normalize forces the wizard back to the cart step whenever the cart
// becomes empty, whatever step it was on.
func (c *Cart) normalize() {
	if c.IsEmpty() {
		c.Step = StepCart
	}
	if !c.Step.Valid() {
		c.Step = StepCart
	}
}

// Advance moves the wizard one step forward. Gating failures leave the step
// unchanged and return the error the UI surfaces as a warning.
func (c *Cart) Advance() error {
	c.normalize()

	switch c.Step {
	case StepCart:
		if c.IsEmpty() {
			return ErrEmptyCart
		}
		c.Step = StepService

	case StepService:
		if len(c.ItemsNeedingService()) > 0 {
			return ErrServiceRequired
		}
		// All services chosen; skip straight to review when nothing
		// needs a time slot.
		if len(c.ItemsNeedingSchedule()) == 0 {
			c.Step = StepReview
		} else {
			c.Step = StepSchedule
		}

	case StepSchedule:
		if len(c.ItemsNeedingSchedule()) > 0 {
			return ErrScheduleRequired
		}
		c.Step = StepReview

	default:
		return ErrInvalidStep
	}

	return nil
}

// Back moves the wizard backwards. An empty target means the previous step.
// From review both "modify options" (schedule) and "modify services"
// (service) are legal targets; elsewhere only the previous step is.
func (c *Cart) Back(target Step) error {
	c.normalize()

	switch c.Step {
	case StepService:
		if target != "" && target != StepCart {
			return ErrInvalidStep
		}
		c.Step = StepCart

	case StepSchedule:
		if target != "" && target != StepService {
			return ErrInvalidStep
		}
		c.Step = StepService

	case StepReview:
		switch target {
		case "", StepSchedule:
			c.Step = StepSchedule
		case StepService:
			c.Step = StepService
		default:
			return ErrInvalidStep
		}

	default:
		return ErrInvalidStep
	}

	return nil
}
