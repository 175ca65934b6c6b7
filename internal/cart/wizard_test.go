package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyCart() *Cart {
	c := New()
	c.AddItem(testItem(1, "250g", 9, 2))
	c.UpdateService(1, "250g", ServiceLivraison)
	c.UpdateSchedule(1, "250g", "Matin (9h-12h)")
	return c
}

func TestWizard_AdvanceFromEmptyCartBlocked(t *testing.T) {
	c := New()

	err := c.Advance()

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StepCart, c.Step)
}

func TestWizard_CartToServiceUnconditional(t *testing.T) {
	c := New()
	c.AddItem(testItem(1, "250g", 9, 1))

	require.NoError(t, c.Advance())
	assert.Equal(t, StepService, c.Step)
}

func TestWizard_ServiceBlockedWhileItemLacksService(t *testing.T) {
	c := New()
	c.AddItem(testItem(1, "250g", 9, 1))
	c.AddItem(testItem(2, "500g", 17, 1))
	c.UpdateService(1, "250g", ServiceEnvoi)
	require.NoError(t, c.Advance())

	err := c.Advance()

	assert.ErrorIs(t, err, ErrServiceRequired)
	assert.Equal(t, StepService, c.Step)
}

func TestWizard_ServiceToSchedule(t *testing.T) {
	c := New()
	c.AddItem(testItem(1, "250g", 9, 1))
	c.UpdateService(1, "250g", ServiceMeetup)
	require.NoError(t, c.Advance())

	require.NoError(t, c.Advance())
	assert.Equal(t, StepSchedule, c.Step)
}

func TestWizard_ServiceSkipsToReviewWhenNothingNeedsSchedule(t *testing.T) {
	c := readyCart()
	require.NoError(t, c.Advance())

	require.NoError(t, c.Advance())
	assert.Equal(t, StepReview, c.Step)
}

func TestWizard_ScheduleBlockedWhileSlotMissing(t *testing.T) {
	c := New()
	c.AddItem(testItem(1, "250g", 9, 1))
	c.UpdateService(1, "250g", ServiceLivraison)
	require.NoError(t, c.Advance())
	require.NoError(t, c.Advance())
	require.Equal(t, StepSchedule, c.Step)

	err := c.Advance()

	assert.ErrorIs(t, err, ErrScheduleRequired)
	assert.Equal(t, StepSchedule, c.Step)
}

func TestWizard_ScheduleToReview(t *testing.T) {
	c := New()
	c.AddItem(testItem(1, "250g", 9, 1))
	c.UpdateService(1, "250g", ServiceLivraison)
	require.NoError(t, c.Advance())
	require.NoError(t, c.Advance())
	c.UpdateSchedule(1, "250g", "Soirée (17h-20h)")

	require.NoError(t, c.Advance())
	assert.Equal(t, StepReview, c.Step)
}

func TestWizard_BackNavigation(t *testing.T) {
	c := New()
	c.AddItem(testItem(1, "250g", 9, 1))
	c.UpdateService(1, "250g", ServiceLivraison)
	require.NoError(t, c.Advance())
	require.NoError(t, c.Advance())
	require.Equal(t, StepSchedule, c.Step)

	require.NoError(t, c.Back(""))
	assert.Equal(t, StepService, c.Step)

	require.NoError(t, c.Back(""))
	assert.Equal(t, StepCart, c.Step)
}

func TestWizard_ReviewOffersTwoBackTargets(t *testing.T) {
	c := readyCart()
	require.NoError(t, c.Advance())
	require.NoError(t, c.Advance())
	require.Equal(t, StepReview, c.Step)

	// "Modifier services"
	require.NoError(t, c.Back(StepService))
	assert.Equal(t, StepService, c.Step)

	require.NoError(t, c.Advance())
	require.Equal(t, StepReview, c.Step)

	// "Modifier options"
	require.NoError(t, c.Back(StepSchedule))
	assert.Equal(t, StepSchedule, c.Step)
}

func TestWizard_ReviewRejectsCartAsBackTarget(t *testing.T) {
	c := readyCart()
	require.NoError(t, c.Advance())
	require.NoError(t, c.Advance())

	err := c.Back(StepCart)

	assert.ErrorIs(t, err, ErrInvalidStep)
	assert.Equal(t, StepReview, c.Step)
}

func TestWizard_EmptyingCartForcesCartStep(t *testing.T) {
	c := New()
	c.AddItem(testItem(1, "250g", 9, 1))
	c.UpdateService(1, "250g", ServiceLivraison)
	require.NoError(t, c.Advance())
	require.Equal(t, StepService, c.Step)

	c.RemoveItem(1, "250g")

	assert.Equal(t, StepCart, c.Step)
}
