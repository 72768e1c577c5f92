package statemachine

import (
	"testing"

	"restaurant-pos/models"

	"github.com/stretchr/testify/assert"
)

func TestHappyPaths(t *testing.T) {
	dineIn := []models.OrderStatus{
		models.StatusPending, models.StatusInPreparation, models.StatusReady,
		models.StatusDelivered, models.StatusPaid,
	}
	delivery := []models.OrderStatus{
		models.StatusPending, models.StatusInPreparation, models.StatusReady,
		models.StatusOnTheWay, models.StatusDelivered, models.StatusPaid,
	}

	for i := 0; i < len(dineIn)-1; i++ {
		assert.NoError(t, CanTransition(dineIn[i], dineIn[i+1], models.TypeDineIn))
		assert.NoError(t, CanTransition(dineIn[i], dineIn[i+1], models.TypeTakeout))
	}
	for i := 0; i < len(delivery)-1; i++ {
		assert.NoError(t, CanTransition(delivery[i], delivery[i+1], models.TypeDelivery))
	}
}

func TestOnTheWayIsDeliveryOnly(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusReady, models.StatusOnTheWay, models.TypeDineIn))
	assert.Error(t, CanTransition(models.StatusReady, models.StatusOnTheWay, models.TypeTakeout))
	assert.NoError(t, CanTransition(models.StatusReady, models.StatusOnTheWay, models.TypeDelivery))

	// Deliveries must go through ON_THE_WAY
	assert.Error(t, CanTransition(models.StatusReady, models.StatusDelivered, models.TypeDelivery))
}

func TestNoSkippingOrReversing(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusPending, models.StatusReady, models.TypeDineIn))
	assert.Error(t, CanTransition(models.StatusPending, models.StatusPaid, models.TypeTakeout))
	assert.Error(t, CanTransition(models.StatusReady, models.StatusInPreparation, models.TypeDineIn))
	assert.Error(t, CanTransition(models.StatusDelivered, models.StatusReady, models.TypeDelivery))
}

func TestTerminalStates(t *testing.T) {
	for _, orderType := range []models.OrderType{models.TypeDineIn, models.TypeTakeout, models.TypeDelivery} {
		assert.Empty(t, ValidNextStatuses(models.StatusPaid, orderType))
		assert.Empty(t, ValidNextStatuses(models.StatusCancelled, orderType))

		err := CanTransition(models.StatusPaid, models.StatusPending, orderType)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "terminal")
	}
}

func TestValidNextStatuses(t *testing.T) {
	nexts := ValidNextStatuses(models.StatusReady, models.TypeDelivery)
	assert.Equal(t, []models.OrderStatus{models.StatusOnTheWay}, nexts)

	nexts = ValidNextStatuses(models.StatusReady, models.TypeDineIn)
	assert.Equal(t, []models.OrderStatus{models.StatusDelivered}, nexts)
}

func TestAllTransitionsExposed(t *testing.T) {
	all := AllTransitions()
	assert.Len(t, all, len(validTransitions))
}
