package statemachine

import (
	"fmt"

	"restaurant-pos/models"
)

// Transition defines a valid status change for a given order type
type Transition struct {
	From      models.OrderStatus `json:"from"`
	To        models.OrderStatus `json:"to"`
	OrderType models.OrderType   `json:"order_type"`
}

// validTransitions is the authoritative state machine definition.
// READY branches by order type: deliveries go ON_THE_WAY first, dine-in and
// takeout orders are handed over directly.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusInPreparation, OrderType: models.TypeDineIn},
	{From: models.StatusPending, To: models.StatusInPreparation, OrderType: models.TypeTakeout},
	{From: models.StatusPending, To: models.StatusInPreparation, OrderType: models.TypeDelivery},

	{From: models.StatusInPreparation, To: models.StatusReady, OrderType: models.TypeDineIn},
	{From: models.StatusInPreparation, To: models.StatusReady, OrderType: models.TypeTakeout},
	{From: models.StatusInPreparation, To: models.StatusReady, OrderType: models.TypeDelivery},

	{From: models.StatusReady, To: models.StatusDelivered, OrderType: models.TypeDineIn},
	{From: models.StatusReady, To: models.StatusDelivered, OrderType: models.TypeTakeout},
	{From: models.StatusReady, To: models.StatusOnTheWay, OrderType: models.TypeDelivery},

	{From: models.StatusOnTheWay, To: models.StatusDelivered, OrderType: models.TypeDelivery},

	{From: models.StatusDelivered, To: models.StatusPaid, OrderType: models.TypeDineIn},
	{From: models.StatusDelivered, To: models.StatusPaid, OrderType: models.TypeTakeout},
	{From: models.StatusDelivered, To: models.StatusPaid, OrderType: models.TypeDelivery},
}

type transitionKey struct {
	From      models.OrderStatus
	To        models.OrderStatus
	OrderType models.OrderType
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.OrderType}] = true
	}
	return m
}()

// ValidNextStatuses returns all statuses reachable from the given one for an order type
func ValidNextStatuses(status models.OrderStatus, orderType models.OrderType) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status && t.OrderType == orderType {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether an order of the given type may move between statuses
func CanTransition(from, to models.OrderStatus, orderType models.OrderType) error {
	if transitionMap[transitionKey{From: from, To: to, OrderType: orderType}] {
		return nil
	}
	nexts := ValidNextStatuses(from, orderType)
	if len(nexts) == 0 {
		return fmt.Errorf("invalid transition %s -> %s: %s is a terminal state for %s orders",
			from, to, from, orderType)
	}
	return fmt.Errorf("invalid transition %s -> %s for %s orders; valid next statuses: %v",
		from, to, orderType, nexts)
}

// AllTransitions returns the full state machine for the docs endpoint
func AllTransitions() []Transition {
	return validTransitions
}
