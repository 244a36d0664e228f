package services

import (
	"fmt"
	"time"
)

// Gateway approves or refuses a checkout payment.
type Gateway interface {
	Process(method string, amount float64) error
}

// SimulatedGateway stands in for a real processor: it validates the method
// and amount, waits the configured delay, and approves. Nothing is charged.
type SimulatedGateway struct {
	Delay time.Duration
}

var paymentMethods = map[string]bool{"pix": true, "card": true, "boleto": true}

func (g SimulatedGateway) Process(method string, amount float64) error {
	if !paymentMethods[method] {
		return fmt.Errorf("unknown payment method %q", method)
	}
	if amount <= 0 {
		return fmt.Errorf("invalid amount %.2f", amount)
	}
	if g.Delay > 0 {
		time.Sleep(g.Delay)
	}
	return nil
}
