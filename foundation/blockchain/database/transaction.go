package database

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAmount is returned when a transaction amount can't be
// represented in the canonical serialization.
var ErrInvalidAmount = errors.New("amount must be a finite number")

// =============================================================================

// Tx is the transactional information between two parties.
type Tx struct {
	Sender    string  `json:"sender"`    // Party sending the amount. "0" marks a mining reward.
	Recipient string  `json:"recipient"` // Party receiving the amount.
	Amount    float64 `json:"amount"`    // Value moved by the transaction.
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount float64) (Tx, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Tx{}, fmt.Errorf("%v: %w", amount, ErrInvalidAmount)
	}

	tx := Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	return tx, nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%v", tx.Sender, tx.Recipient, tx.Amount)
}
