package public

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/validate"
)

// newTx is what a client submits to add a transaction. Pointers are used so
// a present zero value can be told apart from a missing field.
type newTx struct {
	Sender    *string  `json:"sender" validate:"required"`
	Recipient *string  `json:"recipient" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required"`
}

// Validate checks the transaction has every required field.
func (ntx newTx) Validate() error {
	return validate.Check(ntx)
}

type txAdded struct {
	Message      string      `json:"message"`
	Transactions database.Tx `json:"transactions"`
	BlockHash    string      `json:"block_hash"`
}

// =============================================================================

// newPeers is what a client submits to register peers.
type newPeers struct {
	Nodes []string `json:"nodes" validate:"required"`
}

// Validate checks the list of nodes was provided.
func (np newPeers) Validate() error {
	return validate.Check(np)
}

type peersAdded struct {
	Message    string   `json:"message"`
	TotalNodes int      `json:"total_nodes"`
	Nodes      []string `json:"nodes"`
}

// =============================================================================

type blockMined struct {
	Message      string        `json:"message"`
	Index        int           `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Nonce        uint64        `json:"nonce"`
	PrevHash     string        `json:"previous_hash"`
}

type resolved struct {
	Message  string           `json:"message"`
	NewChain []database.Block `json:"new_chain,omitempty"`
	Chain    []database.Block `json:"chain,omitempty"`
}
