package database

import (
	"errors"
	"fmt"
)

// ErrInvalidChain is returned when a chain fails structural or
// proof of work validation.
var ErrInvalidChain = errors.New("invalid chain")

// =============================================================================

// ValidateChain walks the chain from the second block onward and checks each
// block links to the hash of its predecessor and solves the POW puzzle. It
// stops at the first failure. A chain holding only a genesis block is valid.
func ValidateChain(chain []Block) error {
	if len(chain) == 0 {
		return fmt.Errorf("no blocks: %w", ErrInvalidChain)
	}

	prevBlock := chain[0]
	for _, block := range chain[1:] {
		prevHash := prevBlock.Hash()
		if prevHash == "" || block.PrevHash != prevHash {
			return fmt.Errorf("blk[%d]: parent block hash doesn't match, got %s, exp %s: %w", block.Index, block.PrevHash, prevHash, ErrInvalidChain)
		}

		if !ValidateProof(block.Nonce, block) {
			return fmt.Errorf("blk[%d]: nonce %d does not solve the puzzle: %w", block.Index, block.Nonce, ErrInvalidChain)
		}

		prevBlock = block
	}

	return nil
}
