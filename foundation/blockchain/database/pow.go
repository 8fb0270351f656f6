package database

import (
	"context"

	"github.com/ardanlabs/powledger/foundation/blockchain/hasher"
)

// Difficulty is the number of leading hex zeros a block hash needs.
const Difficulty = 4

// =============================================================================

// Mine searches for the smallest nonce, starting at zero, that solves the POW
// puzzle for the candidate block. The candidate is received as a value so the
// search only ever changes a private copy.
func Mine(ctx context.Context, candidate Block, ev func(v string, args ...any)) (uint64, error) {
	ev("database: Mine: MINING: started: blk[%d]: prevBlk[%s]", candidate.Index, candidate.PrevHash)
	defer ev("database: Mine: MINING: completed: blk[%d]", candidate.Index)

	for _, tx := range candidate.Transactions {
		ev("database: Mine: MINING: tx[%s]", tx)
	}

	candidate.Nonce = 0

	for {
		if candidate.Nonce%100_000 == 0 && candidate.Nonce > 0 {
			ev("database: Mine: MINING: attempts[%d]", candidate.Nonce)
		}

		// Mining only stops early when the node is shutting down.
		if ctx.Err() != nil {
			ev("database: Mine: MINING: CANCELLED")
			return 0, ctx.Err()
		}

		hash := candidate.Hash()
		if IsHashSolved(hash) {
			ev("database: Mine: MINING: SOLVED: nonce[%d]: newBlk[%s]", candidate.Nonce, hash)
			return candidate.Nonce, nil
		}

		candidate.Nonce++
	}
}

// ValidateProof applies the nonce to a copy of the block and checks the hash
// of that copy solves the POW puzzle.
func ValidateProof(nonce uint64, block Block) bool {
	block.Nonce = nonce
	return IsHashSolved(block.Hash())
}

// IsHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func IsHashSolved(hash string) bool {
	const match = "0000"

	if len(hash) != hasher.Size {
		return false
	}

	return hash[:Difficulty] == match[:Difficulty]
}
