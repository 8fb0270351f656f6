package database

import (
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/hasher"
)

// GenesisPrevHash is the previous hash recorded on the genesis block.
const GenesisPrevHash = "0"

// TimestampLayout is the layout used to stamp new blocks.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// =============================================================================

// Block represents a group of transactions batched together. The hash of a
// block is not stored, it is always derived from these fields.
type Block struct {
	Index        int    `json:"index"`         // Position of the block in the chain, starting at 1.
	TimeStamp    string `json:"timestamp"`     // Time the block was constructed.
	Transactions []Tx   `json:"transactions"`  // Transactions committed by this block.
	Nonce        uint64 `json:"nonce"`         // Value identified to solve the hash solution.
	PrevHash     string `json:"previous_hash"` // Hash of the previous block in the chain.
}

// NewBlock constructs the block that follows a chain holding index-1 blocks.
func NewBlock(index int, now time.Time, trans []Tx, nonce uint64, prevHash string) Block {
	return Block{
		Index:        index,
		TimeStamp:    now.Format(TimestampLayout),
		Transactions: copyTrans(trans),
		Nonce:        nonce,
		PrevHash:     prevHash,
	}
}

// Genesis constructs the first block of a chain.
func Genesis(now time.Time) Block {
	return NewBlock(1, now, nil, 0, GenesisPrevHash)
}

// Hash returns the unique hash for the Block. An empty string is returned
// when the block can't be serialized, which never solves the puzzle and
// never matches a previous hash.
func (b Block) Hash() string {
	hash, err := hasher.Hash(b)
	if err != nil {
		return ""
	}

	return hash
}

// Clone returns a copy of the block that shares no memory with the original.
func (b Block) Clone() Block {
	b.Transactions = copyTrans(b.Transactions)
	return b
}

// =============================================================================

// copyTrans always returns a non-nil slice so an empty block serializes
// the same way before and after it crosses the network.
func copyTrans(trans []Tx) []Tx {
	cpy := make([]Tx, len(trans))
	copy(cpy, trans)
	return cpy
}

// copyBlocks performs a deep copy of a chain.
func copyBlocks(blocks []Block) []Block {
	cpy := make([]Block, len(blocks))
	for i, block := range blocks {
		cpy[i] = block.Clone()
	}
	return cpy
}
