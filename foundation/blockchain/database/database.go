// Package database handles the in memory chain of blocks along with the
// block, proof of work and chain validation rules.
package database

import (
	"errors"
	"fmt"
)

// ErrEmptyChain is returned when the latest block is requested from a chain
// that holds no blocks.
var ErrEmptyChain = errors.New("chain has no blocks")

// =============================================================================

// Database maintains the ordered chain of blocks. It provides no locking of
// its own, the owner is expected to serialize access.
type Database struct {
	blocks []Block
}

// New constructs a database seeded with the specified genesis block.
func New(genesis Block) *Database {
	return &Database{
		blocks: []Block{genesis.Clone()},
	}
}

// Length returns the number of blocks in the chain.
func (db *Database) Length() int {
	return len(db.blocks)
}

// LatestBlock returns the last block added to the chain.
func (db *Database) LatestBlock() (Block, error) {
	if len(db.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}

	return db.blocks[len(db.blocks)-1].Clone(), nil
}

// Write appends the block to the end of the chain. The block must carry the
// next index in the chain.
func (db *Database) Write(block Block) error {
	if next := len(db.blocks) + 1; block.Index != next {
		return fmt.Errorf("block is out of order, got %d, exp %d", block.Index, next)
	}

	db.blocks = append(db.blocks, block.Clone())

	return nil
}

// Copy returns a deep copy of the chain.
func (db *Database) Copy() []Block {
	return copyBlocks(db.blocks)
}

// Replace swaps the entire chain for the specified one.
func (db *Database) Replace(blocks []Block) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	db.blocks = copyBlocks(blocks)

	return nil
}
