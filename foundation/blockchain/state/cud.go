package state

import (
	"fmt"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
)

// SubmitTransaction adds a new transaction to the mempool. It returns the
// index of the block expected to commit it. That index is not a guarantee,
// a chain replacement can happen before the next block is mined.
func (s *State) SubmitTransaction(sender string, recipient string, amount float64) (int, error) {
	tx, err := database.NewTx(sender, recipient, amount)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	latestBlock, err := s.db.LatestBlock()
	if err != nil {
		return 0, err
	}

	n := s.mempool.Add(tx)
	s.evHandler("state: SubmitTransaction: tx[%s]: mempool[%d]", tx, n)

	return latestBlock.Index + 1, nil
}

// AppendBlock builds a block holding every transaction in the mempool,
// appends it to the chain and empties the mempool.
func (s *State) AppendBlock(nonce uint64, prevHash string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := database.NewBlock(s.db.Length()+1, time.Now(), s.mempool.Copy(), nonce, prevHash)
	if err := s.writeBlock(block); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// RegisterPeer parses the network location and adds its host to the set of
// known peers. It reports whether the peer was new.
func (s *State) RegisterPeer(address string) (bool, error) {
	pr, err := peer.Parse(address)
	if err != nil {
		return false, fmt.Errorf("register peer: %w", err)
	}

	s.mu.Lock()
	added := s.knownPeers.Add(pr)
	s.mu.Unlock()

	if !added {
		return false, nil
	}

	s.evHandler("state: RegisterPeer: added peer[%s]", pr)

	if s.Worker != nil {
		s.Worker.SignalResolve()
	}

	return true, nil
}

// =============================================================================

// writeBlock appends the block to the chain and resets the mempool. The
// caller must hold the state mutex.
func (s *State) writeBlock(block database.Block) error {
	if err := s.db.Write(block); err != nil {
		return err
	}

	s.mempool.Truncate()
	s.length.Store(int64(s.db.Length()))

	s.evHandler("state: writeBlock: blk[%d]: txs[%d]: hash[%s]", block.Index, len(block.Transactions), block.Hash())

	return nil
}
