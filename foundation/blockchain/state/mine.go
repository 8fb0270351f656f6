package state

import (
	"context"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// MineNewBlock adds the mining reward for this node, solves the POW puzzle
// for a block holding the mempool and appends it to the chain. The state
// stays locked for the whole operation so the mempool and the previous
// block can't change underneath the search.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: started")
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	prevBlock, err := s.db.LatestBlock()
	if err != nil {
		return database.Block{}, err
	}

	// The reward joins the pool snapshot the block captures. A cancelled
	// search leaves the mempool as it was.
	reward := database.Tx{
		Sender:    RewardSender,
		Recipient: s.nodeID,
		Amount:    MiningReward,
	}
	trans := append(s.mempool.Copy(), reward)

	candidate := database.NewBlock(s.db.Length()+1, time.Now(), trans, 0, prevBlock.Hash())

	s.evHandler("state: MineNewBlock: MINING: perform POW: blk[%d]: txs[%d]", candidate.Index, len(trans))

	nonce, err := database.Mine(ctx, candidate, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}
	candidate.Nonce = nonce

	if err := s.writeBlock(candidate); err != nil {
		return database.Block{}, err
	}

	return candidate, nil
}
