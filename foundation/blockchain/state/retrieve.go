package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
)

// Snapshot is a read only view of the node. It is also the document peers
// exchange during conflict resolution.
type Snapshot struct {
	Length int              `json:"length"`
	Chain  []database.Block `json:"chain"`
	Nodes  []string         `json:"nodes"`
}

// RetrieveSnapshot returns a copy of the chain and the known peers.
func (s *State) RetrieveSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	peers := s.knownPeers.Copy("")
	nodes := make([]string, len(peers))
	for i, pr := range peers {
		nodes[i] = pr.Host
	}

	return Snapshot{
		Length: s.db.Length(),
		Chain:  s.db.Copy(),
		Nodes:  nodes,
	}
}

// RetrieveNodeID returns the identity credited with mining rewards.
func (s *State) RetrieveNodeID() string {
	return s.nodeID
}

// RetrieveHost returns a copy of host information.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveLength returns the number of blocks in the chain. It does not
// wait for mining to finish.
func (s *State) RetrieveLength() int {
	return int(s.length.Load())
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.LatestBlock()
}

// RetrieveMempool returns a copy of the mempool.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// RetrieveKnownPeers retrieves a copy of the known peer list.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}
