package state

import (
	"context"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Resolve asks every known peer for its chain and replaces the local chain
// with the longest valid one that is strictly longer than ours. Peers that
// can't be reached or answer with garbage are skipped. It reports whether
// the chain was replaced along with a copy of the resulting chain.
func (s *State) Resolve(ctx context.Context) (bool, []database.Block) {
	s.evHandler("state: Resolve: started")
	defer s.evHandler("state: Resolve: completed")

	peers := s.RetrieveKnownPeers()

	// The peers are queried in parallel. Each G owns one slot of these
	// slices so no locking is required.
	chains := make([]PeerChain, len(peers))
	found := make([]bool, len(peers))

	var wg sync.WaitGroup
	wg.Add(len(peers))

	for i, pr := range peers {
		go func() {
			defer wg.Done()

			pc, err := s.NetRequestPeerChain(ctx, pr)
			if err != nil {
				s.evHandler("state: Resolve: peer[%s]: WARNING: skipped: %s", pr, err)
				return
			}

			chains[i] = pc
			found[i] = true
		}()
	}

	wg.Wait()

	// The decision and the replacement happen under the same lock as every
	// other change to the chain.
	s.mu.Lock()
	defer s.mu.Unlock()

	winningLength := s.db.Length()
	var winningChain []database.Block

	for i, pc := range chains {
		if !found[i] {
			continue
		}

		if pc.Length <= winningLength {
			s.evHandler("state: Resolve: peer[%s]: length[%d]: not longer than [%d]", peers[i], pc.Length, winningLength)
			continue
		}

		if err := database.ValidateChain(pc.Chain); err != nil {
			s.evHandler("state: Resolve: peer[%s]: WARNING: rejected: %s", peers[i], err)
			continue
		}

		s.evHandler("state: Resolve: peer[%s]: length[%d]: candidate", peers[i], pc.Length)

		winningLength = pc.Length
		winningChain = pc.Chain
	}

	if winningChain == nil {
		s.evHandler("state: Resolve: chain is authoritative: length[%d]", s.db.Length())
		return false, s.db.Copy()
	}

	if err := s.db.Replace(winningChain); err != nil {
		s.evHandler("state: Resolve: ERROR: replace: %s", err)
		return false, s.db.Copy()
	}
	s.length.Store(int64(s.db.Length()))

	s.evHandler("state: Resolve: chain replaced: length[%d]", s.db.Length())

	return true, s.db.Copy()
}
