package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
)

// ErrMalformedPeerResponse is returned when a peer answers with a document
// that is not a chain snapshot.
var ErrMalformedPeerResponse = errors.New("malformed peer response")

// chainURL is the location a peer serves its chain from.
const chainURL = "%s://%s/chain"

// =============================================================================

// PeerChain is the chain a peer advertised along with the length it
// reported for that chain.
type PeerChain struct {
	Length int
	Chain  []database.Block
}

// NetRequestPeerChain asks the peer for its chain.
func (s *State) NetRequestPeerChain(ctx context.Context, pr peer.Peer) (PeerChain, error) {
	s.evHandler("state: NetRequestPeerChain: started: %s", pr)
	defer s.evHandler("state: NetRequestPeerChain: completed: %s", pr)

	url := fmt.Sprintf(chainURL, s.peerScheme, pr.Host)

	var doc struct {
		Length *int             `json:"length"`
		Chain  []database.Block `json:"chain"`
	}
	if err := send(ctx, s.client, http.MethodGet, url, &doc); err != nil {
		return PeerChain{}, err
	}

	if doc.Length == nil || doc.Chain == nil {
		return PeerChain{}, fmt.Errorf("%s: missing length or chain: %w", pr, ErrMalformedPeerResponse)
	}

	s.evHandler("state: NetRequestPeerChain: peer-node[%s]: length[%d]: blocks[%d]", pr, *doc.Length, len(doc.Chain))

	pc := PeerChain{
		Length: *doc.Length,
		Chain:  doc.Chain,
	}

	return pc, nil
}

// =============================================================================

// send is a helper function to send an HTTP request to a node.
func send(ctx context.Context, client *http.Client, method string, url string, dataRecv any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
		return fmt.Errorf("%s: %w", err, ErrMalformedPeerResponse)
	}

	return nil
}
