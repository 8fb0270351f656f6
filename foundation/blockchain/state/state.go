// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
)

// Mining reward settings. The reward transaction is added to every block
// this node mines.
const (
	RewardSender = "0"
	MiningReward = 1
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the blockchain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing background support for conflict resolution.
type Worker interface {
	Shutdown()
	SignalResolve()
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	NodeID     string
	Host       string
	KnownPeers *peer.PeerSet
	Client     *http.Client
	PeerScheme string
	EvHandler  EventHandler
}

// State manages the blockchain database. Every change to the chain, the
// mempool, or the set of known peers happens while holding mu.
type State struct {
	nodeID     string
	host       string
	client     *http.Client
	peerScheme string
	evHandler  EventHandler
	mu         sync.Mutex

	knownPeers *peer.PeerSet
	mempool    *mempool.Mempool
	db         *database.Database

	// length mirrors the chain length so health checks can read it
	// without waiting on mu while a block is being mined.
	length atomic.Int64

	Worker Worker
}

// New constructs a new blockchain for data management. The chain starts
// with a single genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	peerScheme := cfg.PeerScheme
	if peerScheme == "" {
		peerScheme = "https"
	}

	genesis := database.Genesis(time.Now())

	state := State{
		nodeID:     cfg.NodeID,
		host:       cfg.Host,
		client:     client,
		peerScheme: peerScheme,
		evHandler:  ev,

		knownPeers: knownPeers,
		mempool:    mempool.New(),
		db:         database.New(genesis),
	}

	state.length.Store(int64(state.db.Length()))

	ev("state: New: genesis blk[%d]: hash[%s]", genesis.Index, genesis.Hash())

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain background activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
