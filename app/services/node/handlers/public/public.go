// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	v1 "github.com/ardanlabs/powledger/business/web/v1"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/validate"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Chain returns the chain along with the known peers. This is also the
// document peers request during conflict resolution.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveSnapshot(), http.StatusOK)
}

// Mine solves the next block, crediting this node with the mining reward.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Mining runs to completion even if the client goes away.
	block, err := h.State.MineNewBlock(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("mining block: %w", err)
	}

	h.Log.Infow("mined block", "traceid", v.TraceID, "index", block.Index, "nonce", block.Nonce, "txs", len(block.Transactions))

	resp := blockMined{
		Message:      "A new block has been mined.",
		Index:        block.Index,
		Transactions: block.Transactions,
		Nonce:        block.Nonce,
		PrevHash:     block.PrevHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// AddTransaction adds a new transaction to the mempool.
func (h Handlers) AddTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return v1.NewRequestError(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", *ntx.Sender, "recipient", *ntx.Recipient, "amount", *ntx.Amount)

	index, err := h.State.SubmitTransaction(*ntx.Sender, *ntx.Recipient, *ntx.Amount)
	if err != nil {
		if errors.Is(err, database.ErrInvalidAmount) {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
		return err
	}

	latestBlock, err := h.State.RetrieveLatestBlock()
	if err != nil {
		return err
	}

	resp := txAdded{
		Message:      fmt.Sprintf("This transaction will be added to the block %d", index),
		Transactions: database.Tx{Sender: *ntx.Sender, Recipient: *ntx.Recipient, Amount: *ntx.Amount},
		BlockHash:    latestBlock.Hash(),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// RegisterPeers adds the specified network locations to the known peers.
func (h Handlers) RegisterPeers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var np newPeers
	if err := web.Decode(r, &np); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return v1.NewRequestError(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	// Reject the whole request before registering anything.
	for _, address := range np.Nodes {
		if _, err := peer.Parse(address); err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
	}

	for _, address := range np.Nodes {
		added, err := h.State.RegisterPeer(address)
		if err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
		h.Log.Infow("register peer", "traceid", v.TraceID, "address", address, "added", added)
	}

	nodes := h.State.RetrieveSnapshot().Nodes

	resp := peersAdded{
		Message:    "A list of new nodes have been added.",
		TotalNodes: len(nodes),
		Nodes:      nodes,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Resolve replaces the chain with the longest valid chain held by the
// known peers, if any is longer than ours.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced, chain := h.State.Resolve(ctx)

	h.Log.Infow("resolve", "traceid", web.GetTraceID(ctx), "replaced", replaced, "length", len(chain))

	resp := resolved{
		Message: "This chain is authoritative",
		Chain:   chain,
	}

	if replaced {
		resp = resolved{
			Message:  "This chain was replaced",
			NewChain: chain,
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
