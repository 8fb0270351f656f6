package public

import (
	"net/http"

	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// Routes binds all the public routes. The routes are not versioned since
// peers request the chain from the root of the node.
func Routes(app *web.App, cfg Config) {
	pbl := Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	const version = ""

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/chain", pbl.Chain)
	app.Handle(http.MethodGet, version, "/mine", pbl.Mine)
	app.Handle(http.MethodPost, version, "/transactions/new", pbl.AddTransaction)
	app.Handle(http.MethodPost, version, "/nodes/register", pbl.RegisterPeers)
	app.Handle(http.MethodGet, version, "/nodes/resolve", pbl.Resolve)

	// Paths used by earlier clients of the node.
	app.Handle(http.MethodPost, version, "/new-transaction", pbl.AddTransaction)
	app.Handle(http.MethodPost, version, "/register-node", pbl.RegisterPeers)
	app.Handle(http.MethodGet, version, "/consensus", pbl.Resolve)
}
