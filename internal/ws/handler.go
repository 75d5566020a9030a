package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/catalog"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/hub"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/room"
	"github.com/Gabrielb-Webdev/smash-ban-server/pkg/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades the connection and runs the subscribe/action loop. A
// connection subscribes to one session at a time and may resubscribe; losing
// the connection never destroys the session.
func Handler(h *hub.Hub, rules engine.Ruleset, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // three viewer origins, no cookie auth
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		c := &client{
			id:     uuid.NewString(),
			conn:   conn,
			hub:    h,
			rules:  rules,
			logger: logger,
		}
		logger.Info("client connected", zap.String("client_id", c.id))
		defer logger.Info("client disconnected", zap.String("client_id", c.id))
		defer c.unsubscribe()

		c.readLoop(r.Context())
	}
}

type client struct {
	id     string
	conn   *websocket.Conn
	hub    *hub.Hub
	rules  engine.Ruleset
	logger *zap.Logger
	sub    *room.Room // current subscription, nil before first join
}

func (c *client) readLoop(ctx context.Context) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			return
		}

		var cm types.ClientMessage
		if err := json.Unmarshal(data, &cm); err != nil {
			c.sendError(ctx, "bad json")
			continue
		}
		c.dispatch(ctx, cm)
	}
}

func (c *client) dispatch(ctx context.Context, cm types.ClientMessage) {
	switch cm.Type {
	case "createSession":
		c.createSession(ctx, cm)

	case "joinSession":
		c.joinSession(ctx, cm.SessionID)

	default:
		cmd, errMsg := toCommand(cm)
		if errMsg != "" {
			c.sendError(ctx, errMsg)
			return
		}
		rm := c.resolve(cm.SessionID)
		if rm == nil {
			c.sendError(ctx, "session not found")
			return
		}
		errs := make(chan error, 1)
		rm.Inbox() <- room.FromClient{Cmd: cmd, Reply: errs}
		if err := <-errs; err != nil {
			c.sendError(ctx, err.Error())
		}
	}
}

func (c *client) createSession(ctx context.Context, cm types.ClientMessage) {
	format := engine.Format(cm.Format)
	if !format.Valid() {
		c.sendError(ctx, "invalid format")
		return
	}
	id := cm.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	sess := engine.NewSession(id, cm.Player1, cm.Player2, format, c.rules)
	reply := make(chan *room.Room, 1)
	c.hub.Inbox() <- hub.CreateSession{ID: id, Session: sess, Reply: reply}
	rm := <-reply

	c.subscribe(ctx, rm)
	c.send(ctx, types.ServerMessage{Type: "sessionCreated", Session: &sess})
}

func (c *client) joinSession(ctx context.Context, id string) {
	reply := make(chan *room.Room, 1)
	c.hub.Inbox() <- hub.GetSession{ID: id, Reply: reply}
	rm := <-reply
	if rm == nil {
		c.sendError(ctx, "session not found")
		return
	}

	view := make(chan room.View, 1)
	rm.Inbox() <- room.GetState{Reply: view}
	v := <-view

	c.subscribe(ctx, rm)
	c.send(ctx, types.ServerMessage{Type: "sessionJoined", Version: v.Version, Session: &v.Session})
}

// resolve maps an action's session id onto a room, falling back to the
// current subscription when the id is omitted.
func (c *client) resolve(id string) *room.Room {
	if id == "" {
		return c.sub
	}
	reply := make(chan *room.Room, 1)
	c.hub.Inbox() <- hub.GetSession{ID: id, Reply: reply}
	return <-reply
}

// subscribe hands the room a channel it has never seen before. Rooms close
// subscriber channels on leave, shutdown, and slow-drop, so a channel handed
// out once can never be handed out again; each subscription gets a fresh one
// with its own write pump.
func (c *client) subscribe(ctx context.Context, rm *room.Room) {
	if c.sub == rm {
		return
	}
	c.unsubscribe()
	c.sub = rm
	out := make(chan room.Snapshot, 8)
	go c.pump(ctx, out)
	rm.Inbox() <- room.Join{ClientID: c.id, Outbox: out}
}

func (c *client) unsubscribe() {
	if c.sub == nil {
		return
	}
	c.sub.Inbox() <- room.Leave{ClientID: c.id}
	c.sub = nil
}

// pump relays one subscription's snapshots until the room closes the channel
// or the connection goes away.
func (c *client) pump(ctx context.Context, out <-chan room.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-out:
			if !ok {
				return
			}
			c.send(ctx, types.ServerMessage{
				Type:    "sessionUpdated",
				Version: snap.Version,
				Session: &snap.Session,
			})
			if snap.Finished {
				c.send(ctx, types.ServerMessage{
					Type:    "seriesFinished",
					Version: snap.Version,
					Session: &snap.Session,
					Winner:  string(snap.Winner),
				})
			}
		}
	}
}

func (c *client) send(ctx context.Context, msg types.ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := c.conn.Write(wctx, websocket.MessageText, payload); err != nil {
		c.logger.Debug("write failed", zap.String("client_id", c.id), zap.Error(err))
	}
}

func (c *client) sendError(ctx context.Context, msg string) {
	c.send(ctx, types.ServerMessage{Type: "sessionError", Error: msg})
}

// toCommand validates and translates an action frame; the returned string is
// an error message for the sender when translation fails.
func toCommand(cm types.ClientMessage) (engine.Command, string) {
	switch cm.Type {
	case "reportCoinTossWinner":
		winner := engine.PlayerSlot(cm.Winner)
		if !winner.Valid() {
			return engine.Command{}, "invalid winner"
		}
		return engine.Command{Type: engine.CmdReportRPSWinner, Winner: winner}, ""

	case "banStage":
		return engine.Command{
			Type:   engine.CmdBanStage,
			Player: engine.PlayerSlot(cm.Player),
			Stage:  cm.StageID,
		}, ""

	case "selectStage":
		return engine.Command{
			Type:   engine.CmdSelectStage,
			Player: engine.PlayerSlot(cm.Player),
			Stage:  cm.StageID,
		}, ""

	case "selectCharacter":
		if !catalog.IsCharacter(cm.CharacterID) {
			return engine.Command{}, "unknown character"
		}
		return engine.Command{
			Type:      engine.CmdSelectCharacter,
			Player:    engine.PlayerSlot(cm.Player),
			Character: cm.CharacterID,
		}, ""

	case "reportGameWinner":
		return engine.Command{
			Type:     engine.CmdReportGameWinner,
			Winner:   engine.PlayerSlot(cm.Winner),
			Tier:     engine.ReportTier(cm.Tier),
			Reporter: engine.PlayerSlot(cm.Reporter),
		}, ""

	case "resetSeries":
		return engine.Command{Type: engine.CmdResetSeries}, ""

	case "endMatchEarly":
		return engine.Command{
			Type:   engine.CmdEndMatchEarly,
			Winner: engine.PlayerSlot(cm.Winner),
		}, ""

	case "updatePlayers":
		if cm.Format != "" && !engine.Format(cm.Format).Valid() {
			return engine.Command{}, "invalid format"
		}
		return engine.Command{
			Type:    engine.CmdUpdatePlayers,
			Player1: cm.Player1,
			Player2: cm.Player2,
			Format:  engine.Format(cm.Format),
		}, ""

	default:
		return engine.Command{}, "unknown type"
	}
}
