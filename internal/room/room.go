package room

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"
)

type Msg interface{ isRoomMsg() }

// FromClient carries one action. Rejections go only to Reply (never
// broadcast); acceptance replies nil and broadcasts the new snapshot.
type FromClient struct {
	Cmd   engine.Command
	Reply chan error // buffered, may be nil when the caller ignores rejection
}

func (FromClient) isRoomMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client receives snapshots
}

func (Join) isRoomMsg() {}

// Leave detaches a subscriber; the room closes its outbox.
type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

// Reset re-arms the room with a fresh session while keeping every subscriber
// attached, so fixed spectator/tablet links survive between matches.
type Reset struct {
	Session engine.Session
	Reply   chan Snapshot
}

func (Reset) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

// Snapshot is the broadcast unit: the full session plus series-completion
// marker for the dedicated finished frame.
type Snapshot struct {
	Version  int
	Session  engine.Session
	Finished bool
	Winner   engine.PlayerSlot
}

type View struct {
	Version    int
	NumClients int
	Session    engine.Session
}

// Room serializes all mutations of one session: a single goroutine owns the
// state, so transitions are linearizable without locks.
type Room struct {
	inbox      chan Msg
	session    engine.Session
	version    int
	clients    map[string]chan Snapshot
	lastActive atomic.Int64
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

func New(parent context.Context, initial engine.Session, logger *zap.Logger) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		inbox:   make(chan Msg, 64),
		session: initial,
		clients: make(map[string]chan Snapshot),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	r.touch()

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

// LastActive is safe to read from outside the room goroutine; the hub's
// expiry sweep uses it.
func (r *Room) LastActive() time.Time {
	return time.Unix(0, r.lastActive.Load())
}

func (r *Room) touch() {
	r.lastActive.Store(time.Now().UnixNano())
}

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			r.touch()
			switch msg := m.(type) {
			case Join:
				if old, ok := r.clients[msg.ClientID]; ok && old != msg.Outbox {
					close(old)
				}
				r.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: r.version, Session: r.session}

			case Leave:
				// The room owns channel closure: a registered outbox is
				// closed exactly once, here, on shutdown, or on slow-drop.
				if ch, ok := r.clients[msg.ClientID]; ok {
					close(ch)
					delete(r.clients, msg.ClientID)
				}

			case FromClient:
				newState, events, err := engine.Apply(r.session, msg.Cmd)
				if err != nil {
					// Surface the rejection to the sender only; the group
					// never sees it and state is untouched.
					reply(msg.Reply, err)
					break
				}
				reply(msg.Reply, nil)
				r.session = newState
				r.version++
				snap := Snapshot{Version: r.version, Session: r.session}
				if winner, done := engine.Finished(events); done {
					snap.Finished = true
					snap.Winner = winner
				}
				r.broadcast(snap)

			case Reset:
				r.session = msg.Session
				r.version++
				snap := Snapshot{Version: r.version, Session: r.session}
				if msg.Reply != nil {
					msg.Reply <- snap
				}
				r.broadcast(snap)

			case GetState:
				msg.Reply <- View{
					Version:    r.version,
					NumClients: len(r.clients),
					Session:    r.session,
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func reply(ch chan error, err error) {
	if ch == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}

func (r *Room) broadcast(snap Snapshot) {
	for id, ch := range r.clients {
		select {
		case ch <- snap:
		default:
			// Client is slow/full - drop them.
			if r.logger != nil {
				r.logger.Warn("dropping slow subscriber",
					zap.String("session_id", r.session.ID),
					zap.String("client_id", id))
			}
			close(ch)
			delete(r.clients, id)
		}
	}
}
