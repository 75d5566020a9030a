package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/room"
)

type HubMsg interface{ isHubMsg() }

// CreateSession creates the room, or resets the existing one in place so
// that subscribers on the shared link stay attached ("re-arm" policy).
type CreateSession struct {
	ID      string
	Session engine.Session
	Reply   chan *room.Room
}

type GetSession struct {
	ID    string
	Reply chan *room.Room
}

// EnsureSession creates only if absent; an existing room is returned as-is.
type EnsureSession struct {
	ID      string
	Session engine.Session // only used if creation happens
	Reply   chan *room.Room
}

type RemoveSession struct{ ID string }

type CountSessions struct {
	Reply chan int
}

// Sweep shuts down rooms idle longer than IdleFor.
type Sweep struct {
	IdleFor time.Duration
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (CountSessions) isHubMsg() {}
func (Sweep) isHubMsg()         {}
func (ShutdownHub) isHubMsg()   {}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if rm := h.rooms[msg.ID]; rm != nil {
					rm.Inbox() <- room.Reset{Session: msg.Session}
					msg.Reply <- rm
					break
				}
				rm := room.New(h.ctx, msg.Session, h.logger)
				h.rooms[msg.ID] = rm
				h.logger.Info("session created", zap.String("session_id", msg.ID))
				msg.Reply <- rm

			case GetSession:
				msg.Reply <- h.rooms[msg.ID] // may be nil

			case EnsureSession:
				if rm := h.rooms[msg.ID]; rm != nil {
					msg.Reply <- rm
					break
				}
				rm := room.New(h.ctx, msg.Session, h.logger)
				h.rooms[msg.ID] = rm
				h.logger.Info("session created", zap.String("session_id", msg.ID))
				msg.Reply <- rm

			case RemoveSession:
				if rm := h.rooms[msg.ID]; rm != nil {
					rm.Inbox() <- room.Shutdown{}
					delete(h.rooms, msg.ID)
					h.logger.Info("session removed", zap.String("session_id", msg.ID))
				}

			case CountSessions:
				msg.Reply <- len(h.rooms)

			case Sweep:
				cutoff := time.Now().Add(-msg.IdleFor)
				for id, rm := range h.rooms {
					if rm.LastActive().Before(cutoff) {
						rm.Inbox() <- room.Shutdown{}
						delete(h.rooms, id)
						h.logger.Info("session expired", zap.String("session_id", id))
					}
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for _, rm := range h.rooms {
		rm.Inbox() <- room.Shutdown{}
	}
	clear(h.rooms)
	h.cancel()
}
