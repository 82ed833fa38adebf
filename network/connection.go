package network

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/pinball/core"
)

// PeerID uniquely identifies a connected spectator
type PeerID uint32

// Peer is one spectator connection
type Peer struct {
	ID   PeerID
	Addr string

	conn   *websocket.Conn
	cfg    *Config
	sendCh chan []byte

	dropped atomic.Uint64

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(id PeerID, conn *websocket.Conn, cfg *Config) *Peer {
	return &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		cfg:     cfg,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// Send queues a frame without blocking
// Returns false if the peer is closed or its queue is full
func (p *Peer) Send(data []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	select {
	case p.sendCh <- data:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// Dropped returns frames discarded because the peer fell behind
func (p *Peer) Dropped() uint64 {
	return p.dropped.Load()
}

// Close stops both pumps; safe to call more than once
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.conn.Close()
	})
}

// start runs the pumps; onClose fires once after the read side ends
func (p *Peer) start(onClose func(*Peer)) {
	core.Go(p.writePump)
	core.Go(func() {
		p.readPump()
		p.Close()
		onClose(p)
	})
}

// readPump discards client messages and keeps the read deadline fresh on pong
func (p *Peer) readPump() {
	p.conn.SetReadLimit(512)
	p.conn.SetReadDeadline(time.Now().Add(p.cfg.PongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(p.cfg.PongWait))
	})

	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[spectate] peer %d read error: %v", p.ID, err)
			}
			return
		}
	}
}

// writePump writes queued frames and pings on PingInterval
func (p *Peer) writePump() {
	ticker := time.NewTicker(p.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		p.Close()
	}()

	for {
		select {
		case <-p.closeCh:
			return

		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[spectate] peer %d write error: %v", p.ID, err)
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[spectate] peer %d ping error: %v", p.ID, err)
				return
			}
		}
	}
}
