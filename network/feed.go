package network

import (
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/game"
)

// Feed streams HUD snapshots and phase changes to websocket spectators
// Publish methods run on the simulation goroutine and never block it
type Feed struct {
	cfg      *Config
	table    string
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	peers  map[PeerID]*Peer
	nextID PeerID

	last     atomic.Pointer[game.Hud]
	lastSent time.Time // Publisher goroutine only
	sent     atomic.Uint64
}

// NewFeed creates a feed for the named table
func NewFeed(cfg *Config, table string) *Feed {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Feed{
		cfg:   cfg,
		table: table,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		peers: make(map[PeerID]*Peer),
	}
}

// Attach subscribes the feed to a session's hubs and returns the detach function
func (f *Feed) Attach(hud *event.Hub[game.Hud], phases *event.Hub[game.Phase]) func() {
	unHud := hud.Subscribe(f.PublishHud)
	unPhase := phases.Subscribe(f.PublishPhase)
	return func() {
		unHud()
		unPhase()
	}
}

// PublishHud records the snapshot and broadcasts it at most once per HudInterval
func (f *Feed) PublishHud(h game.Hud) {
	f.last.Store(&h)
	if f.PeerCount() == 0 {
		return
	}
	now := time.Now()
	if now.Sub(f.lastSent) < f.cfg.HudInterval {
		return
	}
	f.lastSent = now

	data, err := encodeHud(h)
	if err != nil {
		log.Printf("[spectate] encode hud: %v", err)
		return
	}
	f.broadcast(data)
}

// PublishPhase broadcasts immediately and lets the next HUD through
func (f *Feed) PublishPhase(p game.Phase) {
	f.lastSent = time.Time{}
	data, err := encodePhase(p)
	if err != nil {
		log.Printf("[spectate] encode phase: %v", err)
		return
	}
	f.broadcast(data)
}

func (f *Feed) broadcast(data []byte) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, p := range f.peers {
		if p.Send(data) {
			f.sent.Add(1)
		}
	}
}

// Sent returns frames queued across all peers
func (f *Feed) Sent() uint64 {
	return f.sent.Load()
}

func (f *Feed) PeerCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.peers)
}

// ServeWS upgrades a spectator and greets it with the latest snapshot
func (f *Feed) ServeWS(c *gin.Context) {
	if f.PeerCount() >= f.cfg.MaxPeers {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many spectators"})
		return
	}

	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[spectate] upgrade failed: %v", err)
		return
	}

	f.mu.Lock()
	f.nextID++
	p := newPeer(f.nextID, conn, f.cfg)
	f.peers[p.ID] = p
	f.mu.Unlock()

	var hud game.Hud
	if h := f.last.Load(); h != nil {
		hud = *h
	}
	if data, err := encodeHello(f.table, hud); err == nil {
		p.Send(data)
	}

	log.Printf("[spectate] peer %d connected from %s", p.ID, p.Addr)
	p.start(f.remove)
}

func (f *Feed) remove(p *Peer) {
	f.mu.Lock()
	delete(f.peers, p.ID)
	f.mu.Unlock()
	log.Printf("[spectate] peer %d left, %d frames dropped", p.ID, p.Dropped())
}

// Close disconnects every spectator
func (f *Feed) Close() {
	f.mu.Lock()
	peers := make([]*Peer, 0, len(f.peers))
	for _, p := range f.peers {
		peers = append(peers, p)
	}
	f.mu.Unlock()

	for _, p := range peers {
		p.Close()
	}
}
