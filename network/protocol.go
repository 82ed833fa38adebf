package network

import (
	"encoding/json"

	"github.com/lixenwraith/pinball/game"
)

// MessageType names a spectator frame
type MessageType string

const (
	MsgHello MessageType = "hello" // Sent once on connect with the current state
	MsgHud   MessageType = "hud"
	MsgPhase MessageType = "phase"
)

// Frame is one JSON message on the feed
// HUD fields are inlined so a hud frame reads {"type":"hud","score":...}
// Frame.Phase shadows Hud.Phase, so encoders set it from the snapshot
type Frame struct {
	Type  MessageType `json:"type"`
	Table string      `json:"table,omitempty"`
	Phase *game.Phase `json:"phase,omitempty"`
	*game.Hud
}

func encodeHud(h game.Hud) ([]byte, error) {
	return json.Marshal(Frame{Type: MsgHud, Phase: &h.Phase, Hud: &h})
}

func encodePhase(p game.Phase) ([]byte, error) {
	return json.Marshal(Frame{Type: MsgPhase, Phase: &p})
}

func encodeHello(table string, h game.Hud) ([]byte, error) {
	return json.Marshal(Frame{Type: MsgHello, Table: table, Phase: &h.Phase, Hud: &h})
}
