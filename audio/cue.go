package audio

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/table"
	"github.com/lixenwraith/pinball/vmath"
)

// CuePlayer turns simulation cues into sounds
type CuePlayer struct {
	voice Voice
	rng   *rand.Rand
}

func NewCuePlayer(v Voice, rng *rand.Rand) *CuePlayer {
	return &CuePlayer{voice: v, rng: rng}
}

func (p *CuePlayer) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBumperHit,
		event.EventSlingHit,
		event.EventTargetLit,
		event.EventGroupCleared,
		event.EventDropDown,
		event.EventBankCleared,
		event.EventBankReset,
		event.EventSpinnerTouch,
		event.EventSpinnerSpin,
		event.EventKickoutCapture,
		event.EventKickoutEject,
		event.EventLaneRollover,
		event.EventBallLaunched,
		event.EventBallDrained,
		event.EventRunStarted,
	}
}

func (p *CuePlayer) HandleEvent(ev event.GameEvent) {
	click := func(pitch float64) { p.voice.Click(pitch, parameter.ClickDuration) }

	switch ev.Type {
	case event.EventBumperHit:
		click(520 + p.rng.Float64()*80)
	case event.EventSlingHit:
		click(560 + p.rng.Float64()*80)
	case event.EventTargetLit:
		click(840)
	case event.EventGroupCleared:
		p.voice.Boom(160, 140*time.Millisecond)
	case event.EventDropDown:
		click(920)
	case event.EventBankCleared:
		p.voice.Boom(190, 140*time.Millisecond)
	case event.EventBankReset:
		click(780)
	case event.EventSpinnerTouch:
		click(680 + p.rng.Float64()*70)
	case event.EventSpinnerSpin:
		click(740)
	case event.EventKickoutCapture:
		click(600)
	case event.EventKickoutEject:
		p.voice.Boom(170, parameter.BoomDuration)
	case event.EventLaneRollover:
		if table.LaneKind(ev.Value) == table.LaneOutlane {
			click(520)
		} else {
			click(760)
		}
	case event.EventBallLaunched:
		click(640 + 260*vmath.Clamp01(ev.Value))
	case event.EventBallDrained:
		p.voice.Boom(120, 160*time.Millisecond)
	case event.EventRunStarted:
		click(820)
	}
}

var _ event.Handler = (*CuePlayer)(nil)
