package parameter

import "time"

// Audio
const (
	AudioSampleRate   = 48000
	AudioBufferLength = 100 * time.Millisecond
	AudioMasterVolume = 0.65

	// Click is a short triangle blip
	ClickDuration = 45 * time.Millisecond
	ClickAttack   = 10 * time.Millisecond
	ClickPeak     = 0.28

	// Boom is a sawtooth drop toward BoomFloorPitch
	BoomDuration   = 120 * time.Millisecond
	BoomAttack     = 15 * time.Millisecond
	BoomPeak       = 0.32
	BoomFloorPitch = 60.0

	// EnvelopeFloor is the gain exponential ramps start from and decay to
	EnvelopeFloor = 0.0001
)
