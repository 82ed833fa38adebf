package main

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pinball/input"
)

// handleEvent applies one terminal event, returning false to quit
// Terminals report presses and auto-repeats only; the input latches time out holds
func (a *app) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			a.send(cmdStart)
		case tcell.KeyF3:
			a.debug.Toggle()
		case tcell.KeyLeft:
			a.input.Press(input.ControlLeftFlipper, now)
		case tcell.KeyRight:
			a.input.Press(input.ControlRightFlipper, now)
		case tcell.KeyDown:
			a.input.Press(input.ControlLaunch, now)
		case tcell.KeyRune:
			switch unicode.ToLower(ev.Rune()) {
			case 'q':
				return false
			case 'z':
				a.input.Press(input.ControlLeftFlipper, now)
			case 'm', '/':
				a.input.Press(input.ControlRightFlipper, now)
			case ' ':
				a.input.Press(input.ControlLaunch, now)
			}
		}

	case *tcell.EventResize:
		a.send(cmdResize)

	case *tcell.EventFocus:
		if !ev.Focused {
			a.input.Blur()
		}
	}
	return true
}
