package controller

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Rune keys are folded into the tcell.Key space so that one map covers both
// real keys and letter/digit presses.
const (
	Key1 tcell.Key = iota + '1'
	Key2
	Key3
	Key4
	Key5
)

const (
	KeyA tcell.Key = iota + 'a'
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
)

const (
	KeyShiftA tcell.Key = iota + 'A'
	KeyShiftB
	KeyShiftC
	KeyShiftD
	KeyShiftE
	KeyShiftF
	KeyShiftG
	KeyShiftH
	KeyShiftI
	KeyShiftJ
	KeyShiftK
	KeyShiftL
	KeyShiftM
	KeyShiftN
	KeyShiftO
	KeyShiftP
	KeyShiftQ
	KeyShiftR
	KeyShiftS
)

// AsKey converts a rune-based event into a key-based one so it can be looked
// up in the event maps.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	key := tcell.Key(evt.Rune())
	if evt.Modifiers() == tcell.ModShift {
		key = tcell.Key(unicode.ToUpper(rune(key)))
	}

	return key
}
