package savefile

import (
	"fmt"
)

// Game identifies a supported title whose save data can be snapshotted.
type Game int

// Games, in discovery order.
const (
	DarkSoulsIII Game = iota
	EldenRing
)

// Games lists every supported Game in discovery order.
var Games = []Game{DarkSoulsIII, EldenRing}

// String returns the display name of the game.
func (g Game) String() string {
	switch g {
	case DarkSoulsIII:
		return "Dark Souls III"
	case EldenRing:
		return "Elden Ring"
	default:
		return fmt.Sprintf("Game(%d)", int(g))
	}
}

// DataDir is the name of the game's directory under the save-data base
// directory.
func (g Game) DataDir() string {
	switch g {
	case DarkSoulsIII:
		return "DarkSoulsIII"
	case EldenRing:
		return "EldenRing"
	default:
		return ""
	}
}

// FileName is the name of the save file within a profile directory.
func (g Game) FileName() string {
	switch g {
	case DarkSoulsIII:
		return "DS30000.sl2"
	case EldenRing:
		return "ER0000.sl2"
	default:
		return ""
	}
}
