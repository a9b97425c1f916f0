package savefile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortenPath(t *testing.T) {
	for _, tc := range []struct {
		name string
		path string
		want string
	}{
		{name: "short", path: `C:\saves\ER0000.sl2`, want: `C:\saves\ER0000.sl2`},
		{name: "exactly 32", path: strings.Repeat("a", 32), want: strings.Repeat("a", 32)},
		{name: "33", path: "b" + strings.Repeat("a", 32), want: "..." + strings.Repeat("a", 32)},
		{
			name: "windows path",
			path: `C:\Users\player\AppData\Roaming\EldenRing\0123456789abcdef\ER0000.sl2`,
			want: `...Ring\0123456789abcdef\ER0000.sl2`,
		},
		{name: "graphemes", path: strings.Repeat("é", 40), want: "..." + strings.Repeat("é", 32)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShortenPath(tc.path, MaxDisplayPathLength))
		})
	}
}

func TestLocationString(t *testing.T) {
	l := Location{Game: DarkSoulsIII, Path: "/saves/DS30000.sl2"}
	assert.Equal(t, "Dark Souls III: /saves/DS30000.sl2", l.String())
}

func TestGameNames(t *testing.T) {
	assert.Equal(t, "Elden Ring", EldenRing.String())
	assert.Equal(t, "EldenRing", EldenRing.DataDir())
	assert.Equal(t, "ER0000.sl2", EldenRing.FileName())
	assert.Equal(t, "Dark Souls III", DarkSoulsIII.String())
	assert.Equal(t, "DarkSoulsIII", DarkSoulsIII.DataDir())
	assert.Equal(t, "DS30000.sl2", DarkSoulsIII.FileName())
	assert.Equal(t, "Game(7)", Game(7).String())
}
