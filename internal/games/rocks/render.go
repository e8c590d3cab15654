package rocks

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
)

type glyph struct {
	r rune
	c core.Color
}

// Screen glyphs. These differ from the level file legend, which has to stay
// plain ASCII.
var tileGlyphs = map[engine.Tile]glyph{
	engine.TileEmpty:          {' ', core.ColorDefault},
	engine.TileDirt:           {'░', core.ColorBrown},
	engine.TileWall:           {'█', core.ColorGray},
	engine.TileStairs:         {'≡', core.ColorBrightWhite},
	engine.TileLockedStairs:   {'≡', core.ColorRed},
	engine.TileRock:           {'O', core.ColorWhite},
	engine.TileDiamond:        {'◆', core.ColorBrightCyan},
	engine.TileKeySilver:      {'ƒ', core.ColorBrightWhite},
	engine.TileKeyGold:        {'ƒ', core.ColorBrightYellow},
	engine.TilePlayerSquashed: {'x', core.ColorBrightRed},
	engine.TilePlayerDead:     {'X', core.ColorBrightRed},
	engine.TileDirtDecay1:     {'▓', core.ColorOrange},
	engine.TileDirtDecay2:     {'▒', core.ColorOrange},
	engine.TileDirtDecay3:     {'░', core.ColorOrange},
	engine.TileDirtDecay4:     {'·', core.ColorOrange},
	engine.TileBomb1:          {'●', core.ColorRed},
	engine.TileBomb2:          {'●', core.ColorBrightRed},
	engine.TileBomb3:          {'●', core.ColorRed},
	engine.TileBomb4:          {'●', core.ColorBrightRed},
	engine.TileBomb5:          {'✶', core.ColorBrightYellow},
	engine.TileBomb6:          {'✶', core.ColorYellow},
}

var entityGlyphs = map[engine.EntityKind]glyph{
	engine.EntityRock:       tileGlyphs[engine.TileRock],
	engine.EntityDiamond:    tileGlyphs[engine.TileDiamond],
	engine.EntityPlayerDead: tileGlyphs[engine.TilePlayerDead],
}

func playerGlyph(p engine.Player) glyph {
	switch {
	case p.Dead:
		return tileGlyphs[engine.TilePlayerDead]
	case p.Facing == engine.FacingLeft:
		return glyph{'◄', core.ColorBrightYellow}
	default:
		return glyph{'►', core.ColorBrightYellow}
	}
}

// Render draws the HUD, the visible part of the level and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.world == nil {
		msg := "No levels loaded"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.renderOverlay(dst, "Level error", msg)
		return
	}

	g.renderHUD(dst)
	g.renderField(dst)

	p := g.world.Player()
	switch {
	case g.world.Won():
		g.renderOverlay(dst, "Campaign complete!", fmt.Sprintf("Final score: %d", p.Score))
	case p.Dead:
		g.renderOverlay(dst, "Squashed!", "R retry level   N new game")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	p := g.world.Player()
	hud := fmt.Sprintf(" %s  Level %d/%d: %s  Diamonds: %d",
		g.Title(), p.Level+1, g.campaign.Count(), g.world.LevelName(), p.Score)
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	if p.HasKey {
		key := tileGlyphs[engine.TileKeySilver]
		dst.DrawTextColor(utf8.RuneCountInString(hud)+2, 0, string(key.r)+" key", key.c)
	}
	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}

// renderField draws the grid through the camera, then entities and player.
func (g *Game) renderField(dst *core.Screen) {
	ox, oy := g.camera.Origin()
	lw, lh := g.world.LevelSize()
	p := g.world.Player()

	toScreen := func(cell engine.Point) (int, int, bool) {
		sx, sy := cell.X-ox, cell.Y-oy+hudHeight
		return sx, sy, sy >= hudHeight && sx >= 0 && sx < dst.Width() && sy < dst.Height()
	}

	for sy := hudHeight; sy < dst.Height(); sy++ {
		for sx := range dst.Width() {
			cell := engine.P(ox+sx, oy+sy-hudHeight)
			if cell.X < 0 || cell.Y < 0 || cell.X >= lw || cell.Y >= lh {
				continue
			}
			t := g.world.TileAt(cell)
			if t == engine.TilePlayer {
				continue
			}
			if gl, ok := tileGlyphs[t]; ok {
				dst.SetColor(sx, sy, gl.r, gl.c)
			}
		}
	}

	for _, e := range g.world.Entities() {
		gl, ok := entityGlyphs[e.Kind]
		if !ok {
			continue
		}
		// Round pixel positions to the nearest cell.
		cell := engine.P(e.Pos.X+engine.TileSize/2, e.Pos.Y+engine.TileSize/2)
		cell = engine.P(floorCell(cell.X), floorCell(cell.Y))
		if sx, sy, ok := toScreen(cell); ok {
			dst.SetColor(sx, sy, gl.r, gl.c)
		}
	}

	if g.world.TileAt(p.Pos) == engine.TilePlayer {
		if sx, sy, ok := toScreen(p.Pos); ok {
			gl := playerGlyph(p)
			dst.SetColor(sx, sy, gl.r, gl.c)
		}
	}
}

func floorCell(px int) int {
	if px < 0 {
		return (px - engine.TileSize + 1) / engine.TileSize
	}
	return px / engine.TileSize
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}
