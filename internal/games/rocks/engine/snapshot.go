package engine

import (
	"encoding/binary"
	"hash/fnv"
)

// Snapshot is a comparable summary of the world, used to check determinism.
type Snapshot struct {
	Level    int
	Score    int
	Dead     bool
	HasKey   bool
	Won      bool
	Player   Point
	Facing   Facing
	GridHash uint64
	Entities int
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	live := 0
	for _, e := range w.entities {
		if e.Kind != EntityNothing {
			live++
		}
	}
	return Snapshot{
		Level:    w.player.Level,
		Score:    w.player.Score,
		Dead:     w.player.Dead,
		HasKey:   w.player.HasKey,
		Won:      w.won,
		Player:   w.player.Pos,
		Facing:   w.player.Facing,
		GridHash: w.grid.Hash(),
		Entities: live,
	}
}

// Hash digests the grid, the player and every entity.
func (w *World) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	put := func(v int) { putU(uint64(v)) }
	putU(w.grid.Hash())
	put(w.player.Pos.X)
	put(w.player.Pos.Y)
	put(int(w.player.Facing))
	put(w.player.Score)
	put(w.player.Level)
	put(boolInt(w.player.HasKey))
	put(boolInt(w.player.Dead))
	put(boolInt(w.won))
	for _, e := range w.entities {
		put(e.Pos.X)
		put(e.Pos.Y)
		put(e.Vel)
		put(int(e.Kind))
	}
	return h.Sum64()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
