package game

import "fmt"

// Price is what building kind at (c, r) would cost: the base price on open
// ground, or the doubled upgrade price over a same-kind tower. It returns 0
// for unknown kinds.
func (g *Game) Price(kind TowerKind, c, r int) int {
	st, ok := g.catalog.Towers[kind]
	if !ok {
		return 0
	}
	if t := g.towerAt(c, r); t != nil && t.Kind == kind {
		return UpgradePrice(st.Price, t.Level)
	}
	return st.Price
}

// CanAfford reports whether the current money covers building kind at (c, r).
func (g *Game) CanAfford(kind TowerKind, c, r int) bool {
	p := g.Price(kind, c, r)
	return p > 0 && g.money >= p
}

// CanPlace reports whether building kind at (c, r) is legal, ignoring money.
// It never mutates the game; path connectivity is checked on a scratch grid.
func (g *Game) CanPlace(c, r int, kind TowerKind) bool {
	return g.check(c, r, kind) == ""
}

// PlaceTower builds or upgrades a tower. It returns nil when the placement is
// rejected; a rejected path-blocking build leaves the grid and path untouched.
func (g *Game) PlaceTower(c, r int, kind TowerKind) *Tower {
	t, _ := g.place(c, r, kind)
	return t
}

// GridClick is PlaceTower for input front-ends: rejections are recorded in the
// sim log with their reason.
func (g *Game) GridClick(c, r int, kind TowerKind) *Tower {
	t, reason := g.place(c, r, kind)
	if t == nil {
		g.log.Add(g.tick, "--", "place", "rejected",
			fmt.Sprintf("%s at %v: %s", kind, Cell{C: c, R: r}, reason), 0)
	}
	return t
}

// check returns the reason a placement would be rejected, or "".
func (g *Game) check(c, r int, kind TowerKind) string {
	if reason := g.checkRules(c, r, kind); reason != "" {
		return reason
	}
	if g.grid.At(c, r).Kind == TilePath && !g.grid.HasTower(c, r) {
		scratch := g.grid.clone()
		scratch.setTower(c, r, TowerID(len(g.towers)+1))
		if scratch.FindPath() == nil {
			return ReasonBlocksPath
		}
	}
	return ""
}

// checkRules is every rejection except connectivity and money.
func (g *Game) checkRules(c, r int, kind TowerKind) string {
	if g.lives <= 0 || g.phase == PhaseDefeated {
		return ReasonDefeated
	}
	if _, ok := g.catalog.Towers[kind]; !ok {
		return ReasonUnknownKind
	}
	if !g.unlocked(kind) {
		return ReasonLocked
	}
	if g.grid.IsOutside(c, r) {
		return ReasonIllegalCell
	}
	if t := g.towerAt(c, r); t != nil {
		if t.Kind != kind {
			return ReasonOccupied
		}
		if t.Level >= MaxTowerLevel {
			return ReasonMaxLevel
		}
		return ""
	}
	if !g.grid.IsEmpty(c, r) {
		return ReasonIllegalCell
	}
	if g.grid.At(c, r).Kind == TilePath && g.phase == PhaseRunning {
		return ReasonWaveRunning
	}
	return ""
}

// place performs a placement and returns the tower or the rejection reason.
func (g *Game) place(c, r int, kind TowerKind) (*Tower, string) {
	if reason := g.checkRules(c, r, kind); reason != "" {
		return nil, reason
	}
	price := g.Price(kind, c, r)
	if g.money < price {
		return nil, ReasonUnaffordable
	}

	if t := g.towerAt(c, r); t != nil {
		t.upgrade(price)
		g.money -= price
		g.perf[t.ID].Invested += price
		g.log.Add(g.tick, t.label(), "place", "upgrade", fmt.Sprintf("%s to level %d", kind, t.Level), float64(price))
		return t, ""
	}

	onPath := g.grid.At(c, r).Kind == TilePath
	id := TowerID(len(g.towers) + 1)
	g.grid.setTower(c, r, id)
	if onPath {
		path := g.grid.FindPath()
		if path == nil {
			g.grid.clearTower(c, r)
			if g.path = g.grid.FindPath(); g.path == nil {
				panic(fmt.Sprintf("game: could not restore path after rejecting %s at %v", kind, Cell{C: c, R: r}))
			}
			g.log.Add(g.tick, "--", "path", "rollback", fmt.Sprintf("%s at %v", kind, Cell{C: c, R: r}), 0)
			return nil, ReasonBlocksPath
		}
		g.setPath(path)
	}

	t := newTower(id, Cell{C: c, R: r}, g.catalog.Towers[kind])
	g.towers = append(g.towers, t)
	g.perf[t.ID] = newTowerPerf(t, price)
	g.money -= price
	g.log.Add(g.tick, t.label(), "place", "build", fmt.Sprintf("%s at %v", kind, t.Cell), float64(price))
	return t, ""
}

// setPath installs a recomputed route and hands it to every enemy.
func (g *Game) setPath(p Path) {
	g.path = p
	for _, e := range g.enemies {
		e.reroute(p)
	}
	g.wave.reroute(p)
	g.log.Add(g.tick, "--", "path", "computed", p.String(), float64(len(p)))
}

func (g *Game) towerAt(c, r int) *Tower {
	id := g.grid.TowerAt(c, r)
	if id <= 0 || int(id) > len(g.towers) {
		return nil
	}
	return g.towers[id-1]
}

// TowerAt returns the tower on (c, r), or nil.
func (g *Game) TowerAt(c, r int) *Tower { return g.towerAt(c, r) }
