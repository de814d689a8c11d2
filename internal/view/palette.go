package view

import (
	"image/color"

	"github.com/Garsondee/Grid-Defense/internal/game"
)

var (
	colBackground = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	colGridLine   = color.RGBA{R: 30, G: 36, B: 30, A: 255}
	colHUD        = color.RGBA{R: 20, G: 24, B: 20, A: 255}
	colRange      = color.RGBA{R: 200, G: 200, B: 120, A: 90}
	colSelected   = color.RGBA{R: 240, G: 220, B: 90, A: 255}
	colHealthBack = color.RGBA{R: 60, G: 10, B: 10, A: 220}
	colHealth     = color.RGBA{R: 80, G: 210, B: 80, A: 255}
	colSlowed     = color.RGBA{R: 120, G: 190, B: 255, A: 255}
)

// tileColour is the fill for a tile. Tower tiles get a neutral base; the
// tower itself is drawn on top.
func tileColour(k game.TileKind) color.RGBA {
	switch k {
	case game.TileWall:
		return color.RGBA{R: 48, G: 52, B: 60, A: 255}
	case game.TilePath:
		return color.RGBA{R: 70, G: 58, B: 38, A: 255}
	case game.TileSpawn:
		return color.RGBA{R: 150, G: 60, B: 60, A: 255}
	case game.TileGoal:
		return color.RGBA{R: 60, G: 140, B: 70, A: 255}
	case game.TileTower:
		return color.RGBA{R: 34, G: 40, B: 34, A: 255}
	default:
		return color.RGBA{R: 24, G: 28, B: 24, A: 255}
	}
}

func towerColour(k game.TowerKind) color.RGBA {
	switch k {
	case game.TowerGun:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	case game.TowerFrost:
		return color.RGBA{R: 110, G: 180, B: 240, A: 255}
	case game.TowerLaser:
		return color.RGBA{R: 230, G: 80, B: 200, A: 255}
	case game.TowerWall:
		return color.RGBA{R: 110, G: 110, B: 100, A: 255}
	case game.TowerBank:
		return color.RGBA{R: 230, G: 190, B: 60, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
}

func enemyColour(k game.EnemyKind) color.RGBA {
	switch k {
	case game.EnemyRed:
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	case game.EnemySpeedy:
		return color.RGBA{R: 240, G: 150, B: 50, A: 255}
	case game.EnemyElite:
		return color.RGBA{R: 170, G: 70, B: 220, A: 255}
	case game.EnemyBoss:
		return color.RGBA{R: 120, G: 20, B: 20, A: 255}
	case game.EnemyTitan:
		return color.RGBA{R: 20, G: 20, B: 20, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
}

// categoryColour tints feed entries by log category.
func categoryColour(cat string) color.RGBA {
	switch cat {
	case "wave":
		return color.RGBA{R: 90, G: 160, B: 230, A: 255}
	case "economy":
		return color.RGBA{R: 230, G: 190, B: 60, A: 255}
	case "enemy":
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	case "place":
		return color.RGBA{R: 120, G: 200, B: 120, A: 255}
	case "path":
		return color.RGBA{R: 170, G: 140, B: 90, A: 255}
	default:
		return color.RGBA{R: 160, G: 160, B: 160, A: 255}
	}
}
