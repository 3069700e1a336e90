package engine

import "math"

// DifficultyProfile holds the generation parameters for a level
type DifficultyProfile struct {
	Level             int     `json:"level"`
	BoardSize         int     `json:"board_size"`
	WallDensityMin    float64 `json:"wall_density_min"`
	WallDensityMax    float64 `json:"wall_density_max"`
	MinMovesThreshold int     `json:"min_moves_threshold"`
	EnemyMin          int     `json:"enemy_min"`
	EnemyMax          int     `json:"enemy_max"`
}

// ProfileForLevel derives the difficulty profile for a level. Levels below 1
// are treated as level 1.
//
// The board grows by one every five levels up to 7x7, the wall density ceiling
// rises 2% per level up to 45%, the required solution length grows every three
// levels up to 6, and the enemy ceiling grows from 1.5x to 2.5x the board size.
func ProfileForLevel(level int) DifficultyProfile {
	if level < 1 {
		level = 1
	}
	step := level - 1

	size := min(MinBoardSize+step/5, MaxBoardSize)

	return DifficultyProfile{
		Level:             level,
		BoardSize:         size,
		WallDensityMin:    0.15,
		WallDensityMax:    math.Min(0.25+float64(step)*0.02, 0.45),
		MinMovesThreshold: min(2+step/3, 6),
		EnemyMin:          size,
		EnemyMax:          int(math.Floor(float64(size) * enemyMultiplier(level))),
	}
}

func enemyMultiplier(level int) float64 {
	return math.Min(1.5+float64(level-1)*0.1, 2.5)
}

// withBoardSize returns a copy of the profile resized to size. Enemy bounds
// follow the new size the same way ProfileForLevel derives them.
func (p DifficultyProfile) withBoardSize(size int) DifficultyProfile {
	if size <= 0 || size == p.BoardSize {
		return p
	}
	p.BoardSize = size
	p.EnemyMin = size
	p.EnemyMax = int(math.Floor(float64(size) * enemyMultiplier(p.Level)))
	return p
}
