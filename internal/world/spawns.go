package world

import "github.com/udisondev/roundmods/internal/model"

// DefaultSpawnPoints returns the spawn spots of each team.
func DefaultSpawnPoints() map[model.Team][]model.Vec3 {
	return map[model.Team][]model.Vec3{
		model.TeamTerrorist: {
			{X: -1776, Y: -800, Z: 160},
			{X: -1712, Y: -800, Z: 160},
			{X: -1648, Y: -800, Z: 160},
			{X: -1776, Y: -736, Z: 160},
			{X: -1712, Y: -736, Z: 160},
		},
		model.TeamCounterTerrorist: {
			{X: 1296, Y: 2528, Z: 64},
			{X: 1360, Y: 2528, Z: 64},
			{X: 1424, Y: 2528, Z: 64},
			{X: 1296, Y: 2464, Z: 64},
			{X: 1360, Y: 2464, Z: 64},
		},
	}
}
