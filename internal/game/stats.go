package game

import "got-server/internal/models"

const (
	statMin = 0
	statMax = 100
)

// ApplyDelta возвращает копию персонажа с примененными дельтами статов.
// Переполнение поглощается клампингом, ошибок нет: любая дельта валидна.
func ApplyDelta(c models.Character, healthDelta, influenceDelta int) models.Character {
	c.Health = clamp(c.Health+healthDelta, statMin, statMax)
	c.Influence = clamp(c.Influence+influenceDelta, statMin, statMax)
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
