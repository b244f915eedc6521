package game

// Метки актов.
const (
	ActI   = "Акт I"
	ActII  = "Акт II"
	ActIII = "Акт III"
)

// ActBoundaries — границы актов в ходах (включительно).
type ActBoundaries struct {
	Act1End int
	Act2End int
}

// ResolveAct классифицирует номер хода по актам. Функция тотальна и
// монотонна; live-игра и загрузка сохранения обязаны использовать только ее,
// чтобы метка акта всегда совпадала для одного и того же turnCount.
func ResolveAct(turnCount int, b ActBoundaries) string {
	switch {
	case turnCount <= b.Act1End:
		return ActI
	case turnCount <= b.Act2End:
		return ActII
	default:
		return ActIII
	}
}
