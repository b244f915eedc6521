package game

import "got-server/internal/models"

// Config — параметры прогрессии, приходят из конфигурации сервиса.
type Config struct {
	MaxTurns      int
	Acts          ActBoundaries
	SaveMilestone int
}

// Start переводит сессию в игру по стартовой сцене: ход 1, Акт I, хроника из
// narrative/dialogue стартовой ноды. Вызывается только после успешного
// ответа коллаборатора — при ошибке состояние не меняется вовсе.
func Start(cfg Config, character models.Character, node models.StoryNode) models.GameState {
	scene := node
	return models.GameState{
		Stage:        resolveStage(character.Health, node),
		Character:    &character,
		History:      SceneEntries(node),
		CurrentScene: &scene,
		TurnCount:    1,
		MaxTurns:     cfg.MaxTurns,
		CurrentAct:   ActI,
		NPCPortraits: map[string]string{},
	}
}

// WithChoice оптимистично дописывает выбор игрока в хронику — до ответа
// коллаборатора. При неудаче хода запись не откатывается.
func WithChoice(s models.GameState, optionText string) models.GameState {
	history := make([]models.HistoryEntry, len(s.History), len(s.History)+1)
	copy(history, s.History)
	s.History = append(history, models.ChoiceEntry(optionText))
	return s
}

// Advance применяет успешно сгенерированную сцену: статы, акт по новому
// номеру хода, записи хроники, замена текущей сцены, сброс изображения
// сцены и, при необходимости, переход в терминальный этап.
func Advance(cfg Config, s models.GameState, node models.StoryNode) models.GameState {
	nextTurn := s.TurnCount + 1

	character := ApplyDelta(*s.Character, node.HealthChange, node.InfluenceChange)
	s.Character = &character

	entries := SceneEntries(node)
	history := make([]models.HistoryEntry, len(s.History), len(s.History)+len(entries))
	copy(history, s.History)
	s.History = append(history, entries...)

	scene := node
	s.CurrentScene = &scene
	s.SceneImage = ""
	s.TurnCount = nextTurn
	s.CurrentAct = ResolveAct(nextTurn, cfg.Acts)
	s.Stage = resolveStage(character.Health, node)
	return s
}

// resolveStage выбирает этап по состоянию персонажа и сцены: смерть имеет
// приоритет над победой.
func resolveStage(health int, node models.StoryNode) models.GameStage {
	if health <= 0 {
		return models.StageGameOver
	}
	if node.IsGameOver {
		return models.StageVictory
	}
	return models.StagePlaying
}

// ToSave проецирует состояние в сохранение. Портреты и изображение сцены не
// попадают в файл.
func ToSave(s models.GameState, now int64) models.SaveFile {
	return models.SaveFile{
		Character:    *s.Character,
		History:      s.History,
		CurrentScene: *s.CurrentScene,
		TurnCount:    s.TurnCount,
		LastSaved:    now,
	}
}

// FromSave восстанавливает состояние из сохранения: акт пересчитывается из
// turnCount, портреты сбрасываются, изображение сцены генерируется заново.
func FromSave(cfg Config, sf models.SaveFile) models.GameState {
	character := sf.Character
	scene := sf.CurrentScene
	return models.GameState{
		Stage:        models.StagePlaying,
		Character:    &character,
		History:      sf.History,
		CurrentScene: &scene,
		TurnCount:    sf.TurnCount,
		MaxTurns:     cfg.MaxTurns,
		CurrentAct:   ResolveAct(sf.TurnCount, cfg.Acts),
		NPCPortraits: map[string]string{},
	}
}

// SaveTriggers возвращает причины автосохранения для текущего состояния.
// Пустой срез означает «не сохранять» (терминальные состояния не
// возобновляемы). Несколько причин за один ход схлопываются в одну запись:
// значение всегда полный снимок, last-write-wins.
func SaveTriggers(cfg Config, s models.GameState) []string {
	if s.Character == nil || s.Character.Health <= 0 {
		return nil
	}
	if s.CurrentScene == nil || s.CurrentScene.IsGameOver {
		return nil
	}
	triggers := []string{"turn"}
	if cfg.SaveMilestone > 0 && s.TurnCount%cfg.SaveMilestone == 0 {
		triggers = append(triggers, "milestone")
	}
	if s.TurnCount == cfg.Acts.Act1End+1 || s.TurnCount == cfg.Acts.Act2End+1 {
		triggers = append(triggers, "act-transition")
	}
	return triggers
}
