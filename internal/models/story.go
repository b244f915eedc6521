package models

// GameOption — один вариант выбора, предлагаемый игроку в сцене.
type GameOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// StoryNode — одна сцена, сгенерированная AI. Приходит извне и считается
// недоверенным вводом: перед использованием нормализуется на границе
// (см. service.StoryService).
type StoryNode struct {
	Narrative         string       `json:"narrative"`
	VisualDescription string       `json:"visual_description"`
	Speaker           string       `json:"speaker,omitempty"`
	Dialogue          string       `json:"dialogue,omitempty"`
	Options           []GameOption `json:"options"`
	HealthChange      int          `json:"health_change"`
	InfluenceChange   int          `json:"influence_change"`
	IsGameOver        bool         `json:"is_game_over"`
	GameOverReason    string       `json:"game_over_reason,omitempty"`
}

// HasDialogue проверяет пару speaker+dialogue вместе: запись диалога в
// историю допустима только когда заполнены оба поля.
func (n StoryNode) HasDialogue() bool {
	return n.Speaker != "" && n.Dialogue != ""
}

// HistoryType — тип записи в хронике.
type HistoryType string

const (
	HistoryNarrative HistoryType = "narrative"
	HistoryDialogue  HistoryType = "dialogue"
	HistoryChoice    HistoryType = "choice"
)

// HistoryEntry — одна запись хроники. Хроника append-only: порядок вставки
// равен порядку повествования.
type HistoryEntry struct {
	Type    HistoryType `json:"type"`
	Text    string      `json:"text"`
	Speaker string      `json:"speaker,omitempty"`
}

// NarrativeEntry создает запись описательного текста сцены.
func NarrativeEntry(text string) HistoryEntry {
	return HistoryEntry{Type: HistoryNarrative, Text: text}
}

// DialogueEntry создает запись реплики NPC.
func DialogueEntry(speaker, text string) HistoryEntry {
	return HistoryEntry{Type: HistoryDialogue, Text: text, Speaker: speaker}
}

// ChoiceEntry создает запись выбора игрока.
func ChoiceEntry(text string) HistoryEntry {
	return HistoryEntry{Type: HistoryChoice, Text: text}
}
