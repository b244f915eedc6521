package models

// GameStage — этап жизненного цикла сессии. Смерть и победа — полноценные
// терминальные этапы, а не вычисляемые флаги: терминальная сессия не
// принимает ходы и не сохраняется.
type GameStage string

const (
	StageMenu     GameStage = "menu"
	StageCreation GameStage = "creation"
	StagePlaying  GameStage = "playing"
	StageGameOver GameStage = "gameover"
	StageVictory  GameStage = "victory"
)

// Terminal сообщает, завершена ли сессия.
func (s GameStage) Terminal() bool {
	return s == StageGameOver || s == StageVictory
}

// GameState — корневой агрегат одной игровой сессии. Владелец — game-сервис;
// все мутации проходят через чистые функции пакета game и возвращают новое
// значение.
type GameState struct {
	Stage        GameStage         `json:"stage"`
	Character    *Character        `json:"character"`
	History      []HistoryEntry    `json:"history"`
	CurrentScene *StoryNode        `json:"currentScene"`
	SceneImage   string            `json:"sceneImage,omitempty"`
	TurnCount    int               `json:"turnCount"`
	MaxTurns     int               `json:"maxTurns"`
	CurrentAct   string            `json:"currentAct"`
	NPCPortraits map[string]string `json:"npcPortraits"`
}

// SaveFile — проекция GameState для сохранения. Портреты и изображение сцены
// не сохраняются (производный кэш), акт пересчитывается при загрузке.
type SaveFile struct {
	Character    Character      `json:"character"`
	History      []HistoryEntry `json:"history"`
	CurrentScene StoryNode      `json:"currentScene"`
	TurnCount    int            `json:"turnCount"`
	LastSaved    int64          `json:"lastSaved"`
}
