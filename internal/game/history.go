package game

import (
	"fmt"
	"strings"

	"got-server/internal/models"
)

// ContextWindowSize — сколько последних записей хроники уходит в промпт.
const ContextWindowSize = 12

// SceneEntries строит записи хроники для новой сцены: narrative добавляется
// только при непустом тексте, dialogue — только при заполненной паре
// speaker+dialogue.
func SceneEntries(node models.StoryNode) []models.HistoryEntry {
	var entries []models.HistoryEntry
	if node.Narrative != "" {
		entries = append(entries, models.NarrativeEntry(node.Narrative))
	}
	if node.HasDialogue() {
		entries = append(entries, models.DialogueEntry(node.Speaker, node.Dialogue))
	}
	return entries
}

// ContextWindow форматирует последние n записей хроники в сценарный вид для
// промпта: реплики как `Имя: "текст"`, выборы как `> Гравець: текст`,
// повествование как есть.
func ContextWindow(history []models.HistoryEntry, n int) string {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	lines := make([]string, 0, len(history))
	for _, e := range history {
		switch e.Type {
		case models.HistoryDialogue:
			speaker := e.Speaker
			if speaker == "" {
				speaker = "NPC"
			}
			lines = append(lines, fmt.Sprintf("%s: %q", speaker, e.Text))
		case models.HistoryChoice:
			lines = append(lines, "> Гравець: "+e.Text)
		default:
			lines = append(lines, e.Text)
		}
	}
	return strings.Join(lines, "\n")
}
