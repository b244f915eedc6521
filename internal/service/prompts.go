package service

import (
	"fmt"
	"strings"

	"got-server/internal/game"
	"got-server/internal/models"
)

// systemPrompt — базовая инструкция сюжетного движка. Ответ обязан быть
// строгим JSON по схеме StoryNode.
const systemPrompt = `Ти — рушій сюжету інтерактивної гри у світі "Гри престолів": темне фентезі, інтриги, ціна кожного рішення.

Відповідай СТРОГО одним JSON-обʼєктом без пояснень:
{
  "narrative": "опис сцени",
  "visual_description": "short English scene description for an image model",
  "speaker": "імʼя NPC або null",
  "dialogue": "репліка NPC або null",
  "options": [{"id": "1", "text": "варіант дії"}],
  "health_change": 0,
  "influence_change": 0,
  "is_game_over": false,
  "game_over_reason": null
}

Давай 2-4 варіанти дій. health_change та influence_change — цілі числа від -100 до 100.`

// buildStartPrompt собирает промпт стартовой сцены: персонаж, дом и один NPC
// из ростера дома для завязки.
func buildStartPrompt(character models.Character) string {
	npcs := strings.Join(models.Houses[character.House].NPCs, ", ")
	return fmt.Sprintf(`ПОЧАТОК ГРИ (Акт I).
Персонаж: %s, Дім: %s.
Біографія: %s.

Введи в історію одного з цих персонажів: %s.
Почни з прибуття персонажа у важливу локацію або отримання важливого листа. Створи інтригу.`,
		character.Name, character.House, character.Bio, npcs)
}

// buildTurnPrompt собирает промпт очередного хода: контекст последних
// записей хроники, статы, последний выбор и pacing-инструкция по акту.
// Предпоследний ход получает директиву финала.
func buildTurnPrompt(history []models.HistoryEntry, character models.Character, lastChoice string, turnCount, maxTurns int, acts game.ActBoundaries) string {
	var act, pacing string
	switch game.ResolveAct(turnCount, acts) {
	case game.ActI:
		act = "Акт I (Зав'язка)"
		pacing = "Ми ще на початку. Будуй світ і інтриги."
	case game.ActII:
		act = "Акт II (Конфлікт)"
		pacing = "Піднімай ставки. Ситуація стає небезпечною."
	default:
		act = "Акт III (Кульмінація)"
		pacing = "Ми наближаємося до фіналу. Веди до розв'язки."
	}
	if turnCount >= maxTurns-1 {
		pacing += " ЦЕ ОСТАННІЙ ХІД. Заверши історію логічним фіналом на основі вибору гравця та встанови is_game_over = true."
	}

	return fmt.Sprintf(`ІСТОРІЯ (Контекст):
%s

---
ХІД: %d з %d. ЕТАП: %s.
Персонаж: %s (%s). Здоров'я: %d, Вплив: %d.
Гравець щойно вибрав: %q.

%s

Продовжуй історію, враховуючи наслідки.`,
		game.ContextWindow(history, game.ContextWindowSize),
		turnCount, maxTurns, act,
		character.Name, character.House, character.Health, character.Influence,
		lastChoice, pacing)
}

const (
	sceneImageStyle = "Cinematic shot, Game of Thrones style, dark fantasy, realistic, detailed textures. No text. Scene description: "
	portraitStyle   = "Character portrait of %s from Game of Thrones universe. Close-up face shot, oil painting style, dark fantasy, dramatic lighting, neutral background. No text."
)
