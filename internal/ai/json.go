package ai

import "strings"

// ExtractJSON готовит ответ модели к парсингу: срезает markdown-ограждения
// и чинит незакрытые скобки в конце. Модели регулярно оборачивают JSON в
// ```json ... ``` и обрывают хвост при достижении лимита токенов.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimSpace(strings.TrimPrefix(text, "```json"))
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimSpace(strings.TrimPrefix(text, "```"))
	}
	if strings.HasSuffix(text, "```") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "```"))
	}
	return fixJSON(text)
}

// fixJSON дополняет несбалансированные закрывающие скобки. Скобки внутри
// строковых литералов не считаются.
func fixJSON(jsonStr string) string {
	if jsonStr == "" {
		return jsonStr
	}

	counts := map[rune]int{'{': 0, '}': 0, '[': 0, ']': 0}
	inString := false
	escaped := false

	for _, char := range jsonStr {
		if char == '"' && !escaped {
			inString = !inString
		}
		if !inString {
			if _, exists := counts[char]; exists {
				counts[char]++
			}
		}
		if char == '\\' && !escaped {
			escaped = true
		} else {
			escaped = false
		}
	}

	fixed := jsonStr
	if imbalance := counts['{'] - counts['}']; imbalance > 0 {
		fixed += strings.Repeat("}", imbalance)
	}
	if imbalance := counts['['] - counts[']']; imbalance > 0 {
		fixed += strings.Repeat("]", imbalance)
	}
	return fixed
}
