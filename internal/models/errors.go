package models

import "errors"

var (
	// ErrSaveNotFound — сохранение с таким именем персонажа отсутствует.
	ErrSaveNotFound = errors.New("save not found")
	// ErrSessionNotFound — активной сессии с таким именем нет.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTurnInFlight — по сессии уже выполняется ход; новые ходы
	// отклоняются до завершения текущего.
	ErrTurnInFlight = errors.New("turn already in flight")
	// ErrSessionTerminal — сессия завершена (смерть или победа).
	ErrSessionTerminal = errors.New("session is terminal")
	// ErrStoryGeneration — генерация сцены не удалась.
	ErrStoryGeneration = errors.New("story generation failed")
)
