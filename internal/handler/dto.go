package handler

import "got-server/internal/models"

type characterRequest struct {
	Name  string `json:"name" binding:"required"`
	House string `json:"house" binding:"required"`
	Bio   string `json:"bio"`
}

type storyStartRequest struct {
	Character characterRequest `json:"character" binding:"required"`
}

type storyTurnRequest struct {
	Character  models.Character      `json:"character" binding:"required"`
	History    []models.HistoryEntry `json:"history"`
	LastChoice string                `json:"lastChoice" binding:"required"`
	TurnCount  int                   `json:"turnCount" binding:"gte=0"`
	MaxTurns   int                   `json:"maxTurns" binding:"required,min=1"`
}

type sceneImageRequest struct {
	VisualDescription string `json:"visualDescription" binding:"required"`
}

type portraitRequest struct {
	Name string `json:"name" binding:"required"`
}

type gameTurnRequest struct {
	OptionID   string `json:"optionId"`
	OptionText string `json:"optionText" binding:"required"`
}

type loadGameRequest struct {
	Name string `json:"name" binding:"required"`
}

// imageResponse отдает null вместо пустой строки, когда изображения нет.
type imageResponse struct {
	Image *string `json:"image"`
}

func newImageResponse(image string) imageResponse {
	if image == "" {
		return imageResponse{}
	}
	return imageResponse{Image: &image}
}

type healthResponse struct {
	Status     string `json:"status"`
	TextModel  string `json:"textModel"`
	ImageModel string `json:"imageModel"`
}
