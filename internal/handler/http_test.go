package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"got-server/internal/config"
	"got-server/internal/models"
	svcMocks "got-server/internal/service/mocks"
)

// orchestratorMock — мок GameOrchestrator.
type orchestratorMock struct {
	mock.Mock
}

func (m *orchestratorMock) StartGame(ctx context.Context, name string, house models.House, bio string) (models.GameState, error) {
	args := m.Called(ctx, name, house, bio)
	return args.Get(0).(models.GameState), args.Error(1)
}

func (m *orchestratorMock) AdvanceTurn(ctx context.Context, name, optionID, optionText string) (models.GameState, error) {
	args := m.Called(ctx, name, optionID, optionText)
	return args.Get(0).(models.GameState), args.Error(1)
}

func (m *orchestratorMock) Snapshot(name string) (models.GameState, error) {
	args := m.Called(name)
	return args.Get(0).(models.GameState), args.Error(1)
}

func (m *orchestratorMock) ManualSave(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *orchestratorMock) LoadGame(ctx context.Context, name string) (models.GameState, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.GameState), args.Error(1)
}

func (m *orchestratorMock) ListSaves(ctx context.Context) ([]models.SaveFile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.SaveFile), args.Error(1)
}

func (m *orchestratorMock) DeleteSave(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type testEnv struct {
	router *gin.Engine
	story  *svcMocks.StoryGenerator
	images *svcMocks.ImageProvider
	game   *orchestratorMock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		story:  new(svcMocks.StoryGenerator),
		images: new(svcMocks.ImageProvider),
		game:   new(orchestratorMock),
	}
	cfg := &config.Config{AIModel: "test-text-model", GeminiImageModel: "test-image-model"}

	env.router = gin.New()
	h := NewHandler(env.story, env.images, env.game, cfg, zap.NewNop())
	h.RegisterRoutes(env.router)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func playingState(name string) models.GameState {
	ch := models.NewCharacter(name, models.HouseStark, "")
	node := models.StoryNode{Narrative: "Сніг падає.", Options: []models.GameOption{{ID: "1", Text: "Далі"}}}
	return models.GameState{
		Stage:        models.StagePlaying,
		Character:    &ch,
		History:      []models.HistoryEntry{models.NarrativeEntry("Сніг падає.")},
		CurrentScene: &node,
		TurnCount:    1,
		MaxTurns:     15,
		CurrentAct:   "Акт I",
		NPCPortraits: map[string]string{},
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test-text-model", resp.TextModel)
	assert.Equal(t, "test-image-model", resp.ImageModel)
}

func TestStoryStart(t *testing.T) {
	t.Run("успех", func(t *testing.T) {
		env := newTestEnv(t)
		node := models.StoryNode{Narrative: "Початок", Options: []models.GameOption{{ID: "1", Text: "Далі"}}}
		env.story.On("StartNode", mock.Anything, mock.MatchedBy(func(c models.Character) bool {
			return c.Name == "Jon" && c.House == models.HouseStark && c.Influence == 30
		})).Return(node, nil).Once()

		w := env.do(t, http.MethodPost, "/api/story/start", gin.H{
			"character": gin.H{"name": "Jon", "house": "Stark", "bio": "Бастард"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var got models.StoryNode
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Початок", got.Narrative)
		env.story.AssertExpectations(t)
	})

	t.Run("неизвестный дом", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/story/start", gin.H{
			"character": gin.H{"name": "Jon", "house": "Frey"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env.story.AssertNotCalled(t, "StartNode", mock.Anything, mock.Anything)
	})

	t.Run("пустое тело", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/story/start", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("сбой генерации", func(t *testing.T) {
		env := newTestEnv(t)
		env.story.On("StartNode", mock.Anything, mock.Anything).
			Return(models.StoryNode{}, models.ErrStoryGeneration).Once()

		w := env.do(t, http.MethodPost, "/api/story/start", gin.H{
			"character": gin.H{"name": "Jon", "house": "Stark"},
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "story generation failed", resp.Error)
	})
}

func TestStoryTurn(t *testing.T) {
	t.Run("успех", func(t *testing.T) {
		env := newTestEnv(t)
		node := models.StoryNode{Narrative: "Далі", Options: []models.GameOption{{ID: "1", Text: "Йти"}}}
		env.story.On("NextTurn", mock.Anything, mock.Anything, mock.Anything, "Йти на північ", 3, 15).
			Return(node, nil).Once()

		w := env.do(t, http.MethodPost, "/api/story/turn", gin.H{
			"character":  gin.H{"name": "Jon", "house": "Stark", "health": 80, "influence": 25},
			"history":    []gin.H{{"type": "narrative", "text": "Було холодно."}},
			"lastChoice": "Йти на північ",
			"turnCount":  3,
			"maxTurns":   15,
		})
		require.Equal(t, http.StatusOK, w.Code)
		env.story.AssertExpectations(t)
	})

	t.Run("нулевой ход допустим", func(t *testing.T) {
		env := newTestEnv(t)
		node := models.StoryNode{Narrative: "Початок", Options: []models.GameOption{{ID: "1", Text: "Йти"}}}
		env.story.On("NextTurn", mock.Anything, mock.Anything, mock.Anything, "Почати", 0, 15).
			Return(node, nil).Once()

		w := env.do(t, http.MethodPost, "/api/story/turn", gin.H{
			"character":  gin.H{"name": "Jon", "house": "Stark", "health": 100, "influence": 30},
			"lastChoice": "Почати",
			"turnCount":  0,
			"maxTurns":   15,
		})
		require.Equal(t, http.StatusOK, w.Code)
		env.story.AssertExpectations(t)
	})

	t.Run("отрицательный ход отклоняется", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/story/turn", gin.H{
			"character":  gin.H{"name": "Jon", "house": "Stark"},
			"lastChoice": "Хід",
			"turnCount":  -1,
			"maxTurns":   15,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImageEndpoints(t *testing.T) {
	t.Run("изображение сцены", func(t *testing.T) {
		env := newTestEnv(t)
		env.images.On("SceneImage", mock.Anything, "Snowy castle").
			Return("data:image/png;base64,abc").Once()

		w := env.do(t, http.MethodPost, "/api/images/scene", gin.H{"visualDescription": "Snowy castle"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp imageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Image)
		assert.Equal(t, "data:image/png;base64,abc", *resp.Image)
	})

	t.Run("сбой дает 200 с null", func(t *testing.T) {
		env := newTestEnv(t)
		env.images.On("Portrait", mock.Anything, "Eddard Stark").Return("").Once()

		w := env.do(t, http.MethodPost, "/api/images/portrait", gin.H{"name": "Eddard Stark"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"image": null}`, w.Body.String())
	})
}

func TestStartGameEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.game.On("StartGame", mock.Anything, "Jon", models.HouseStark, "Бастард").
		Return(playingState("Jon"), nil).Once()

	w := env.do(t, http.MethodPost, "/api/game/start", gin.H{
		"character": gin.H{"name": "Jon", "house": "Stark", "bio": "Бастард"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var state models.GameState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, models.StagePlaying, state.Stage)
	assert.Equal(t, 1, state.TurnCount)
	env.game.AssertExpectations(t)
}

func TestAdvanceTurnEndpoint(t *testing.T) {
	t.Run("успех", func(t *testing.T) {
		env := newTestEnv(t)
		env.game.On("AdvanceTurn", mock.Anything, "Jon", "2", "Відступити").
			Return(playingState("Jon"), nil).Once()

		w := env.do(t, http.MethodPost, "/api/game/Jon/turn", gin.H{"optionId": "2", "optionText": "Відступити"})
		assert.Equal(t, http.StatusOK, w.Code)
		env.game.AssertExpectations(t)
	})

	t.Run("ход уже в полете", func(t *testing.T) {
		env := newTestEnv(t)
		env.game.On("AdvanceTurn", mock.Anything, "Jon", "", "Ще раз").
			Return(models.GameState{}, models.ErrTurnInFlight).Once()

		w := env.do(t, http.MethodPost, "/api/game/Jon/turn", gin.H{"optionText": "Ще раз"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("сессия завершена", func(t *testing.T) {
		env := newTestEnv(t)
		env.game.On("AdvanceTurn", mock.Anything, "Jon", "", "Ще раз").
			Return(models.GameState{}, models.ErrSessionTerminal).Once()

		w := env.do(t, http.MethodPost, "/api/game/Jon/turn", gin.H{"optionText": "Ще раз"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("нет сессии", func(t *testing.T) {
		env := newTestEnv(t)
		env.game.On("AdvanceTurn", mock.Anything, "Ghost", "", "Хід").
			Return(models.GameState{}, models.ErrSessionNotFound).Once()

		w := env.do(t, http.MethodPost, "/api/game/Ghost/turn", gin.H{"optionText": "Хід"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetGameEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.game.On("Snapshot", "Jon").Return(playingState("Jon"), nil).Once()

	w := env.do(t, http.MethodGet, "/api/game/Jon", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSaveEndpoints(t *testing.T) {
	t.Run("ручное сохранение", func(t *testing.T) {
		env := newTestEnv(t)
		env.game.On("ManualSave", mock.Anything, "Jon").Return(nil).Once()

		w := env.do(t, http.MethodPost, "/api/game/Jon/save", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("загрузка", func(t *testing.T) {
		env := newTestEnv(t)
		env.game.On("LoadGame", mock.Anything, "Jon").Return(playingState("Jon"), nil).Once()

		w := env.do(t, http.MethodPost, "/api/game/load", gin.H{"name": "Jon"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("загрузка отсутствующего", func(t *testing.T) {
		env := newTestEnv(t)
		env.game.On("LoadGame", mock.Anything, "Ghost").
			Return(models.GameState{}, models.ErrSaveNotFound).Once()

		w := env.do(t, http.MethodPost, "/api/game/load", gin.H{"name": "Ghost"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("список", func(t *testing.T) {
		env := newTestEnv(t)
		saves := []models.SaveFile{{Character: models.Character{Name: "Jon"}, TurnCount: 4}}
		env.game.On("ListSaves", mock.Anything).Return(saves, nil).Once()

		w := env.do(t, http.MethodGet, "/api/saves", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got []models.SaveFile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Jon", got[0].Character.Name)
	})

	t.Run("удаление", func(t *testing.T) {
		env := newTestEnv(t)
		env.game.On("DeleteSave", mock.Anything, "Jon").Return(nil).Once()

		w := env.do(t, http.MethodDelete, "/api/saves/Jon", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
