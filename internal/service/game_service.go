package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"got-server/internal/game"
	"got-server/internal/models"
	"got-server/internal/repository"
)

// imageFetchTimeout ограничивает фоновые запросы изображений: они живут
// дольше породившего их HTTP-запроса и получают собственный контекст.
const imageFetchTimeout = 2 * time.Minute

// session — одна живая игровая сессия. Владелец состояния единственный;
// mutex защищает его от фоновых задач изображений, inFlight гарантирует не
// больше одного выполняющегося хода.
type session struct {
	mu       sync.Mutex
	state    models.GameState
	inFlight bool
}

// GameService владеет игровыми сессиями и оркеструет ход: выбор игрока →
// генерация сцены → переход состояния → триггер сохранения → фоновые
// изображения. Сессии ключуются именем персонажа, как и сохранения.
type GameService struct {
	story  StoryGenerator
	images ImageProvider
	saves  repository.SaveRepository
	cfg    game.Config
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session

	// now подменяется в тестах; миллисекунды эпохи, как lastSaved в
	// сохранении.
	now func() int64
}

// NewGameService создает игровой сервис.
func NewGameService(story StoryGenerator, images ImageProvider, saves repository.SaveRepository, cfg game.Config, logger *zap.Logger) *GameService {
	return &GameService{
		story:    story,
		images:   images,
		saves:    saves,
		cfg:      cfg,
		logger:   logger.Named("GameService"),
		sessions: make(map[string]*session),
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// StartGame создает персонажа со стартовыми статами дома, запрашивает
// стартовую сцену и открывает сессию. Сбой генерации блокирующий: сессия не
// создается, ошибка уходит вызывающей стороне. Успешный старт сразу
// автосохраняется и запускает фоновую генерацию изображения сцены.
func (g *GameService) StartGame(ctx context.Context, name string, house models.House, bio string) (models.GameState, error) {
	character := models.NewCharacter(name, house, bio)

	node, err := g.story.StartNode(ctx, character)
	if err != nil {
		return models.GameState{}, err
	}

	state := game.Start(g.cfg, character, node)

	sess := &session{state: state}
	g.mu.Lock()
	if _, exists := g.sessions[name]; exists {
		g.logger.Info("Существующая сессия замещена новой игрой", zap.String("character", name))
	}
	g.sessions[name] = sess
	g.mu.Unlock()

	g.persist(ctx, state, []string{"start"})
	g.spawnSceneImage(sess, node.VisualDescription, state.TurnCount)
	g.spawnPortrait(sess, node.Speaker)

	g.logger.Info("Игра начата",
		zap.String("character", name),
		zap.String("house", string(house)),
	)
	return snapshot(sess), nil
}

// AdvanceTurn выполняет один ход сессии. Выбор игрока дописывается в хронику
// оптимистично, до ответа коллаборатора, и не откатывается при сбое. Пока
// ход выполняется, повторные вызовы отклоняются с ErrTurnInFlight:
// параллельные ходы гонялись бы за history и turnCount.
func (g *GameService) AdvanceTurn(ctx context.Context, name, optionID, optionText string) (models.GameState, error) {
	sess, err := g.session(name)
	if err != nil {
		return models.GameState{}, err
	}

	sess.mu.Lock()
	if sess.state.Stage.Terminal() {
		sess.mu.Unlock()
		return models.GameState{}, models.ErrSessionTerminal
	}
	if sess.inFlight {
		sess.mu.Unlock()
		return models.GameState{}, models.ErrTurnInFlight
	}
	sess.inFlight = true
	sess.state = game.WithChoice(sess.state, optionText)
	history := sess.state.History
	character := *sess.state.Character
	turnCount := sess.state.TurnCount
	maxTurns := sess.state.MaxTurns
	sess.mu.Unlock()

	node, err := g.story.NextTurn(ctx, history, character, optionText, turnCount+1, maxTurns)
	if err != nil {
		// Ход не состоялся; запись выбора остается в хронике, игрок
		// может повторить с другой опцией.
		sess.mu.Lock()
		sess.inFlight = false
		sess.mu.Unlock()
		g.logger.Warn("Ход не выполнен",
			zap.String("character", name),
			zap.String("optionId", optionID),
			zap.Error(err),
		)
		return models.GameState{}, err
	}

	sess.mu.Lock()
	sess.state = game.Advance(g.cfg, sess.state, node)
	sess.inFlight = false
	state := sess.state
	sess.mu.Unlock()

	if triggers := game.SaveTriggers(g.cfg, state); len(triggers) > 0 {
		g.persist(ctx, state, triggers)
	}
	g.spawnSceneImage(sess, node.VisualDescription, state.TurnCount)
	g.spawnPortrait(sess, node.Speaker)

	g.logger.Info("Ход выполнен",
		zap.String("character", name),
		zap.Int("turnCount", state.TurnCount),
		zap.String("act", state.CurrentAct),
		zap.String("stage", string(state.Stage)),
	)
	return snapshot(sess), nil
}

// Snapshot возвращает текущий вид сессии, включая изображения, пришедшие из
// фоновых задач после последнего чтения.
func (g *GameService) Snapshot(name string) (models.GameState, error) {
	sess, err := g.session(name)
	if err != nil {
		return models.GameState{}, err
	}
	return snapshot(sess), nil
}

// ManualSave сохраняет сессию по явному запросу игрока. Терминальные
// состояния не сохраняются.
func (g *GameService) ManualSave(ctx context.Context, name string) error {
	sess, err := g.session(name)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	state := sess.state
	sess.mu.Unlock()

	if state.Stage.Terminal() || state.Character == nil || state.CurrentScene == nil {
		return models.ErrSessionTerminal
	}
	return g.saves.Save(ctx, game.ToSave(state, g.now()))
}

// LoadGame восстанавливает сессию из сохранения: акт пересчитывается из
// turnCount, портреты сбрасываются, изображение сцены регенерируется в фоне.
func (g *GameService) LoadGame(ctx context.Context, name string) (models.GameState, error) {
	sf, err := g.saves.Get(ctx, name)
	if err != nil {
		return models.GameState{}, err
	}

	state := game.FromSave(g.cfg, sf)
	sess := &session{state: state}
	g.mu.Lock()
	g.sessions[name] = sess
	g.mu.Unlock()

	g.spawnSceneImage(sess, sf.CurrentScene.VisualDescription, state.TurnCount)
	g.spawnPortrait(sess, sf.CurrentScene.Speaker)

	g.logger.Info("Сохранение загружено",
		zap.String("character", name),
		zap.Int("turnCount", state.TurnCount),
		zap.String("act", state.CurrentAct),
	)
	return snapshot(sess), nil
}

// ListSaves возвращает все сохранения.
func (g *GameService) ListSaves(ctx context.Context) ([]models.SaveFile, error) {
	return g.saves.List(ctx)
}

// DeleteSave удаляет сохранение. Живую сессию с тем же именем не трогает.
func (g *GameService) DeleteSave(ctx context.Context, name string) error {
	return g.saves.Delete(ctx, name)
}

func (g *GameService) session(name string) (*session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, ok := g.sessions[name]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return sess, nil
}

// persist сохраняет состояние best-effort: ошибка хранилища логируется и
// проглатывается, сессия в памяти продолжается.
func (g *GameService) persist(ctx context.Context, state models.GameState, triggers []string) {
	if state.Character == nil || state.CurrentScene == nil {
		return
	}
	if err := g.saves.Save(ctx, game.ToSave(state, g.now())); err != nil {
		g.logger.Error("Автосохранение не удалось",
			zap.String("character", state.Character.Name),
			zap.Strings("triggers", triggers),
			zap.Error(err),
		)
		return
	}
	g.logger.Debug("Автосохранение выполнено",
		zap.String("character", state.Character.Name),
		zap.Int("turnCount", state.TurnCount),
		zap.Strings("triggers", triggers),
	)
}

// spawnSceneImage запускает фоновую генерацию изображения сцены. Результат
// помечен номером хода: если к моменту ответа сессия ушла дальше, устаревшее
// изображение отбрасывается.
func (g *GameService) spawnSceneImage(sess *session, visualDescription string, turn int) {
	if visualDescription == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), imageFetchTimeout)
		defer cancel()

		image := g.images.SceneImage(ctx, visualDescription)
		if image == "" {
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sess.state.TurnCount != turn {
			g.logger.Debug("Устаревшее изображение сцены отброшено",
				zap.Int("imageTurn", turn),
				zap.Int("currentTurn", sess.state.TurnCount),
			)
			return
		}
		sess.state.SceneImage = image
	}()
}

// spawnPortrait запускает фоновую генерацию портрета NPC, если его еще нет в
// кэше сессии. Слияние по имени, last-write-wins.
func (g *GameService) spawnPortrait(sess *session, speaker string) {
	if speaker == "" {
		return
	}
	sess.mu.Lock()
	_, exists := sess.state.NPCPortraits[speaker]
	sess.mu.Unlock()
	if exists {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), imageFetchTimeout)
		defer cancel()

		image := g.images.Portrait(ctx, speaker)
		if image == "" {
			return
		}

		sess.mu.Lock()
		sess.state.NPCPortraits[speaker] = image
		sess.mu.Unlock()
	}()
}

// snapshot снимает копию состояния под локом; карта портретов копируется,
// чтобы чтение не гонялось с фоновыми записями.
func snapshot(sess *session) models.GameState {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.state
	portraits := make(map[string]string, len(state.NPCPortraits))
	for k, v := range state.NPCPortraits {
		portraits[k] = v
	}
	state.NPCPortraits = portraits
	return state
}
