package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"got-server/internal/models"
)

func newTestRepository(t *testing.T) (SaveRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSaveRepository(client, "got_saves_v2", zap.NewNop()), mr
}

func testSave(name string, turnCount int) models.SaveFile {
	return models.SaveFile{
		Character: models.NewCharacter(name, models.HouseStark, ""),
		History:   []models.HistoryEntry{models.NarrativeEntry("Сніг падає.")},
		CurrentScene: models.StoryNode{
			Narrative: "Сніг падає.",
			Options:   []models.GameOption{{ID: "1", Text: "Далі"}},
		},
		TurnCount: turnCount,
		LastSaved: 1700000000000,
	}
}

func TestDecodeSaves(t *testing.T) {
	logger := zap.NewNop()

	t.Run("валидный блоб", func(t *testing.T) {
		sf := models.SaveFile{
			Character: models.NewCharacter("Jon", models.HouseStark, "Бастард"),
			CurrentScene: models.StoryNode{
				Narrative: "х",
				Options:   []models.GameOption{{ID: "1", Text: "далі"}},
			},
			TurnCount: 3,
			LastSaved: 1700000000,
		}
		data, err := json.Marshal(map[string]models.SaveFile{"Jon": sf})
		require.NoError(t, err)

		saves := decodeSaves(logger, data)
		require.Len(t, saves, 1)
		assert.Equal(t, sf, saves["Jon"])
	})

	t.Run("битый блоб деградирует до пустого хранилища", func(t *testing.T) {
		saves := decodeSaves(logger, []byte("{not json"))
		assert.NotNil(t, saves)
		assert.Empty(t, saves)
	})

	t.Run("json null деградирует до пустого хранилища", func(t *testing.T) {
		saves := decodeSaves(logger, []byte("null"))
		assert.NotNil(t, saves)
		assert.Empty(t, saves)
	})
}

// Один слот на имя персонажа: повторное сохранение перезаписывает запись, а
// не добавляет вторую.
func TestSaveUpsertsByCharacterName(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.Save(ctx, testSave("Jon", 2)))
	require.NoError(t, repo.Save(ctx, testSave("Jon", 5)))

	saves, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, 5, saves[0].TurnCount)

	sf, err := repo.Get(ctx, "Jon")
	require.NoError(t, err)
	assert.Equal(t, 5, sf.TurnCount)
}

func TestSaveKeepsDistinctNames(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.Save(ctx, testSave("Jon", 2)))
	require.NoError(t, repo.Save(ctx, testSave("Sansa", 7)))

	saves, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, saves, 2)

	jon, err := repo.Get(ctx, "Jon")
	require.NoError(t, err)
	assert.Equal(t, 2, jon.TurnCount)

	sansa, err := repo.Get(ctx, "Sansa")
	require.NoError(t, err)
	assert.Equal(t, 7, sansa.TurnCount)
}

// Удаление затрагивает только свою запись; остальные сохранения остаются.
func TestDeleteRemovesOnlyNamedEntry(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.Save(ctx, testSave("Jon", 2)))
	require.NoError(t, repo.Save(ctx, testSave("Sansa", 7)))

	require.NoError(t, repo.Delete(ctx, "Jon"))

	_, err := repo.Get(ctx, "Jon")
	assert.ErrorIs(t, err, models.ErrSaveNotFound)

	sansa, err := repo.Get(ctx, "Sansa")
	require.NoError(t, err)
	assert.Equal(t, 7, sansa.TurnCount)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.Save(ctx, testSave("Jon", 2)))
	require.NoError(t, repo.Delete(ctx, "Ghost"))

	saves, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, saves, 1)
}

func TestGetMissingReturnsSentinel(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	_, err := repo.Get(ctx, "Ghost")
	assert.ErrorIs(t, err, models.ErrSaveNotFound)
}

// Битый блоб в Redis не фатален: хранилище деградирует до пустого, и новое
// сохранение переписывает его целиком.
func TestSaveRecoversFromMalformedBlob(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t)

	require.NoError(t, mr.Set("got_saves_v2", "{not json"))

	require.NoError(t, repo.Save(ctx, testSave("Jon", 3)))

	saves, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, "Jon", saves[0].Character.Name)
}
