package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"got-server/internal/models"
)

// Compile-time check to ensure redisSaveRepository implements SaveRepository
var _ SaveRepository = (*redisSaveRepository)(nil)

// redisSaveRepository хранит всю карту имя → SaveFile одним JSON-блобом под
// фиксированным ключом. Битый блоб трактуется как пустое хранилище, а не как
// фатальная ошибка.
type redisSaveRepository struct {
	client   *redis.Client
	storeKey string
	logger   *zap.Logger
}

// NewRedisSaveRepository creates a new Redis-backed SaveRepository.
func NewRedisSaveRepository(client *redis.Client, storeKey string, logger *zap.Logger) SaveRepository {
	return &redisSaveRepository{
		client:   client,
		storeKey: storeKey,
		logger:   logger.Named("RedisSaveRepo"),
	}
}

func (r *redisSaveRepository) Save(ctx context.Context, sf models.SaveFile) error {
	saves, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	saves[sf.Character.Name] = sf

	data, err := json.Marshal(saves)
	if err != nil {
		return fmt.Errorf("failed to marshal save store: %w", err)
	}
	if err := r.client.Set(ctx, r.storeKey, data, 0).Err(); err != nil {
		r.logger.Error("Failed to write save store", zap.Error(err), zap.String("character", sf.Character.Name))
		return fmt.Errorf("failed to write save store: %w", err)
	}

	r.logger.Debug("Save stored",
		zap.String("character", sf.Character.Name),
		zap.Int("turnCount", sf.TurnCount),
		zap.Int("totalSaves", len(saves)),
	)
	return nil
}

func (r *redisSaveRepository) Get(ctx context.Context, characterName string) (models.SaveFile, error) {
	saves, err := r.loadAll(ctx)
	if err != nil {
		return models.SaveFile{}, err
	}
	sf, ok := saves[characterName]
	if !ok {
		return models.SaveFile{}, models.ErrSaveNotFound
	}
	return sf, nil
}

func (r *redisSaveRepository) List(ctx context.Context) ([]models.SaveFile, error) {
	saves, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.SaveFile, 0, len(saves))
	for _, sf := range saves {
		result = append(result, sf)
	}
	return result, nil
}

func (r *redisSaveRepository) Delete(ctx context.Context, characterName string) error {
	saves, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	if _, ok := saves[characterName]; !ok {
		return nil
	}
	delete(saves, characterName)

	data, err := json.Marshal(saves)
	if err != nil {
		return fmt.Errorf("failed to marshal save store: %w", err)
	}
	if err := r.client.Set(ctx, r.storeKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write save store: %w", err)
	}
	r.logger.Debug("Save deleted", zap.String("character", characterName))
	return nil
}

func (r *redisSaveRepository) loadAll(ctx context.Context) (map[string]models.SaveFile, error) {
	data, err := r.client.Get(ctx, r.storeKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return map[string]models.SaveFile{}, nil
	}
	if err != nil {
		r.logger.Error("Failed to read save store", zap.Error(err))
		return nil, fmt.Errorf("failed to read save store: %w", err)
	}
	return decodeSaves(r.logger, data), nil
}

// decodeSaves разбирает блоб хранилища; малформатные данные деградируют до
// пустой карты.
func decodeSaves(logger *zap.Logger, data []byte) map[string]models.SaveFile {
	var saves map[string]models.SaveFile
	if err := json.Unmarshal(data, &saves); err != nil {
		logger.Warn("Save store blob is malformed, treating as empty", zap.Error(err))
		return map[string]models.SaveFile{}
	}
	if saves == nil {
		return map[string]models.SaveFile{}
	}
	return saves
}
