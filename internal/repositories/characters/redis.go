package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/ova-combat/internal/domain/character"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
	clock  TimeProvider
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	clock := cfg.TimeProvider
	if clock == nil {
		clock = utcClock{}
	}

	return &redisRepo{
		client: cfg.Client,
		clock:  clock,
	}
}

// key generates the Redis key for a character
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// ownerCharactersKey generates the Redis key for an owner's character set
func (r *redisRepo) ownerCharactersKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, char *character.Character) error {
	if char == nil {
		return ovaerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return ovaerr.InvalidArgument("character ID is required")
	}
	if char.OwnerID == "" {
		return ovaerr.InvalidArgument("character owner ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(char.ID)).Result()
	if err != nil {
		return ovaerr.Wrap(err, "failed to check character existence")
	}
	if exists > 0 {
		return ovaerr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	char.CreatedAt = r.clock.Now()
	char.UpdatedAt = char.CreatedAt

	jsonData, err := json.Marshal(char)
	if err != nil {
		return ovaerr.Wrap(err, "failed to marshal character")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(char.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.ownerCharactersKey(char.OwnerID), char.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return ovaerr.Wrap(err, "failed to create character")
	}

	return nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, ovaerr.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ovaerr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, ovaerr.Wrap(err, "failed to get character")
	}

	var char character.Character
	if err := json.Unmarshal([]byte(jsonData), &char); err != nil {
		return nil, ovaerr.Wrapf(err, "failed to unmarshal character %s", id)
	}
	return &char, nil
}

// GetMany loads characters in one MGET, keeping the order of ids
func (r *redisRepo) GetMany(ctx context.Context, ids []string) ([]*character.Character, error) {
	loaded, err := r.mget(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i, char := range loaded {
		if char == nil {
			return nil, ovaerr.NotFoundf("character with ID '%s' not found", ids[i]).
				WithMeta("character_id", ids[i])
		}
	}
	return loaded, nil
}

// GetByOwner retrieves all characters for a specific owner, by name.
// Characters that cannot be loaded are skipped.
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, ovaerr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerCharactersKey(ownerID)).Result()
	if err != nil {
		return nil, ovaerr.Wrap(err, "failed to list character IDs")
	}

	loaded, err := r.mget(ctx, ids)
	if err != nil {
		return nil, err
	}

	characters := make([]*character.Character, 0, len(ids))
	for _, char := range loaded {
		if char != nil {
			characters = append(characters, char)
		}
	}
	sort.Slice(characters, func(i, j int) bool { return characters[i].Name < characters[j].Name })
	return characters, nil
}

// mget loads ids in order. Missing or unreadable entries are nil.
func (r *redisRepo) mget(ctx context.Context, ids []string) ([]*character.Character, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, ovaerr.Wrap(err, "failed to get characters")
	}

	out := make([]*character.Character, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var char character.Character
		if err := json.Unmarshal([]byte(raw), &char); err != nil {
			continue
		}
		out[i] = &char
	}
	return out, nil
}

// Update updates an existing character
func (r *redisRepo) Update(ctx context.Context, char *character.Character) error {
	if char == nil {
		return ovaerr.InvalidArgument("character cannot be nil")
	}

	existing, err := r.Get(ctx, char.ID)
	if err != nil {
		return err
	}

	char.CreatedAt = existing.CreatedAt
	char.UpdatedAt = r.clock.Now()

	jsonData, err := json.Marshal(char)
	if err != nil {
		return ovaerr.Wrap(err, "failed to marshal character")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(char.ID), string(jsonData), 0)
	if existing.OwnerID != char.OwnerID {
		pipe.SRem(ctx, r.ownerCharactersKey(existing.OwnerID), char.ID)
		pipe.SAdd(ctx, r.ownerCharactersKey(char.OwnerID), char.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return ovaerr.Wrap(err, "failed to update character")
	}
	return nil
}

// Delete removes a character
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	char, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerCharactersKey(char.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return ovaerr.Wrap(err, "failed to delete character")
	}
	return nil
}
