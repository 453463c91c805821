package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-console/internal/models"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

const (
	cacheKey = "booking_settings"
	cacheTTL = 60 * time.Second
)

// Source entrega as configurações vigentes de agendamento.
type Source interface {
	Get(ctx context.Context) (*models.BookingSettings, error)
}

// Store guarda o registro único de configurações no banco, com cache
// curto em redis na frente das leituras. rdb pode ser nil (sem cache).
type Store struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewStore(db *gorm.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

var _ Source = (*Store)(nil)

func (s *Store) Get(ctx context.Context) (*models.BookingSettings, error) {
	if s.rdb != nil {
		if data, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var st models.BookingSettings
			if jsonErr := json.Unmarshal([]byte(data), &st); jsonErr == nil {
				return &st, nil
			}
		}
	}

	var st models.BookingSettings
	err := s.db.WithContext(ctx).First(&st, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// primeiro acesso: cria o registro com os padrões
		st = models.BookingSettings{
			ID:       1,
			Timezone: timezone.DefaultTimezone,
		}
		if err := s.db.WithContext(ctx).FirstOrCreate(&st).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	s.cache(ctx, &st)
	return &st, nil
}

func (s *Store) Update(ctx context.Context, st *models.BookingSettings) error {
	st.ID = 1
	if err := s.db.WithContext(ctx).Save(st).Error; err != nil {
		return err
	}

	if s.rdb != nil {
		// invalidação best-effort; a entrada expira sozinha pelo TTL
		_ = s.rdb.Del(ctx, cacheKey).Err()
	}
	return nil
}

func (s *Store) cache(ctx context.Context, st *models.BookingSettings) {
	if s.rdb == nil {
		return
	}
	if data, err := json.Marshal(st); err == nil {
		_ = s.rdb.Set(ctx, cacheKey, data, cacheTTL).Err()
	}
}
