// Package cache реализует координатор чтений и мутаций поверх хранилищ:
// кэш по ключу (ресурс, родитель), схлопывание параллельных запросов,
// инвалидация после мутаций и канал уведомлений о результатах.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Resource — тип кэшируемого ресурса. Значения повторяют ключи запросов
// клиентского прототипа.
type Resource string

const (
	ResourceAlbums  Resource = "groups"
	ResourceMembers Resource = "group-members"
	ResourcePhotos  Resource = "group-photos"
)

// RequiresParent сообщает, обязан ли ключ ресурса иметь идентификатор родителя
func (r Resource) RequiresParent() bool {
	return r != ResourceAlbums
}

// Key — ключ кэшируемого запроса: ресурс и необязательный родитель (альбом)
type Key struct {
	Resource Resource
	Parent   uuid.UUID
}

func (k Key) String() string {
	if k.Parent == uuid.Nil {
		return string(k.Resource)
	}
	return fmt.Sprintf("%s/%s", k.Resource, k.Parent)
}

// Status — состояние записи кэша
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

// ErrKeyDisabled возвращается для ключа без обязательного родителя:
// такой ключ никогда не переходит в Pending и запрос не выполняется
var ErrKeyDisabled = errors.New("ключ кэша отключен: не задан идентификатор родителя")

// FetchFunc — функция чтения из шлюза данных для конкретного ключа
type FetchFunc func(ctx context.Context) (interface{}, error)

type entry struct {
	status Status
	value  interface{}
	err    error
	stale  bool
}

// Service — сервис-координатор. Зависимости (функции чтения) передаются
// явно при каждом запросе, сам сервис хранилищ не знает.
type Service struct {
	mu      sync.Mutex
	entries map[Key]*entry
	// Поколение ключа растет при каждой инвалидации. Запрос, стартовавший
	// до инвалидации, не отменяется: его результат сохраняется, но сразу
	// помечается устаревшим.
	generations map[Key]uint64

	group   singleflight.Group
	notices chan Notice

	// 0 — без таймаута: зависший запрос оставляет ключ в Pending,
	// как в исходном поведении
	fetchTimeout time.Duration

	logger *slog.Logger
}

// NewService создает новый координатор
func NewService(fetchTimeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		entries:      make(map[Key]*entry),
		generations:  make(map[Key]uint64),
		notices:      make(chan Notice, 64),
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// Get возвращает значение по ключу: из кэша, если запись свежая, иначе
// через fetch. Параллельные подписчики одного ключа схлопываются в один
// запрос к шлюзу и получают общий результат.
func (s *Service) Get(ctx context.Context, key Key, fetch FetchFunc) (interface{}, error) {
	if key.Resource.RequiresParent() && key.Parent == uuid.Nil {
		return nil, ErrKeyDisabled
	}

	s.mu.Lock()
	e := s.ensureEntry(key)
	if e.status == StatusSuccess && !e.stale {
		value := e.value
		s.mu.Unlock()
		return value, nil
	}
	gen := s.generations[key]
	e.status = StatusPending
	s.mu.Unlock()

	value, err, shared := s.group.Do(key.String(), func() (interface{}, error) {
		fetchCtx := ctx
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
		}

		value, err := fetch(fetchCtx)

		s.mu.Lock()
		defer s.mu.Unlock()

		e := s.ensureEntry(key)
		// Инвалидация во время полета: значение сохраняем, но запись
		// сразу устаревшая — следующий подписчик перечитает
		staleNow := s.generations[key] != gen

		if err != nil {
			e.status = StatusError
			e.err = err
			e.stale = true
			return nil, err
		}

		e.status = StatusSuccess
		e.value = value
		e.err = nil
		e.stale = staleNow
		return value, nil
	})

	if shared {
		s.logger.Debug("cache fetch collapsed", "key", key.String())
	}
	return value, err
}

// Invalidate помечает запись по ключу устаревшей: следующая подписка
// переведет ключ в Pending и перечитает данные
func (s *Service) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		s.invalidateLocked(key)
	}
}

// InvalidateResource инвалидирует все ключи ресурса независимо от родителя
// (аналог инвалидации по префиксу ключа в прототипе)
func (s *Service) InvalidateResource(resource Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if key.Resource == resource {
			s.invalidateLocked(key)
		}
	}
}

func (s *Service) invalidateLocked(key Key) {
	s.generations[key]++
	if e, ok := s.entries[key]; ok && (e.status == StatusSuccess || e.status == StatusError) {
		e.stale = true
	}
}

// Status возвращает текущее состояние записи по ключу
func (s *Service) Status(key Key) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e.status
	}
	return StatusIdle
}

// IsStale сообщает, помечена ли запись устаревшей
func (s *Service) IsStale(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e.stale
	}
	return false
}

func (s *Service) ensureEntry(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{status: StatusIdle}
		s.entries[key] = e
	}
	return e
}
