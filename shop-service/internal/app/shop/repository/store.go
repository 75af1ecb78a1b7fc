package repository

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Store - потокобезопасная in-memory коллекция с монотонно растущими целочисленными ID
// Каждая коллекция защищена своим мьютексом: проверка и изменение внутри Update/DeleteIf
// выполняются в одной критической секции
type Store[T any] struct {
	mu     sync.RWMutex
	items  map[int64]T
	nextID atomic.Int64
}

// NewStore создает пустую коллекцию, первый выданный ID равен 1
func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[int64]T)}
}

// Insert выдает новый ID и сохраняет запись, построенную build
func (s *Store[T]) Insert(build func(id int64) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID.Add(1)
	item := build(id)
	s.items[id] = item
	return item
}

// Get возвращает копию записи или ErrNotFound
func (s *Store[T]) Get(id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

// List возвращает все записи в порядке возрастания ID
func (s *Store[T]) List() []T {
	return s.Filter(nil)
}

// Filter возвращает записи, для которых match вернул true (nil - все записи), по возрастанию ID
func (s *Store[T]) Filter(match func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.items))
	for id, item := range s.items {
		if match == nil || match(item) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]T, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.items[id])
	}
	return result
}

// Update применяет mutate к копии записи и сохраняет ее, если mutate не вернул ошибку
func (s *Store[T]) Update(id int64, mutate func(*T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	if err := mutate(&item); err != nil {
		var zero T
		return zero, err
	}
	s.items[id] = item
	return item, nil
}

// DeleteIf удаляет запись, если check (может быть nil) разрешает это
func (s *Store[T]) DeleteIf(id int64, check func(T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	if check != nil {
		if err := check(item); err != nil {
			var zero T
			return zero, err
		}
	}
	delete(s.items, id)
	return item, nil
}

// Len возвращает количество записей
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
