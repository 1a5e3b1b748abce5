package voxel

import (
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// IDSource выдаёт монотонно возрастающие идентификаторы для версий
// мешей и содержимого блоков. Источник принадлежит объекту уровня
// документа/сессии и передаётся в NewMesh: идентификаторы монотонны
// только внутри одного источника, поэтому внешние кэши различают
// источники по Origin.
type IDSource struct {
	origin uuid.UUID
	next   atomic.Uint64
}

// NewIDSource создаёт новый источник идентификаторов
func NewIDSource() *IDSource {
	return &IDSource{origin: uuid.New()}
}

// Next возвращает следующий идентификатор (начиная с 1)
func (s *IDSource) Next() uint64 {
	return s.next.Inc()
}

// Origin возвращает уникальный идентификатор самого источника
func (s *IDSource) Origin() uuid.UUID {
	return s.origin
}
