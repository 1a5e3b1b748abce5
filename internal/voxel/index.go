package voxel

import (
	"errors"

	"go.uber.org/atomic"

	"github.com/annel0/voxel-engine/internal/vec"
)

// ErrInvalidPosition возвращается при попытке вставить блок на позицию,
// не кратную BlockSize, либо на уже занятую позицию.
var ErrInvalidPosition = errors.New("voxel: некорректная позиция блока")

// blockIndex — ассоциативный индекс блоков по позиции. Индекс разделяется
// между хэндлами Mesh по счётчику ссылок: счётчик равен числу хэндлов,
// которые видят индекс неизменённым. Любая мутация идёт через
// Mesh.prepareWrite, который при разделении клонирует индекс.
type blockIndex struct {
	ref    atomic.Int32
	gen    uint64 // меняется при вставке/удалении; инвалидирует Accessor
	blocks map[vec.Vec3]*Block
}

// newBlockIndex создаёт пустой индекс с одним владельцем
func newBlockIndex() *blockIndex {
	ix := &blockIndex{blocks: make(map[vec.Vec3]*Block)}
	ix.ref.Store(1)
	return ix
}

// find возвращает блок по выровненной позиции или nil
func (ix *blockIndex) find(pos vec.Vec3) *Block {
	return ix.blocks[pos]
}

// insert добавляет блок в индекс.
// Позиция должна быть выровнена и свободна, иначе ErrInvalidPosition.
func (ix *blockIndex) insert(b *Block) error {
	if !b.pos.IsAligned(BlockSize) {
		return ErrInvalidPosition
	}
	if _, ok := ix.blocks[b.pos]; ok {
		return ErrInvalidPosition
	}
	ix.blocks[b.pos] = b
	ix.gen++
	return nil
}

// remove удаляет блок с позиции и отпускает его полезную нагрузку
func (ix *blockIndex) remove(pos vec.Vec3) {
	b, ok := ix.blocks[pos]
	if !ok {
		return
	}
	b.release()
	delete(ix.blocks, pos)
	ix.gen++
}

// clone создаёт эксклюзивную копию индекса для COW: каждый блок
// клонируется с сохранением id, полезные нагрузки разделяются
func (ix *blockIndex) clone() *blockIndex {
	out := newBlockIndex()
	for pos, b := range ix.blocks {
		out.blocks[pos] = b.copy()
	}
	return out
}

// release отпускает одну ссылку на индекс; последний владелец
// отпускает полезные нагрузки всех блоков
func (ix *blockIndex) release() {
	if ix.ref.Dec() > 0 {
		return
	}
	for pos, b := range ix.blocks {
		b.release()
		delete(ix.blocks, pos)
	}
}

// blockSlice возвращает срез блоков: безопасный для удаления из
// индекса во время обхода снимок
func (ix *blockIndex) blockSlice() []*Block {
	out := make([]*Block, 0, len(ix.blocks))
	for _, b := range ix.blocks {
		out = append(out, b)
	}
	return out
}

// positions возвращает срез занятых позиций
func (ix *blockIndex) positions() []vec.Vec3 {
	out := make([]vec.Vec3, 0, len(ix.blocks))
	for pos := range ix.blocks {
		out = append(out, pos)
	}
	return out
}
