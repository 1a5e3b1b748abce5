package voxel

import (
	"github.com/annel0/voxel-engine/internal/geom"
	"github.com/annel0/voxel-engine/internal/vec"
)

// Mesh — публичный хэндл объёмного хранилища. Несколько хэндлов могут
// разделять один индекс блоков после Copy; первая мутация любого из них
// клонирует индекс (COW), поэтому снимки дёшевы, а читатели старых
// снимков никогда не видят частичных записей.
//
// Меш не потокобезопасен для конкурентных мутаций: дисциплина — один
// пишущий на хэндл. Счётчики ссылок атомарны, поэтому читать старые
// снимки из других горутин можно.
type Mesh struct {
	index       *blockIndex
	nextBlockID int
	id          uint64
	ids         *IDSource
}

// NewMesh создаёт пустой меш, использующий источник идентификаторов ids
func NewMesh(ids *IDSource) *Mesh {
	return &Mesh{
		index:       newBlockIndex(),
		nextBlockID: 1,
		id:          ids.Next(),
		ids:         ids,
	}
}

// Copy создаёт новый хэндл, разделяющий содержимое с исходным (O(1)).
// Ни блоки, ни воксели при этом не копируются.
func (m *Mesh) Copy() *Mesh {
	m.index.ref.Inc()
	return &Mesh{
		index:       m.index,
		nextBlockID: m.nextBlockID,
		id:          m.id,
		ids:         m.ids,
	}
}

// Set заменяет содержимое меша содержимым другого (O(1), через
// разделение индекса). Прежний индекс отпускается.
func (m *Mesh) Set(other *Mesh) {
	if m.index == other.index {
		return
	}
	m.index.release()
	other.index.ref.Inc()
	m.index = other.index
	m.nextBlockID = other.nextBlockID
	m.id = m.ids.Next()
}

// Release отпускает хэндл. Последний владелец индекса освобождает все
// блоки и их полезные нагрузки. Хэндл после вызова использовать нельзя.
func (m *Mesh) Release() {
	if m.index == nil {
		return
	}
	m.index.release()
	m.index = nil
}

// IsEmpty сообщает, пуст ли индекс блоков
func (m *Mesh) IsEmpty() bool {
	return len(m.index.blocks) == 0
}

// VersionID возвращает версию содержимого: значение меняется после
// каждой мутации и используется внешними кэшами для обнаружения
// изменений
func (m *Mesh) VersionID() uint64 {
	return m.id
}

// IDs возвращает источник идентификаторов меша
func (m *Mesh) IDs() *IDSource {
	return m.ids
}

// BlockCount возвращает число блоков в индексе
func (m *Mesh) BlockCount() int {
	return len(m.index.blocks)
}

// prepareWrite — единственные ворота перед любой мутацией: помечает меш
// новой версией и, если индекс разделяется с другими хэндлами,
// отцепляется от него, клонируя все блоки (полезные нагрузки при этом
// только получают дополнительную ссылку).
func (m *Mesh) prepareWrite() {
	m.id = m.ids.Next()
	if m.index.ref.Load() == 1 {
		return
	}
	old := m.index
	m.index = old.clone()
	old.ref.Dec()
}

// addBlock вставляет пустой блок на выровненную позицию и назначает ему
// очередной внутримешевый идентификатор. Вызывается только после
// prepareWrite.
func (m *Mesh) addBlock(pos vec.Vec3) (*Block, error) {
	b := newBlock(pos, m.ids)
	if err := m.index.insert(b); err != nil {
		return nil, err
	}
	b.id = m.nextBlockID
	m.nextBlockID++
	return b, nil
}

// Clear удаляет все блоки и сбрасывает счётчик идентификаторов блоков
func (m *Mesh) Clear() {
	m.prepareWrite()
	for _, b := range m.index.blockSlice() {
		m.index.remove(b.pos)
	}
	m.nextBlockID = 1
}

// RemoveEmptyBlocks удаляет из индекса блоки без непрозрачных вокселей
func (m *Mesh) RemoveEmptyBlocks() {
	m.prepareWrite()
	for _, b := range m.index.blockSlice() {
		if b.isEmpty() {
			m.index.remove(b.pos)
		}
	}
}

// BoundingBox возвращает объединение боксов всех блоков.
// Для пустого меша возвращается NullAABB.
func (m *Mesh) BoundingBox(exact bool) geom.AABB {
	out := geom.NullAABB()
	for _, b := range m.index.blocks {
		out = out.Merge(b.box(exact))
	}
	return out
}

// GetAt возвращает воксель по мировой позиции. Отсутствие блока — не
// ошибка: возвращается полностью прозрачный воксель. Необязательный
// Accessor позволяет пропустить поиск в индексе при пространственно
// связных обращениях.
func (m *Mesh) GetAt(pos vec.Vec3, acc *Accessor) Color {
	p := pos.AlignDown(BlockSize)
	if acc != nil && acc.matches(m.index, p) {
		if acc.block == nil {
			return Color{}
		}
		return acc.block.getAt(pos)
	}
	b := m.index.find(p)
	if acc != nil {
		acc.remember(m.index, p, b)
	}
	if b == nil {
		return Color{}
	}
	return b.getAt(pos)
}

// AlphaAt возвращает альфу вокселя по мировой позиции
func (m *Mesh) AlphaAt(pos vec.Vec3, acc *Accessor) uint8 {
	return m.GetAt(pos, acc)[3]
}

// SetAt записывает воксель по мировой позиции, при необходимости
// создавая блок (автоматический рост при записи, в отличие от GetAt)
func (m *Mesh) SetAt(pos vec.Vec3, c Color, acc *Accessor) {
	m.prepareWrite()
	p := pos.AlignDown(BlockSize)
	var b *Block
	if acc != nil && acc.matches(m.index, p) {
		b = acc.block
	} else {
		b = m.index.find(p)
	}
	if b == nil {
		// Позиция выровнена и свободна: ошибка вставки невозможна
		b, _ = m.addBlock(p)
	}
	if acc != nil {
		acc.remember(m.index, p, b)
	}
	b.setAt(pos, c, m.ids)
}

// Fill очищает меш, заполняет бокс блоками и перезаписывает каждый их
// воксель значением из fn
func (m *Mesh) Fill(box geom.Box, fn FillFunc) {
	if box.IsNull() {
		return
	}
	m.Clear()
	m.addBlocksLocked(box.BBox())
	for _, b := range m.index.blockSlice() {
		b.fill(fn, m.ids)
	}
}

// Blit загружает прямоугольный массив RGBA-данных (w*h*d*4 байт,
// x меняется быстрее всего) начиная с позиции (x, y, z)
func (m *Mesh) Blit(data []uint8, x, y, z, w, h, d int) {
	acc := m.Accessor()
	i := 0
	for pz := z; pz < z+d; pz++ {
		for py := y; py < y+h; py++ {
			for px := x; px < x+w; px++ {
				c := Color{data[i], data[i+1], data[i+2], data[i+3]}
				m.SetAt(vec.Vec3{X: px, Y: py, Z: pz}, c, &acc)
				i += 4
			}
		}
	}
	m.RemoveEmptyBlocks()
}

// ShiftAlpha сдвигает альфу каждого вокселя на v с насыщением и
// удаляет опустевшие блоки
func (m *Mesh) ShiftAlpha(v int) {
	m.prepareWrite()
	for _, b := range m.index.blockSlice() {
		b.shiftAlpha(v, m.ids)
	}
	m.RemoveEmptyBlocks()
}
