package voxel

import "github.com/annel0/voxel-engine/internal/vec"

// Accessor — кэш последнего затронутого блока. Пространственно связные
// обращения через один аксессор пропускают поиск в индексе. Аксессор
// автоматически инвалидируется, когда индекс меша расходится (COW) или
// меняет состав блоков, поэтому устаревший указатель блока никогда не
// разыменовывается.
type Accessor struct {
	index *blockIndex
	gen   uint64
	pos   vec.Vec3
	block *Block
	found bool
}

// Accessor возвращает пустой аксессор для меша
func (m *Mesh) Accessor() Accessor {
	return Accessor{}
}

// matches проверяет, действителен ли кэш для данного индекса и позиции.
// Кэшированный промах (block == nil) тоже считается действительным:
// чтение по нему возвращает прозрачный воксель.
func (a *Accessor) matches(ix *blockIndex, pos vec.Vec3) bool {
	return a.found && a.index == ix && a.gen == ix.gen && a.pos == pos
}

// remember запоминает результат поиска (включая промах)
func (a *Accessor) remember(ix *blockIndex, pos vec.Vec3, b *Block) {
	a.index = ix
	a.gen = ix.gen
	a.pos = pos
	a.block = b
	a.found = true
}

// BlockInfo — элемент обхода блоков
type BlockInfo struct {
	Pos    vec.Vec3 // позиция блока (кратна BlockSize)
	DataID uint64   // идентификатор содержимого полезной нагрузки
	ID     int      // внутримешевый идентификатор блока
}

// BlockIterator — однопроходный итератор по блокам меша. Порядок обхода
// не определён. Завершившийся итератор остаётся завершённым; для нового
// обхода нужно получить новый итератор. Итератор не переживает мутаций
// меша.
type BlockIterator struct {
	blocks []*Block
	i      int
}

// BlockIterator возвращает итератор по блокам меша
func (m *Mesh) BlockIterator() *BlockIterator {
	return &BlockIterator{blocks: m.index.blockSlice()}
}

// Next возвращает следующий блок; второй результат false по завершении
func (it *BlockIterator) Next() (BlockInfo, bool) {
	if it.i >= len(it.blocks) {
		return BlockInfo{}, false
	}
	b := it.blocks[it.i]
	it.i++
	return BlockInfo{Pos: b.pos, DataID: b.data.id, ID: b.id}, true
}

// VoxelIterator — однопроходный итератор по всем вокселям меша, включая
// прозрачные. Внутри блока обход идёт по x быстрее всего, затем y,
// затем z; блоки обходятся в порядке индекса.
type VoxelIterator struct {
	blocks []*Block
	bi     int
	local  vec.Vec3
}

// VoxelIterator возвращает итератор по вокселям меша
func (m *Mesh) VoxelIterator() *VoxelIterator {
	return &VoxelIterator{blocks: m.index.blockSlice()}
}

// Next возвращает мировую позицию и значение следующего вокселя;
// третий результат false по завершении
func (it *VoxelIterator) Next() (vec.Vec3, Color, bool) {
	if it.bi >= len(it.blocks) {
		return vec.Vec3{}, Color{}, false
	}
	b := it.blocks[it.bi]
	pos := b.pos.Add(it.local)
	c := b.data.voxels[voxelIndex(it.local.X, it.local.Y, it.local.Z)]

	it.local.X++
	if it.local.X >= BlockSize {
		it.local.X = 0
		it.local.Y++
		if it.local.Y >= BlockSize {
			it.local.Y = 0
			it.local.Z++
			if it.local.Z >= BlockSize {
				it.local.Z = 0
				it.bi++
			}
		}
	}
	return pos, c, true
}
