package voxel

import (
	"github.com/annel0/voxel-engine/internal/geom"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/voxel/shape"
)

// AddBlocks гарантирует, что каждая выровненная позиция решётки внутри
// бокса занята блоком (денсификация области). Последующие чтения и
// записи внутри бокса всегда находят блок.
func (m *Mesh) AddBlocks(box geom.AABB) {
	if box.IsNull() {
		return
	}
	m.prepareWrite()
	m.addBlocksLocked(box)
}

// addBlocksLocked — денсификация после prepareWrite
func (m *Mesh) addBlocksLocked(box geom.AABB) {
	ia := vec.FloorVec3(box.Min).AlignDown(BlockSize)
	ib := vec.CeilVec3(box.Max).AlignDown(BlockSize)
	for z := ia.Z; z <= ib.Z; z += BlockSize {
		for y := ia.Y; y <= ib.Y; y += BlockSize {
			for x := ia.X; x <= ib.X; x += BlockSize {
				p := vec.Vec3{X: x, Y: y, Z: z}
				if m.index.find(p) == nil {
					// Позиция выровнена по построению
					m.addBlock(p)
				}
			}
		}
	}
}

// Apply применяет конструктивную операцию к мешу. Бокс задаёт экземпляр
// формы в мировых координатах (его матрица — аффинное преобразование
// кисти). Блоки вне затронутой области не посещаются, кроме режима
// пересечения, где не попавшие под кисть блоки удаляются.
//
// Геометрический no-op (нулевой бокс, пустое пересечение с клип-боксом)
// не меняет версию меша.
func (m *Mesh) Apply(p *Painter, box geom.Box) {
	if box.IsNull() {
		return
	}

	// Симметрия: на каждый активный бит оси выполняется рекурсивное
	// зеркальное применение с этим битом, снятым у рекурсивной кисти.
	if p.Symmetry != 0 {
		p2 := *p
		for i := 0; i < 3; i++ {
			bit := uint8(1) << i
			if p.Symmetry&bit == 0 {
				continue
			}
			p2.Symmetry &^= bit
			box2 := box.TransformBy(geom.MirrorMat4(i))
			m.Apply(&p2, box2)
		}
	}

	// Расширяем область на сглаживание и воксельный запас
	fullBox := box.Grow(p.Smoothness, p.Smoothness, p.Smoothness)
	bbox := fullBox.BBox().Grow(1, 1, 1)
	if p.Box != nil {
		bbox = bbox.Intersection(*p.Box)
		if bbox.IsNull() {
			return
		}
		bbox = bbox.Grow(1, 1, 1)
	}

	m.prepareWrite()
	if p.Mode.grows() {
		m.addBlocksLocked(bbox)
	}
	for _, b := range m.index.blockSlice() {
		blockBox := b.box(false)
		remove := false
		if !bbox.Intersects(blockBox) {
			if p.Mode != ModeIntersect {
				continue
			}
			remove = true
		}
		// Быстрый путь: кубическое вычитание, целиком накрывающее блок
		if !remove && p.Shape == shape.Cube && p.Mode == ModeSub &&
			fullBox.ContainsAABB(blockBox) {
			remove = true
		}
		if !remove {
			b.applyPainter(p, box, m.ids)
			if b.isEmpty() {
				remove = true
			}
		}
		if remove {
			m.index.remove(b.pos)
		}
	}
}

// Merge сливает содержимое другого меша в этот с заданным режимом
// смешивания. Отсутствующий в источнике блок трактуется как полностью
// прозрачный.
func (m *Mesh) Merge(other *Mesh, mode Mode) {
	m.prepareWrite()

	// Растущие режимы сначала денсифицируют цель позициями источника
	if mode.grows() {
		for _, pos := range other.index.positions() {
			if m.index.find(pos) == nil {
				m.addBlock(pos)
			}
		}
	}

	for _, b := range m.index.blockSlice() {
		ob := other.index.find(b.pos)
		empty := false
		if b.isEmpty() && ob.isEmpty() {
			empty = true
		}
		if mode == ModeMultAlpha && ob.isEmpty() {
			empty = true
		}
		if empty {
			// Смешивание пустого с пустым — гарантированный no-op,
			// блок удаляется без повоксельного прохода
			m.index.remove(b.pos)
			continue
		}
		b.merge(ob, mode, m.ids)
	}
}
