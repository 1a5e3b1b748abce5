package voxel

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-engine/internal/geom"
	"github.com/annel0/voxel-engine/internal/vec"
)

// Move применяет к мешу аффинное преобразование полной передискретизацией:
// занятая область пересчитывается в новых координатах, и каждый воксель
// берётся из снимка по обратно преобразованной позиции (с округлением до
// ближайшего целого). Выравнивание блоков не переживает произвольное
// аффинное преобразование, поэтому сдвиг "на месте" невозможен.
//
// Move пустого меша — no-op и не меняет версию.
func (m *Mesh) Move(mat mgl64.Mat4) {
	box := m.BoundingBox(true)
	if box.IsNull() {
		return
	}
	src := m.Copy()
	imat := mat.Inv()
	dst := geom.BoxFromAABB(box).TransformBy(mat)

	acc := src.Accessor()
	m.Fill(dst, func(pos vec.Vec3) Color {
		p := imat.Mul4x1(pos.ToFloat().Vec4(1)).Vec3()
		return src.GetAt(vec.RoundVec3(p), &acc)
	})
	src.Release()
	m.RemoveEmptyBlocks()
}

// Extrude проецирует воксели на плоскость внутри клип-бокса: по оси,
// наиболее сонаправленной с нормалью плоскости, координата обнуляется и
// фиксируется на смещении плоскости, так что каждый воксель области
// получает цвет, лежащий на плоскости в его колонке. Воксели затронутых
// блоков вне клип-бокса принудительно очищаются.
//
// Чтение идёт из снимка, сделанного до денсификации, поэтому записи
// текущего прохода не влияют на выборку.
func (m *Mesh) Extrude(plane geom.Plane, box geom.AABB) {
	if box.IsNull() {
		return
	}

	// Проекция на плоскость вдоль доминирующей оси нормали
	axis := plane.DominantAxis()
	proj := mgl64.Ident4()
	proj[axis*4+axis] = 0
	proj[12+axis] = plane.P[axis]

	src := m.Copy()
	m.prepareWrite()
	bbox := box.Grow(1, 1, 1)
	m.addBlocksLocked(bbox)

	acc := src.Accessor()
	for _, b := range m.index.blockSlice() {
		if !bbox.Intersects(b.box(false)) {
			continue
		}
		b.fill(func(pos vec.Vec3) Color {
			p := pos.ToFloat()
			if !box.ContainsVec(p) {
				return Color{}
			}
			q := proj.Mul4x1(p.Vec4(1)).Vec3()
			return src.GetAt(vec.FloorVec3(q), &acc)
		}, m.ids)
	}
	src.Release()
	m.RemoveEmptyBlocks()
}
