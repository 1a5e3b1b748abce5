package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/annel0/voxel-engine/internal/geom"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/voxel/shape"
)

// aabb — сокращение для построения бокса в тестах
func aabb(x0, y0, z0, x1, y1, z1 float64) geom.AABB {
	return geom.AABB{Min: mgl64.Vec3{x0, y0, z0}, Max: mgl64.Vec3{x1, y1, z1}}
}

func TestAddBlocksDensify(t *testing.T) {
	m := newTestMesh(t)
	m.AddBlocks(aabb(0, 0, 0, 20, 4, 4))

	// Область 0..20 по X покрывается блоками 0 и 16
	assert.NotNil(t, m.index.find(vec.Vec3{}))
	assert.NotNil(t, m.index.find(vec.Vec3{X: 16}))
	count := m.BlockCount()
	assert.Equal(t, 2, count)

	// Идемпотентность: повторная денсификация ничего не добавляет
	m.AddBlocks(aabb(0, 0, 0, 20, 4, 4))
	assert.Equal(t, count, m.BlockCount())
}

func TestApplyCubeOver(t *testing.T) {
	m := newTestMesh(t)
	p := &Painter{Mode: ModeOver, Shape: shape.Cube, Color: red}
	m.Apply(p, geom.BoxFromAABB(aabb(0, 0, 0, 8, 8, 8)))

	if got := m.GetAt(vec.Vec3{}, nil); got != red {
		t.Errorf("Воксель внутри кисти: ожидался красный, получено %v", got)
	}
	if got := m.GetAt(vec.Vec3{X: 7, Y: 7, Z: 7}, nil); got != red {
		t.Errorf("Дальний угол кисти: ожидался красный, получено %v", got)
	}
	if got := m.GetAt(vec.Vec3{X: 8}, nil); got != (Color{}) {
		t.Errorf("Воксель вне кисти: ожидался прозрачный, получено %v", got)
	}

	// Денсифицированные, но не закрашенные блоки удалены
	assert.Equal(t, 1, m.BlockCount())
}

func TestApplySphereOver(t *testing.T) {
	m := newTestMesh(t)
	p := &Painter{Mode: ModeOver, Shape: shape.Sphere, Color: red}
	m.Apply(p, geom.BoxFromAABB(aabb(0, 0, 0, 8, 8, 8)))

	// Центр сферы закрашен, угол бокса — нет
	assert.Equal(t, red, m.GetAt(vec.Vec3{X: 4, Y: 4, Z: 4}, nil))
	assert.Equal(t, Color{}, m.GetAt(vec.Vec3{X: 0, Y: 0, Z: 0}, nil))
}

func TestApplySubCubeShortcut(t *testing.T) {
	// Кубическое вычитание, целиком накрывающее блок, удаляет блок
	// без повоксельного прохода
	m := newTestMesh(t)
	over := &Painter{Mode: ModeOver, Shape: shape.Cube, Color: red}
	m.Apply(over, geom.BoxFromAABB(aabb(0, 0, 0, 16, 16, 16)))
	assert.False(t, m.IsEmpty())

	sub := &Painter{Mode: ModeSub, Shape: shape.Cube, Color: Color{0, 0, 0, 255}}
	m.Apply(sub, geom.BoxFromAABB(aabb(-1, -1, -1, 17, 17, 17)))
	assert.True(t, m.IsEmpty(), "Блок должен быть удалён вычитанием")
}

func TestApplySubPartial(t *testing.T) {
	m := newTestMesh(t)
	over := &Painter{Mode: ModeOver, Shape: shape.Cube, Color: red}
	m.Apply(over, geom.BoxFromAABB(aabb(0, 0, 0, 8, 8, 8)))

	sub := &Painter{Mode: ModeSub, Shape: shape.Cube, Color: Color{0, 0, 0, 255}}
	m.Apply(sub, geom.BoxFromAABB(aabb(0, 0, 0, 4, 8, 8)))

	assert.Equal(t, Color{}, m.GetAt(vec.Vec3{X: 1, Y: 1, Z: 1}, nil), "Вычтенная половина пуста")
	assert.Equal(t, red, m.GetAt(vec.Vec3{X: 5, Y: 1, Z: 1}, nil), "Вторая половина цела")
}

func TestApplySymmetry(t *testing.T) {
	// Бит симметрии X зеркалит мазок в отрицательный октант
	m := newTestMesh(t)
	p := &Painter{Mode: ModeOver, Shape: shape.Cube, Color: red, Symmetry: SymmetryX}
	m.Apply(p, geom.BoxFromAABB(aabb(6, 0, 0, 10, 2, 2)))

	assert.Equal(t, red, m.GetAt(vec.Vec3{X: 7}, nil), "Прямой мазок")
	assert.Equal(t, red, m.GetAt(vec.Vec3{X: -8}, nil), "Зеркальный мазок")
	assert.Equal(t, Color{}, m.GetAt(vec.Vec3{X: 0}, nil))
}

func TestApplyClipBox(t *testing.T) {
	m := newTestMesh(t)
	clip := aabb(0, 0, 0, 4, 16, 16)
	p := &Painter{Mode: ModeOver, Shape: shape.Cube, Color: red, Box: &clip}
	m.Apply(p, geom.BoxFromAABB(aabb(0, 0, 0, 16, 4, 4)))

	assert.Equal(t, red, m.GetAt(vec.Vec3{X: 1, Y: 1, Z: 1}, nil))
	// Воксели кисти за пределами клип-бокса не закрашены
	assert.Equal(t, Color{}, m.GetAt(vec.Vec3{X: 9, Y: 1, Z: 1}, nil))
	assert.Equal(t, Color{}, m.GetAt(vec.Vec3{X: 4, Y: 1, Z: 1}, nil))
}

func TestApplyEmptyClipIsNoop(t *testing.T) {
	// Пустое пересечение с клип-боксом не меняет ни содержимое, ни версию
	m := newTestMesh(t)
	m.SetAt(vec.Vec3{}, red, nil)
	ver := m.VersionID()

	clip := aabb(100, 100, 100, 110, 110, 110)
	p := &Painter{Mode: ModeOver, Shape: shape.Cube, Color: blue, Box: &clip}
	m.Apply(p, geom.BoxFromAABB(aabb(0, 0, 0, 8, 8, 8)))

	assert.Equal(t, ver, m.VersionID(), "No-op не должен двигать версию")
	assert.Equal(t, red, m.GetAt(vec.Vec3{}, nil))
}

func TestApplyOutsideBlocksBumpsVersion(t *testing.T) {
	// Операция мимо всех блоков — no-op по содержимому, но версия растёт
	m := newTestMesh(t)
	m.SetAt(vec.Vec3{}, red, nil)
	ver := m.VersionID()

	p := &Painter{Mode: ModeSub, Shape: shape.Cube, Color: Color{0, 0, 0, 255}}
	m.Apply(p, geom.BoxFromAABB(aabb(100, 100, 100, 104, 104, 104)))
	assert.Greater(t, m.VersionID(), ver)
	assert.Equal(t, red, m.GetAt(vec.Vec3{}, nil))
}

func TestApplyNullBoxIsNoop(t *testing.T) {
	m := newTestMesh(t)
	ver := m.VersionID()
	p := &Painter{Mode: ModeOver, Shape: shape.Cube, Color: red}
	m.Apply(p, geom.Box{})
	assert.Equal(t, ver, m.VersionID())
	assert.True(t, m.IsEmpty())
}

func TestApplyIntersect(t *testing.T) {
	// Пересечение обнуляет всё вне кисти, включая непересекающиеся блоки
	m := newTestMesh(t)
	m.SetAt(vec.Vec3{X: 1, Y: 1, Z: 1}, red, nil)
	m.SetAt(vec.Vec3{X: 40}, red, nil)

	p := &Painter{Mode: ModeIntersect, Shape: shape.Cube, Color: Color{0, 0, 0, 255}}
	m.Apply(p, geom.BoxFromAABB(aabb(0, 0, 0, 4, 4, 4)))

	assert.Equal(t, red, m.GetAt(vec.Vec3{X: 1, Y: 1, Z: 1}, nil), "Внутри кисти воксель цел")
	assert.Equal(t, Color{}, m.GetAt(vec.Vec3{X: 40}, nil), "Дальний блок обнулён")
	assert.Equal(t, 1, m.BlockCount())
}

func TestApplySmoothness(t *testing.T) {
	// Сглаживание даёт полупрозрачный край за пределами резкой границы
	m := newTestMesh(t)
	p := &Painter{Mode: ModeOver, Shape: shape.Sphere, Color: red, Smoothness: 2}
	m.Apply(p, geom.BoxFromAABB(aabb(0, 0, 0, 8, 8, 8)))

	center := m.AlphaAt(vec.Vec3{X: 4, Y: 4, Z: 4}, nil)
	edge := m.AlphaAt(vec.Vec3{X: 7, Y: 4, Z: 4}, nil)
	assert.Equal(t, uint8(255), center)
	assert.Greater(t, center, edge)
	assert.Greater(t, edge, uint8(0), "Край внутри полосы сглаживания полупрозрачен")
}

func TestMergeOver(t *testing.T) {
	ids := NewIDSource()
	a := NewMesh(ids)
	b := NewMesh(ids)
	a.SetAt(vec.Vec3{}, red, nil)
	b.SetAt(vec.Vec3{X: 20}, blue, nil)

	a.Merge(b, ModeOver)
	assert.Equal(t, red, a.GetAt(vec.Vec3{}, nil))
	assert.Equal(t, blue, a.GetAt(vec.Vec3{X: 20}, nil), "Растущее слияние добавляет блоки источника")
}

func TestMergeMultAlphaEmptySource(t *testing.T) {
	// Сценарий C: умножение на пустой источник опустошает цель
	ids := NewIDSource()
	a := NewMesh(ids)
	empty := NewMesh(ids)
	a.SetAt(vec.Vec3{}, red, nil)
	a.SetAt(vec.Vec3{X: 40}, blue, nil)

	a.Merge(empty, ModeMultAlpha)
	assert.True(t, a.IsEmpty(), "Все блоки без непустого источника удалены")
}

func TestMergeSub(t *testing.T) {
	ids := NewIDSource()
	a := NewMesh(ids)
	b := NewMesh(ids)
	a.SetAt(vec.Vec3{}, red, nil)
	a.SetAt(vec.Vec3{X: 1}, red, nil)
	b.SetAt(vec.Vec3{}, Color{0, 0, 0, 255}, nil)

	a.Merge(b, ModeSub)
	assert.Equal(t, uint8(0), a.AlphaAt(vec.Vec3{}, nil), "Вычтенный воксель прозрачен")
	assert.Equal(t, red, a.GetAt(vec.Vec3{X: 1}, nil))
}

func TestMergeCommutesPerPosition(t *testing.T) {
	// Для max результат не зависит от порядка слияния
	ids := NewIDSource()
	mk := func() (*Mesh, *Mesh) {
		a := NewMesh(ids)
		b := NewMesh(ids)
		a.SetAt(vec.Vec3{}, Color{255, 0, 0, 100}, nil)
		b.SetAt(vec.Vec3{}, Color{0, 0, 255, 200}, nil)
		return a, b
	}

	a1, b1 := mk()
	a1.Merge(b1, ModeMax)
	a2, b2 := mk()
	b2.Merge(a2, ModeMax)

	assert.Equal(t, a1.GetAt(vec.Vec3{}, nil), b2.GetAt(vec.Vec3{}, nil))
}
