package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/voxel-engine/internal/vec"
)

// countSelected считает воксели выделения с ненулевой альфой
func countSelected(sel *Mesh) int {
	n := 0
	it := sel.VoxelIterator()
	for {
		_, c, ok := it.Next()
		if !ok {
			return n
		}
		if c[3] != 0 {
			n++
		}
	}
}

func TestSelectHollowInterior(t *testing.T) {
	// Сценарий: полый куб 6x6x6 со стенками в один воксель. Заливка из
	// внутренней точки выбирает ровно внутренность 4x4x4 и гасится на
	// непрозрачных стенках.
	m := newTestMesh(t)
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			for z := 0; z < 6; z++ {
				onShell := x == 0 || x == 5 || y == 0 || y == 5 || z == 0 || z == 5
				if onShell {
					m.SetAt(vec.Vec3{X: x, Y: y, Z: z}, red, nil)
				}
			}
		}
	}

	sel := NewMesh(m.IDs())
	m.Select(vec.Vec3{X: 2, Y: 2, Z: 2}, func(v Color, _ [6]Color, mask [6]uint8) uint8 {
		if !v.IsTransparent() {
			return 0 // стенка останавливает рост
		}
		for _, a := range mask {
			if a != 0 {
				return 255
			}
		}
		return 0
	}, sel)

	assert.Equal(t, 64, countSelected(sel))
	assert.Equal(t, uint8(255), sel.AlphaAt(vec.Vec3{X: 1, Y: 1, Z: 1}, nil))
	assert.Equal(t, uint8(255), sel.AlphaAt(vec.Vec3{X: 4, Y: 4, Z: 4}, nil))
	assert.Equal(t, uint8(0), sel.AlphaAt(vec.Vec3{X: 0, Y: 2, Z: 2}, nil), "Стенка не выделена")
	assert.Equal(t, uint8(0), sel.AlphaAt(vec.Vec3{X: 2, Y: 2, Z: 6}, nil), "Снаружи ничего не выделено")
}

func TestSelectSameColor(t *testing.T) {
	// Рост по связной области одного цвета
	m := newTestMesh(t)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				m.SetAt(vec.Vec3{X: x, Y: y, Z: z}, red, nil)
			}
		}
	}
	m.SetAt(vec.Vec3{X: 3, Y: 0, Z: 0}, red, nil) // несвязный воксель
	m.SetAt(vec.Vec3{X: 2, Y: 0, Z: 0}, blue, nil)

	sel := NewMesh(m.IDs())
	m.Select(vec.Vec3{}, func(v Color, _ [6]Color, _ [6]uint8) uint8 {
		if v == red {
			return 255
		}
		return 0
	}, sel)

	if got := countSelected(sel); got != 8 {
		t.Errorf("Выделено %d вокселей, ожидалось 8", got)
	}
	assert.Equal(t, uint8(0), sel.AlphaAt(vec.Vec3{X: 2, Y: 0, Z: 0}, nil), "Иной цвет не выделен")
	assert.Equal(t, uint8(0), sel.AlphaAt(vec.Vec3{X: 3, Y: 0, Z: 0}, nil), "Несвязная область не достигнута")
}

func TestSelectClearsPreviousSelection(t *testing.T) {
	m := newTestMesh(t)
	m.SetAt(vec.Vec3{}, red, nil)

	sel := NewMesh(m.IDs())
	sel.SetAt(vec.Vec3{X: 30, Y: 30, Z: 30}, Color{255, 255, 255, 255}, nil)

	m.Select(vec.Vec3{}, func(v Color, _ [6]Color, _ [6]uint8) uint8 {
		if v == red {
			return 255
		}
		return 0
	}, sel)

	assert.Equal(t, uint8(0), sel.AlphaAt(vec.Vec3{X: 30, Y: 30, Z: 30}, nil), "Старое выделение очищено")
	assert.Equal(t, 1, countSelected(sel))
}
