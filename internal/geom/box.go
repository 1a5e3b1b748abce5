// Package geom содержит геометрические примитивы редактора:
// выровненные по осям боксы (AABB), ориентированные боксы (Box)
// и плоскости. Вся математика с плавающей точкой построена на mgl64.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB представляет выровненный по осям бокс [Min, Max).
// Нулевой бокс (NullAABB) имеет Min > Max и поглощается операцией Merge.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NullAABB возвращает пустой бокс-сентинел.
// Merge с любым боксом возвращает этот бокс без изменений.
func NullAABB() AABB {
	return AABB{
		Min: mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// IsNull сообщает, пуст ли бокс
func (a AABB) IsNull() bool {
	return a.Min.X() > a.Max.X() || a.Min.Y() > a.Max.Y() || a.Min.Z() > a.Max.Z()
}

// Merge возвращает наименьший бокс, содержащий оба бокса
func (a AABB) Merge(b AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{
			math.Min(a.Min.X(), b.Min.X()),
			math.Min(a.Min.Y(), b.Min.Y()),
			math.Min(a.Min.Z(), b.Min.Z()),
		},
		Max: mgl64.Vec3{
			math.Max(a.Max.X(), b.Max.X()),
			math.Max(a.Max.Y(), b.Max.Y()),
			math.Max(a.Max.Z(), b.Max.Z()),
		},
	}
}

// Intersection возвращает пересечение боксов или NullAABB, если его нет
func (a AABB) Intersection(b AABB) AABB {
	r := AABB{
		Min: mgl64.Vec3{
			math.Max(a.Min.X(), b.Min.X()),
			math.Max(a.Min.Y(), b.Min.Y()),
			math.Max(a.Min.Z(), b.Min.Z()),
		},
		Max: mgl64.Vec3{
			math.Min(a.Max.X(), b.Max.X()),
			math.Min(a.Max.Y(), b.Max.Y()),
			math.Min(a.Max.Z(), b.Max.Z()),
		},
	}
	if r.IsNull() {
		return NullAABB()
	}
	return r
}

// Intersects сообщает, пересекаются ли боксы (включая касание границ)
func (a AABB) Intersects(b AABB) bool {
	if a.IsNull() || b.IsNull() {
		return false
	}
	return a.Min.X() <= b.Max.X() && b.Min.X() <= a.Max.X() &&
		a.Min.Y() <= b.Max.Y() && b.Min.Y() <= a.Max.Y() &&
		a.Min.Z() <= b.Max.Z() && b.Min.Z() <= a.Max.Z()
}

// Grow расширяет бокс на w, h, d в обе стороны по соответствующим осям
func (a AABB) Grow(w, h, d float64) AABB {
	return AABB{
		Min: mgl64.Vec3{a.Min.X() - w, a.Min.Y() - h, a.Min.Z() - d},
		Max: mgl64.Vec3{a.Max.X() + w, a.Max.Y() + h, a.Max.Z() + d},
	}
}

// ContainsVec проверяет принадлежность точки боксу.
// Интервал полуоткрытый [Min, Max), что согласуется с индексацией вокселей.
func (a AABB) ContainsVec(p mgl64.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() < a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() < a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() < a.Max.Z()
}

// Center возвращает центр бокса
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size возвращает полные размеры бокса по осям
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// Box представляет ориентированный бокс. Матрица отображает единичный
// куб [-1,1]³ в мировые координаты: столбцы X, Y, Z — полуоси, столбец
// W — центр. Нулевое значение (нулевая матрица) — пустой бокс.
type Box struct {
	Mat mgl64.Mat4
}

// BoxFromAABB строит выровненный по осям ориентированный бокс
func BoxFromAABB(a AABB) Box {
	c := a.Center()
	h := a.Size().Mul(0.5)
	m := mgl64.Translate3D(c.X(), c.Y(), c.Z()).Mul4(mgl64.Scale3D(h.X(), h.Y(), h.Z()))
	return Box{Mat: m}
}

// IsNull сообщает, пуст ли бокс. У валидной матрицы бокса последний
// элемент всегда 1, у нулевого значения — 0.
func (b Box) IsNull() bool {
	return b.Mat[15] == 0
}

// BBox возвращает AABB, описанный вокруг восьми углов бокса
func (b Box) BBox() AABB {
	if b.IsNull() {
		return NullAABB()
	}
	r := NullAABB()
	for _, dx := range []float64{-1, 1} {
		for _, dy := range []float64{-1, 1} {
			for _, dz := range []float64{-1, 1} {
				p := b.Mat.Mul4x1(mgl64.Vec4{dx, dy, dz, 1}).Vec3()
				r = r.Merge(AABB{Min: p, Max: p})
			}
		}
	}
	return r
}

// Grow удлиняет каждую полуось бокса на заданное число единиц мира.
// Вырожденные (нулевые) оси остаются без изменений.
func (b Box) Grow(w, h, d float64) Box {
	out := b
	amounts := [3]float64{w, h, d}
	for i := 0; i < 3; i++ {
		col := b.Mat.Col(i).Vec3()
		l := col.Len()
		if l == 0 {
			continue
		}
		scaled := col.Mul((l + amounts[i]) / l)
		out.Mat.SetCol(i, mgl64.Vec4{scaled.X(), scaled.Y(), scaled.Z(), 0})
	}
	return out
}

// TransformBy возвращает бокс, преобразованный матрицей m
func (b Box) TransformBy(m mgl64.Mat4) Box {
	return Box{Mat: m.Mul4(b.Mat)}
}

// ContainsAABB проверяет, что все восемь углов бокса a лежат внутри b
func (b Box) ContainsAABB(a AABB) bool {
	if b.IsNull() || a.IsNull() {
		return false
	}
	const eps = 1e-9
	inv := b.Mat.Inv()
	for _, x := range []float64{a.Min.X(), a.Max.X()} {
		for _, y := range []float64{a.Min.Y(), a.Max.Y()} {
			for _, z := range []float64{a.Min.Z(), a.Max.Z()} {
				q := inv.Mul4x1(mgl64.Vec4{x, y, z, 1})
				if math.Abs(q.X()) > 1+eps || math.Abs(q.Y()) > 1+eps || math.Abs(q.Z()) > 1+eps {
					return false
				}
			}
		}
	}
	return true
}

// MirrorMat4 возвращает матрицу отражения относительно оси axis (0=X, 1=Y, 2=Z)
func MirrorMat4(axis int) mgl64.Mat4 {
	s := [3]float64{1, 1, 1}
	s[axis] = -1
	return mgl64.Scale3D(s[0], s[1], s[2])
}
