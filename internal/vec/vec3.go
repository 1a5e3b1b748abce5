package vec

import "github.com/go-gl/mathgl/mgl64"

// Vec3 представляет трехмерные целочисленные координаты вокселя
// или блока в мире.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mod возвращает положительный остаток от деления каждой координаты на n.
// В отличие от оператора %, результат неотрицателен и для отрицательных
// координат, поэтому привязка к сетке блоков работает во всех октантах.
func (v Vec3) Mod(n int) Vec3 {
	return Vec3{X: mod(v.X, n), Y: mod(v.Y, n), Z: mod(v.Z, n)}
}

// AlignDown округляет каждую координату вниз до ближайшего кратного n.
// Используется для вычисления позиции блока, содержащего воксель.
func (v Vec3) AlignDown(n int) Vec3 {
	return Vec3{X: v.X - mod(v.X, n), Y: v.Y - mod(v.Y, n), Z: v.Z - mod(v.Z, n)}
}

// IsAligned сообщает, кратны ли все координаты n
func (v Vec3) IsAligned(n int) bool {
	return v.X%n == 0 && v.Y%n == 0 && v.Z%n == 0
}

// ToFloat преобразует в вектор с плавающей точкой
func (v Vec3) ToFloat() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// mod — модуль с неотрицательным результатом
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
