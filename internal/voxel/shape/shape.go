// Package shape описывает формы конструктивных операций ("кистей").
// Форма оценивается в локальных координатах бокса операции: бокс
// отображает единичный куб [-1,1]³ в мир, поэтому функция формы
// получает точку q в этих координатах и половинные размеры бокса
// в мировых единицах.
package shape

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

// Shape представляет форму кисти. Сравнение выполняется по указателю,
// поэтому стандартные формы объявлены как package-level переменные.
type Shape struct {
	Name string

	// Density возвращает коэффициент покрытия вокселя в диапазоне [0,1]:
	// 1 — точка глубоко внутри формы, 0 — снаружи. При ненулевой
	// smoothness край формы размывается на эту величину (в мировых
	// единицах).
	Density func(q, size mgl64.Vec3, smoothness float64) float64
}

// falloff переводит знаковое расстояние до края формы (в мировых
// единицах, положительное внутри) в коэффициент [0,1]
func falloff(d, smoothness float64) float64 {
	if smoothness <= 0 {
		if d >= 0 {
			return 1
		}
		return 0
	}
	return mgl64.Clamp(d/smoothness+0.5, 0, 1)
}

func minSize(size mgl64.Vec3) float64 {
	return math.Min(size.X(), math.Min(size.Y(), size.Z()))
}

// Cube — заполненный бокс операции целиком
var Cube = &Shape{
	Name: "cube",
	Density: func(q, size mgl64.Vec3, smoothness float64) float64 {
		d := math.Inf(1)
		for i := 0; i < 3; i++ {
			d = math.Min(d, (1-math.Abs(q[i]))*size[i])
		}
		return falloff(d, smoothness)
	},
}

// Sphere — эллипсоид, вписанный в бокс операции
var Sphere = &Shape{
	Name: "sphere",
	Density: func(q, size mgl64.Vec3, smoothness float64) float64 {
		d := (1 - q.Len()) * minSize(size)
		return falloff(d, smoothness)
	},
}

// Cylinder — цилиндр вдоль оси Z бокса операции
var Cylinder = &Shape{
	Name: "cylinder",
	Density: func(q, size mgl64.Vec3, smoothness float64) float64 {
		r := math.Hypot(q.X(), q.Y())
		d := (1 - r) * math.Min(size.X(), size.Y())
		d = math.Min(d, (1-math.Abs(q.Z()))*size.Z())
		return falloff(d, smoothness)
	},
}

// NewNoise создаёт "шумовую кисть": сферу, радиус которой модулируется
// шумом Перлина. Параметры генератора те же, что в internal/util.
func NewNoise(seed int64, amplitude float64) *Shape {
	p := perlin.NewPerlin(2.0, 2.0, 3, seed)
	return &Shape{
		Name: "noise",
		Density: func(q, size mgl64.Vec3, smoothness float64) float64 {
			n := p.Noise3D(q.X()*2, q.Y()*2, q.Z()*2) // [-1, 1]
			d := (1 - q.Len() + amplitude*n) * minSize(size)
			return falloff(d, smoothness)
		},
	}
}
