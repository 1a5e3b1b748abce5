package geom

import "github.com/go-gl/mathgl/mgl64"

// Plane представляет плоскость, заданную точкой и нормалью.
// Нормаль не обязана быть единичной: потребители нормализуют её сами.
type Plane struct {
	P mgl64.Vec3
	N mgl64.Vec3
}

// DominantAxis возвращает ось (0=X, 1=Y, 2=Z), вдоль которой нормаль
// имеет наибольшую абсолютную компоненту
func (p Plane) DominantAxis() int {
	n := p.N
	axis := 0
	best := absf(n.X())
	if absf(n.Y()) > best {
		axis, best = 1, absf(n.Y())
	}
	if absf(n.Z()) > best {
		axis = 2
	}
	return axis
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
