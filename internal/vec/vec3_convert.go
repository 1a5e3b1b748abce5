package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RoundVec3 округляет вектор с плавающей точкой до ближайших целых координат
func RoundVec3(v mgl64.Vec3) Vec3 {
	return Vec3{
		X: int(math.Round(v.X())),
		Y: int(math.Round(v.Y())),
		Z: int(math.Round(v.Z())),
	}
}

// CeilVec3 округляет вектор с плавающей точкой вверх
func CeilVec3(v mgl64.Vec3) Vec3 {
	return Vec3{
		X: int(math.Ceil(v.X())),
		Y: int(math.Ceil(v.Y())),
		Z: int(math.Ceil(v.Z())),
	}
}

// FloorVec3 округляет вектор с плавающей точкой вниз
func FloorVec3(v mgl64.Vec3) Vec3 {
	return Vec3{
		X: int(math.Floor(v.X())),
		Y: int(math.Floor(v.Y())),
		Z: int(math.Floor(v.Z())),
	}
}
