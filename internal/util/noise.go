package util

import (
	"github.com/aquilax/go-perlin"
)

var perlinNoise *perlin.Perlin
var perlinSeed int64

// InitPerlinNoise инициализирует генератор шума Перлина с указанным сидом
func InitPerlinNoise(seed int64) {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	perlinNoise = perlin.NewPerlin(alpha, beta, n, seed)
	perlinSeed = seed
}

// PerlinNoise3D возвращает значение шума Перлина для точки (от 0 до 1)
func PerlinNoise3D(x, y, z float64, seed int64) float64 {
	if perlinNoise == nil || perlinSeed != seed {
		InitPerlinNoise(seed)
	}

	// Значение шума лежит в диапазоне от -1 до 1
	noise := perlinNoise.Noise3D(x, y, z)

	return (noise + 1.0) / 2.0
}
