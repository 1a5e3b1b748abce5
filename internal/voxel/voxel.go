// Package voxel реализует разреженное объёмное хранилище цветных
// вокселей: мир разбит на кубические блоки 16³, блоки лежат в
// ассоциативном индексе по выровненной позиции, а копирование меша
// выполняется за O(1) по схеме copy-on-write в два уровня (индекс
// блоков и данные каждого блока).
package voxel

const (
	// BlockSize — длина ребра блока в вокселях.
	// Позиции блоков всегда кратны этому значению.
	BlockSize = 16

	// blockVolume — количество вокселей в одном блоке
	blockVolume = BlockSize * BlockSize * BlockSize
)

// Color представляет цвет вокселя в формате RGBA.
// Нулевое значение — полностью прозрачный воксель.
type Color [4]uint8

// IsTransparent сообщает, полностью ли прозрачен воксель
func (c Color) IsTransparent() bool {
	return c[3] == 0
}
