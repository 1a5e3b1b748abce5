package voxel

import "github.com/annel0/voxel-engine/internal/vec"

// faceNormals — нормали шести граней вокселя
var faceNormals = [6]vec.Vec3{
	{X: 0, Y: 0, Z: -1},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
}

// SelectFunc — предикат роста выделения. Для кандидата передаются его
// воксель в исходном меше, воксели шести соседей по граням и альфы
// выделения этих соседей. Ненулевой результат помечает кандидата
// выделенным с этой альфой.
type SelectFunc func(value Color, neighbors [6]Color, mask [6]uint8) uint8

// Select выращивает выделение из затравочного вокселя заливкой по
// шести связности. Меш selection очищается и используется как выход;
// затравка помечается полностью выделенной. Проходы повторяются до
// неподвижной точки: прохода без единого изменения.
//
// Алгоритм намеренно прост и переоценивает границу на каждом проходе;
// для интерактивных масштабов редактирования этого достаточно.
func (m *Mesh) Select(start vec.Vec3, cond SelectFunc, selection *Mesh) {
	selection.Clear()

	macc := m.Accessor()
	sacc := selection.Accessor()
	selection.SetAt(start, Color{255, 255, 255, 255}, &sacc)

	keep := true
	for keep {
		keep = false
		it := selection.VoxelIterator()
		for {
			pos, _, ok := it.Next()
			if !ok {
				break
			}
			for i := 0; i < 6; i++ {
				p := pos.Add(faceNormals[i])
				if selection.AlphaAt(p, &sacc) != 0 {
					continue // уже выделен
				}
				v := m.GetAt(p, &macc)
				var neighbors [6]Color
				var mask [6]uint8
				for j := 0; j < 6; j++ {
					p2 := p.Add(faceNormals[j])
					neighbors[j] = m.GetAt(p2, &macc)
					mask[j] = selection.AlphaAt(p2, &sacc)
				}
				if a := cond(v, neighbors, mask); a != 0 {
					selection.SetAt(p, Color{255, 255, 255, a}, &sacc)
					keep = true
				}
			}
		}
	}
}
