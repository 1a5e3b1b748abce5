package voxel

import "go.uber.org/atomic"

// blockData — полезная нагрузка блока: куб 16³ RGBA-вокселей.
// Данные разделяются между блоками по счётчику ссылок; id меняется при
// каждом изменении содержимого, что позволяет потребителям (например,
// кэширующему рендереру) обнаруживать изменения без сравнения данных.
type blockData struct {
	ref    atomic.Int32
	id     uint64
	voxels [blockVolume]Color
}

// newBlockData создаёт пустую (прозрачную) полезную нагрузку
func newBlockData(ids *IDSource) *blockData {
	d := &blockData{id: ids.Next()}
	d.ref.Store(1)
	return d
}

// voxelIndex возвращает смещение вокселя в массиве по локальным
// координатам: x меняется быстрее всего
func voxelIndex(x, y, z int) int {
	return x + y*BlockSize + z*BlockSize*BlockSize
}

// clamp255 ограничивает значение диапазоном [0, 255]
func clamp255(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// combine смешивает воксель источника s с вокселем назначения d.
// Альфа источника уже умножена на коэффициент покрытия формы.
func combine(s, d Color, mode Mode) Color {
	sa := int(s[3])
	da := int(d[3])
	switch mode {
	case ModeOver:
		outA := sa + da*(255-sa)/255
		if outA == 0 {
			return Color{}
		}
		var out Color
		for i := 0; i < 3; i++ {
			out[i] = uint8((int(s[i])*sa + int(d[i])*da*(255-sa)/255) / outA)
		}
		out[3] = uint8(outA)
		return out
	case ModeSub:
		d[3] = clamp255(da - sa)
		return d
	case ModeSubClamp:
		if da > 255-sa {
			d[3] = uint8(255 - sa)
		}
		return d
	case ModePaint:
		for i := 0; i < 3; i++ {
			d[i] = uint8((int(s[i])*sa + int(d[i])*(255-sa)) / 255)
		}
		return d
	case ModeMax:
		if sa > da {
			return s
		}
		return d
	case ModeIntersect:
		if da > sa {
			d[3] = uint8(sa)
		}
		return d
	case ModeMultAlpha:
		for i := 0; i < 4; i++ {
			d[i] = uint8(int(d[i]) * sa / 255)
		}
		return d
	default:
		return d
	}
}
