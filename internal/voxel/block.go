package voxel

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-engine/internal/geom"
	"github.com/annel0/voxel-engine/internal/vec"
)

// Block привязывает полезную нагрузку к выровненной позиции сетки.
// Позиция всегда кратна BlockSize по всем осям. Идентификатор блока
// выдаётся мешом при вставке и сохраняется при COW-клонировании.
type Block struct {
	pos  vec.Vec3
	id   int
	data *blockData
}

// FillFunc возвращает цвет вокселя для мировой позиции.
// Используется операциями заполнения (Fill, Move, Extrude).
type FillFunc func(pos vec.Vec3) Color

// newBlock создаёт пустой блок на выровненной позиции
func newBlock(pos vec.Vec3, ids *IDSource) *Block {
	return &Block{pos: pos, data: newBlockData(ids)}
}

// copy создаёт клон блока, разделяющий полезную нагрузку.
// Данные вокселей не копируются: расхождение откладывается до первой
// записи в конкретный блок (двухуровневый COW).
func (b *Block) copy() *Block {
	b.data.ref.Inc()
	return &Block{pos: b.pos, id: b.id, data: b.data}
}

// release отпускает ссылку блока на полезную нагрузку
func (b *Block) release() {
	b.data.ref.Dec()
}

// prepareWrite обеспечивает эксклюзивное владение полезной нагрузкой
// перед записью и помечает содержимое новым идентификатором
func (b *Block) prepareWrite(ids *IDSource) {
	if b.data.ref.Load() > 1 {
		b.data.ref.Dec()
		nd := &blockData{voxels: b.data.voxels}
		nd.ref.Store(1)
		b.data = nd
	}
	b.data.id = ids.Next()
}

// isEmpty сообщает, все ли воксели блока прозрачны.
// Вызов на nil-блоке допустим и возвращает true: отсутствующий блок
// эквивалентен полностью прозрачному.
func (b *Block) isEmpty() bool {
	if b == nil {
		return true
	}
	for i := range b.data.voxels {
		if b.data.voxels[i][3] != 0 {
			return false
		}
	}
	return true
}

// box возвращает ограничивающий бокс блока. При exact бокс стягивается
// до непрозрачных вокселей; для пустого блока возвращается NullAABB.
func (b *Block) box(exact bool) geom.AABB {
	base := b.pos.ToFloat()
	if !exact {
		return geom.AABB{
			Min: base,
			Max: base.Add(mgl64.Vec3{BlockSize, BlockSize, BlockSize}),
		}
	}
	lo := vec.Vec3{X: BlockSize, Y: BlockSize, Z: BlockSize}
	hi := vec.Vec3{X: -1, Y: -1, Z: -1}
	for z := 0; z < BlockSize; z++ {
		for y := 0; y < BlockSize; y++ {
			for x := 0; x < BlockSize; x++ {
				if b.data.voxels[voxelIndex(x, y, z)][3] == 0 {
					continue
				}
				if x < lo.X {
					lo.X = x
				}
				if y < lo.Y {
					lo.Y = y
				}
				if z < lo.Z {
					lo.Z = z
				}
				if x > hi.X {
					hi.X = x
				}
				if y > hi.Y {
					hi.Y = y
				}
				if z > hi.Z {
					hi.Z = z
				}
			}
		}
	}
	if hi.X < 0 {
		return geom.NullAABB()
	}
	return geom.AABB{
		Min: base.Add(lo.ToFloat()),
		Max: base.Add(hi.ToFloat()).Add(mgl64.Vec3{1, 1, 1}),
	}
}

// getAt возвращает воксель по мировой позиции внутри блока
func (b *Block) getAt(pos vec.Vec3) Color {
	l := pos.Sub(b.pos)
	return b.data.voxels[voxelIndex(l.X, l.Y, l.Z)]
}

// setAt записывает воксель по мировой позиции внутри блока
func (b *Block) setAt(pos vec.Vec3, c Color, ids *IDSource) {
	b.prepareWrite(ids)
	l := pos.Sub(b.pos)
	b.data.voxels[voxelIndex(l.X, l.Y, l.Z)] = c
}

// fill перезаписывает каждый воксель блока значением из fn
func (b *Block) fill(fn FillFunc, ids *IDSource) {
	b.prepareWrite(ids)
	for z := 0; z < BlockSize; z++ {
		for y := 0; y < BlockSize; y++ {
			for x := 0; x < BlockSize; x++ {
				p := b.pos.Add(vec.Vec3{X: x, Y: y, Z: z})
				b.data.voxels[voxelIndex(x, y, z)] = fn(p)
			}
		}
	}
}

// shiftAlpha сдвигает альфу каждого вокселя на v с насыщением
func (b *Block) shiftAlpha(v int, ids *IDSource) {
	b.prepareWrite(ids)
	for i := range b.data.voxels {
		a := b.data.voxels[i][3]
		if a == 0 && v <= 0 {
			continue
		}
		b.data.voxels[i][3] = clamp255(int(a) + v)
	}
}

// merge смешивает воксели другого блока в этот. Отсутствующий (nil)
// источник трактуется как полностью прозрачный блок.
func (b *Block) merge(other *Block, mode Mode, ids *IDSource) {
	if other == nil && mode != ModeIntersect && mode != ModeMultAlpha {
		// Прозрачный источник в этих режимах ничего не меняет
		return
	}
	b.prepareWrite(ids)
	for i := range b.data.voxels {
		var s Color
		if other != nil {
			s = other.data.voxels[i]
		}
		b.data.voxels[i] = combine(s, b.data.voxels[i], mode)
	}
}

// applyPainter применяет конструктивную операцию к блоку. Бокс несёт
// аффинное преобразование формы: воксель попадает под кисть, если его
// центр отображается внутрь единичного куба формы.
func (b *Block) applyPainter(p *Painter, box geom.Box, ids *IDSource) {
	inv := box.Mat.Inv()
	size := mgl64.Vec3{
		box.Mat.Col(0).Vec3().Len(),
		box.Mat.Col(1).Vec3().Len(),
		box.Mat.Col(2).Vec3().Len(),
	}
	keepsAbsent := p.Mode != ModeIntersect && p.Mode != ModeMultAlpha
	b.prepareWrite(ids)
	for z := 0; z < BlockSize; z++ {
		for y := 0; y < BlockSize; y++ {
			for x := 0; x < BlockSize; x++ {
				c := mgl64.Vec4{
					float64(b.pos.X+x) + 0.5,
					float64(b.pos.Y+y) + 0.5,
					float64(b.pos.Z+z) + 0.5,
					1,
				}
				if p.Box != nil && !p.Box.ContainsVec(c.Vec3()) {
					continue // клип-бокс отсекает воксель
				}
				q := inv.Mul4x1(c).Vec3()
				k := p.Shape.Density(q, size, p.Smoothness)
				sa := uint8(k*float64(p.Color[3]) + 0.5)
				if sa == 0 && keepsAbsent {
					continue
				}
				s := Color{p.Color[0], p.Color[1], p.Color[2], sa}
				i := voxelIndex(x, y, z)
				b.data.voxels[i] = combine(s, b.data.voxels[i], p.Mode)
			}
		}
	}
}
