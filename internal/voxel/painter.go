package voxel

import (
	"github.com/annel0/voxel-engine/internal/geom"
	"github.com/annel0/voxel-engine/internal/voxel/shape"
)

// Mode определяет способ смешивания при конструктивных операциях
// и при слиянии мешей.
type Mode int

const (
	// ModeOver — наложение источника поверх содержимого (альфа-композиция)
	ModeOver Mode = iota
	// ModeSub — вычитание альфы источника
	ModeSub
	// ModeSubClamp — ограничение альфы значением 255-a источника
	ModeSubClamp
	// ModePaint — перекраска без изменения альфы
	ModePaint
	// ModeMax — замена вокселя, если альфа источника больше
	ModeMax
	// ModeIntersect — пересечение: альфа не выше альфы источника
	ModeIntersect
	// ModeMultAlpha — умножение всех каналов на альфу источника
	ModeMultAlpha
)

// String возвращает имя режима
func (m Mode) String() string {
	switch m {
	case ModeOver:
		return "over"
	case ModeSub:
		return "sub"
	case ModeSubClamp:
		return "sub_clamp"
	case ModePaint:
		return "paint"
	case ModeMax:
		return "max"
	case ModeIntersect:
		return "intersect"
	case ModeMultAlpha:
		return "mult_alpha"
	default:
		return "unknown"
	}
}

// grows сообщает, добавляет ли режим новые блоки (растущие режимы)
func (m Mode) grows() bool {
	return m == ModeOver || m == ModeMax
}

// Биты симметрии для Painter.Symmetry
const (
	SymmetryX uint8 = 1 << iota
	SymmetryY
	SymmetryZ
)

// Painter описывает конструктивную операцию: режим смешивания, форму,
// цвет, сглаживание края, необязательный клип-бокс и маску симметрии.
// Аффинное преобразование формы несёт бокс, передаваемый в Apply.
type Painter struct {
	Mode       Mode
	Shape      *shape.Shape
	Color      Color
	Smoothness float64
	Box        *geom.AABB // клип-бокс; nil — без ограничения
	Symmetry   uint8
}
