package component

type Transform struct {
	X        float64
	Y        float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

// NewTransform places an unrotated, unscaled transform at x, y.
func NewTransform(x, y float64) Transform {
	return Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

// MeshTransform is the visual offset of an entity's mesh relative to its
// transform.
type MeshTransform struct {
	OffsetX  float64
	OffsetY  float64
	Rotation float64
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()
var MeshTransformComponent = NewComponent[MeshTransform]()
