package component

import "github.com/jakecoffman/cp"

// Body links an entity to its Chipmunk body. The physics system copies the
// body position into the entity's Transform every step.
type Body struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
	Mass   float64
}

var BodyComponent = NewComponent[Body]()
