package boardwalk

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestComputeLocalTransformIdentity(t *testing.T) {
	n := NewSprite("s", nil, 10, 10)
	got := computeLocalTransform(n)
	assertMatrix(t, "identity", got, identityTransform)
}

func TestComputeLocalTransformTranslation(t *testing.T) {
	n := NewSprite("s", nil, 10, 10)
	n.X, n.Y = 100, 50
	got := computeLocalTransform(n)
	assertMatrix(t, "translate", got, [6]float64{1, 0, 0, 1, 100, 50})
}

func TestComputeLocalTransformScale(t *testing.T) {
	n := NewSprite("s", nil, 10, 10)
	n.ScaleX, n.ScaleY = 2, 3
	got := computeLocalTransform(n)
	assertMatrix(t, "scale", got, [6]float64{2, 0, 0, 3, 0, 0})
}

func TestComputeLocalTransformRotation(t *testing.T) {
	n := NewSprite("s", nil, 10, 10)
	n.Rotation = math.Pi / 2
	got := computeLocalTransform(n)
	// 90 degrees: (1,0) -> (0,1)
	x, y := transformPoint(got, 1, 0)
	assertFloat(t, "rot x", x, 0)
	assertFloat(t, "rot y", y, 1)
}

func TestComputeLocalTransformPivot(t *testing.T) {
	n := NewSprite("s", nil, 20, 20)
	n.PivotX, n.PivotY = 10, 10
	n.X, n.Y = 100, 100
	got := computeLocalTransform(n)
	// The pivot point lands exactly on (X, Y).
	x, y := transformPoint(got, 10, 10)
	assertFloat(t, "pivot x", x, 100)
	assertFloat(t, "pivot y", y, 100)
}

// A flipped sprite must keep its unflipped footprint: local x 0 maps to the
// right edge, local Width maps to X, and every interior point stays inside
// [X, X+Width]. Hit testing depends on this.
func TestComputeLocalTransformFlipX(t *testing.T) {
	n := NewSprite("s", nil, 40, 20)
	n.X = 100
	n.FlipX = true
	got := computeLocalTransform(n)

	x0, _ := transformPoint(got, 0, 0)
	xw, _ := transformPoint(got, 40, 0)
	assertFloat(t, "flip left edge", xw, 100)
	assertFloat(t, "flip right edge", x0, 140)

	xm, ym := transformPoint(got, 10, 5)
	assertFloat(t, "flip interior x", xm, 130)
	assertFloat(t, "flip interior y", ym, 5)
}

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	assertMatrix(t, "ident*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*ident", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffineRoundTrip(t *testing.T) {
	n := NewSprite("s", nil, 10, 10)
	n.X, n.Y = 33, -7
	n.ScaleX, n.ScaleY = 2, 0.5
	n.Rotation = 0.3
	m := computeLocalTransform(n)
	inv := invertAffine(m)

	wx, wy := transformPoint(m, 4, 9)
	lx, ly := transformPoint(inv, wx, wy)
	assertFloat(t, "roundtrip x", lx, 4)
	assertFloat(t, "roundtrip y", ly, 9)
}

func TestInvertAffineSingular(t *testing.T) {
	got := invertAffine([6]float64{0, 0, 0, 0, 5, 5})
	assertMatrix(t, "singular", got, identityTransform)
}

func TestUpdateWorldTransformPropagates(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewSprite("child", nil, 10, 10)
	root.AddChild(parent)
	parent.AddChild(child)

	parent.SetPosition(100, 0)
	parent.SetScale(2, 2)
	child.SetPosition(10, 5)

	updateWorldTransform(root, identityTransform, 1.0, false)

	wx, wy := child.LocalToWorld(0, 0)
	assertFloat(t, "child world x", wx, 120)
	assertFloat(t, "child world y", wy, 10)
}

func TestUpdateWorldTransformAlpha(t *testing.T) {
	root := NewContainer("root")
	child := NewSprite("child", nil, 10, 10)
	root.AddChild(child)
	root.SetAlpha(0.5)
	child.SetAlpha(0.5)

	updateWorldTransform(root, identityTransform, 1.0, false)

	assertFloat(t, "worldAlpha", child.worldAlpha, 0.25)
}

func TestUpdateWorldTransformDirtyOnly(t *testing.T) {
	root := NewContainer("root")
	child := NewSprite("child", nil, 10, 10)
	root.AddChild(child)
	updateWorldTransform(root, identityTransform, 1.0, false)

	// Mutate the field directly without marking dirty: the cached world
	// transform must not move.
	child.X = 999
	updateWorldTransform(root, identityTransform, 1.0, false)
	wx, _ := child.LocalToWorld(0, 0)
	assertFloat(t, "stale world x", wx, 0)

	child.MarkDirty()
	updateWorldTransform(root, identityTransform, 1.0, false)
	wx, _ = child.LocalToWorld(0, 0)
	assertFloat(t, "fresh world x", wx, 999)
}

func TestWorldToLocal(t *testing.T) {
	root := NewContainer("root")
	n := NewSprite("s", nil, 10, 10)
	root.AddChild(n)
	n.SetPosition(50, 60)
	n.SetScale(2, 2)
	updateWorldTransform(root, identityTransform, 1.0, false)

	lx, ly := n.WorldToLocal(70, 80)
	assertFloat(t, "local x", lx, 10)
	assertFloat(t, "local y", ly, 10)
}
