package hal

// BlendFactor selects a blending equation operand.
type BlendFactor uint8

const (
	BlendDisabled BlendFactor = iota
	BlendZero
	BlendOne
	BlendSrcColor
	BlendInvSrcColor
	BlendDstColor
	BlendInvDstColor
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendDstAlpha
	BlendInvDstAlpha
)

var blendFactorNames = [...]string{
	BlendDisabled:    "Disabled",
	BlendZero:        "Zero",
	BlendOne:         "One",
	BlendSrcColor:    "SrcColor",
	BlendInvSrcColor: "InvSrcColor",
	BlendDstColor:    "DstColor",
	BlendInvDstColor: "InvDstColor",
	BlendSrcAlpha:    "SrcAlpha",
	BlendInvSrcAlpha: "InvSrcAlpha",
	BlendDstAlpha:    "DstAlpha",
	BlendInvDstAlpha: "InvDstAlpha",
}

func (b BlendFactor) String() string {
	if int(b) < len(blendFactorNames) {
		return blendFactorNames[b]
	}
	return "Unknown"
}

// Compare is a depth/alpha test function.
type Compare uint8

const (
	CompareDisabled Compare = iota
	Always
	Never
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

var compareNames = [...]string{
	CompareDisabled: "Disabled",
	Always:          "Always",
	Never:           "Never",
	Equal:           "Equal",
	NotEqual:        "NotEqual",
	Less:            "Less",
	LessEqual:       "LessEqual",
	Greater:         "Greater",
	GreaterEqual:    "GreaterEqual",
}

func (c Compare) String() string {
	if int(c) < len(compareNames) {
		return compareNames[c]
	}
	return "Unknown"
}

// PrimitiveType is the topology of a draw call.
type PrimitiveType uint8

const (
	PrimTriangles PrimitiveType = iota
	PrimLines
	PrimPoints
)

func (p PrimitiveType) String() string {
	switch p {
	case PrimTriangles:
		return "Triangles"
	case PrimLines:
		return "Lines"
	case PrimPoints:
		return "Points"
	}
	return "Unknown"
}

// TriangleFace selects which faces are culled.
type TriangleFace uint8

const (
	FaceNone TriangleFace = iota
	FaceBack
	FaceFront
	FaceBoth
)

// PolygonMode selects filled or wireframe rasterization.
type PolygonMode uint8

const (
	PolygonFill PolygonMode = iota
	PolygonWire
)

// ClearMask selects which buffers Clear touches.
type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil

	ClearAll = ClearColor | ClearDepth | ClearStencil
)

// VertexLayout describes the interleaved float attributes of a vertex.
type VertexLayout uint8

const (
	// LayoutMesh is position(3) normal(3) uv0(2) uv1(2).
	LayoutMesh VertexLayout = iota
	// LayoutColored is position(3) rgba(4), used by the 2D renderer.
	LayoutColored
	// LayoutTextured is position(3) rgba(4) uv(2), used by sprites and particles.
	LayoutTextured
)

// Stride returns the number of floats per vertex.
func (l VertexLayout) Stride() int {
	switch l {
	case LayoutMesh:
		return 10
	case LayoutColored:
		return 7
	case LayoutTextured:
		return 9
	}
	return 0
}
