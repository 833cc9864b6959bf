package x86_64

// Indirect is a memory operand: [base + index*scale + displacement], with an
// optional segment override. Base, Index, and Segment are nil when absent.
// DisplacementWidth records how many bits the displacement was actually
// encoded in (0, 8, or 32); two Indirect values with the same numeric
// Displacement but a different DisplacementWidth are not equal, since they
// came from (or would produce) different bytes.
type Indirect struct {
	Base              *Register
	Index             *Register
	Scale             byte // 1, 2, 4, or 8; meaningful only when Index != nil
	Displacement      int32
	DisplacementWidth int // 0, 8, or 32
	Segment           *Register
	PointerSize       int // bits; required when Base == nil && Index == nil
}

// IndirectBuilder assembles an Indirect operand and checks its invariants in
// one place, following the same chainable-method shape as
// debugcontext.Entry's WithSnippet/WithHint. Every invariant violation
// collapses to a single ConstructionError carrying a ConstructionReason.
type IndirectBuilder struct {
	base              *Register
	index             *Register
	scale             byte
	displacement      int32
	displacementWidth int
	segment           *Register
	pointerSize       int
}

// NewIndirectBuilder returns an empty builder.
func NewIndirectBuilder() *IndirectBuilder {
	return &IndirectBuilder{}
}

// WithBase sets the base register.
func (b *IndirectBuilder) WithBase(reg Register) *IndirectBuilder {
	b.base = &reg
	return b
}

// WithIndex sets the index register and its scale factor.
func (b *IndirectBuilder) WithIndex(reg Register, scale byte) *IndirectBuilder {
	b.index = &reg
	b.scale = scale
	return b
}

// WithDisplacement sets the displacement value and the bit width it was (or
// will be) encoded in.
func (b *IndirectBuilder) WithDisplacement(value int32, width int) *IndirectBuilder {
	b.displacement = value
	b.displacementWidth = width
	return b
}

// WithSegment sets a segment override.
func (b *IndirectBuilder) WithSegment(reg Register) *IndirectBuilder {
	b.segment = &reg
	return b
}

// WithPointerSize sets the explicit operand size in bits, required when
// neither a base nor an index register is present.
func (b *IndirectBuilder) WithPointerSize(bits int) *IndirectBuilder {
	b.pointerSize = bits
	return b
}

// Build validates the accumulated fields and returns the Indirect operand,
// or a *ConstructionError naming the single invariant that was violated.
func (b *IndirectBuilder) Build() (Indirect, error) {
	if b.base != nil && b.base.Type != Register32 && b.base.Type != Register64 {
		return Indirect{}, &ConstructionError{Reason: ReasonBaseWrongKind}
	}

	if b.index != nil {
		if b.index.Type != Register32 && b.index.Type != Register64 {
			return Indirect{}, &ConstructionError{Reason: ReasonBaseWrongKind}
		}
		if b.base != nil && b.base.Type != b.index.Type {
			return Indirect{}, &ConstructionError{Reason: ReasonWidthMismatch}
		}
		if b.index.Name == "rsp" || b.index.Name == "esp" {
			return Indirect{}, &ConstructionError{Reason: ReasonIndexIsStackPointer}
		}
		switch b.scale {
		case 0:
			b.scale = 1
		case 1, 2, 4, 8:
		default:
			return Indirect{}, &ConstructionError{Reason: ReasonInvalidScale}
		}
	} else if b.scale != 0 {
		return Indirect{}, &ConstructionError{Reason: ReasonScaleWithoutIndex}
	}

	if b.base == nil && b.index == nil && b.pointerSize == 0 {
		return Indirect{}, &ConstructionError{Reason: ReasonMissingPointerSize}
	}

	return Indirect{
		Base:              b.base,
		Index:             b.index,
		Scale:             b.scale,
		Displacement:      b.displacement,
		DisplacementWidth: b.displacementWidth,
		Segment:           b.segment,
		PointerSize:       b.pointerSize,
	}, nil
}
