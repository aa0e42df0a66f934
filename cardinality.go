package gochroma

// A Totalizer is an incremental at-most-k cardinality encoder over a set of
// input literals, built as a balanced binary tree whose internal nodes hold
// unary-counter output literals. The tree is built once; a bound is applied
// either permanently with [Totalizer.AssertAtMost] or for a single solve by
// assuming the negation of the [Totalizer.AtMostLit] literal, which is how
// moving from bound k to k+1 avoids rebuilding anything.
type Totalizer struct {
	b      Backend
	leaves int
	root   []Lit // root[i] is forced true when at least i+1 of the inputs are true
}

// NewTotalizer builds a totalizer over lits and returns it. It does not
// assert any bound; call [Totalizer.AssertAtMost] to do so.
func NewTotalizer(b Backend, lits []Lit) (*Totalizer, error) {
	t := &Totalizer{b: b, leaves: len(lits)}
	if len(lits) == 0 {
		return t, nil
	}
	root, err := t.build(lits)
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

// build recursively constructs the totalizer tree and returns the output
// literals of the node covering lits, output[i] meaning "at least i+1 of
// lits are true".
func (t *Totalizer) build(lits []Lit) ([]Lit, error) {
	if len(lits) == 1 {
		return lits, nil
	}
	mid := len(lits) / 2
	left, err := t.build(lits[:mid])
	if err != nil {
		return nil, err
	}
	right, err := t.build(lits[mid:])
	if err != nil {
		return nil, err
	}
	n := len(left) + len(right)
	first := t.b.NewVars(n)
	out := make([]Lit, n)
	for i := range out {
		out[i] = Lit(first + i)
	}
	// Merge constraints: at least i+1 true in left and at least j+1 true in
	// right force out[i+j+1]. Only this counting-up direction is encoded,
	// which is what an at-most bound needs; out[k] is not forced false when
	// fewer inputs are true, so the tree does not support at-least bounds.
	get := func(lits []Lit, i int) (Lit, bool) {
		if i < 0 {
			return 0, true // "at least 0" is trivially true; represented as no literal needed
		}
		if i >= len(lits) {
			return 0, false
		}
		return lits[i], true
	}
	assertImpl := func(a, c Lit) error {
		// a => c, i.e. (¬a ∨ c)
		return t.b.AddClause(a.Negate(), c)
	}
	for i := -1; i < len(left); i++ {
		for j := -1; j < len(right); j++ {
			k := i + j + 1
			if k < 0 || k >= n {
				continue
			}
			// If left has >= i+1 and right has >= j+1 then out has >= k+1.
			if i < 0 && j < 0 {
				continue
			}
			c := out[k]
			switch {
			case i < 0:
				rv, _ := get(right, j)
				if err := assertImpl(rv, c); err != nil {
					return nil, err
				}
			case j < 0:
				lv, _ := get(left, i)
				if err := assertImpl(lv, c); err != nil {
					return nil, err
				}
			default:
				lv, _ := get(left, i)
				rv, _ := get(right, j)
				if err := t.b.AddClause(lv.Negate(), rv.Negate(), c); err != nil {
					return nil, err
				}
			}
		}
	}
	// Monotonicity within this node: out[i] => out[i-1].
	for i := 1; i < n; i++ {
		if err := assertImpl(out[i], out[i-1]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AssertAtMost asserts Σlits <= k by adding ¬root[k] as a permanent unit
// clause; k at or past the number of inputs is vacuous and adds nothing.
// The clause cannot be retracted, so a later call with a larger k does not
// widen the bound (a smaller k tightens it). The k-search driver does not
// use it: it pins each bound for one solve through [Totalizer.AtMostLit]
// and [Backend.Assume].
func (t *Totalizer) AssertAtMost(k int) error {
	if k < 0 {
		return nil // No clause is added for k<0, an unsatisfiable bound callers should detect upstream.
	}
	if k >= len(t.root) {
		return nil // Vacuously true: the totalizer cannot count past len(root).
	}
	return t.b.AddClause(t.root[k].Negate())
}

// AtMostLit returns the literal "at least k+1 of the inputs are true" (i.e.
// root[k]), or false (literal 0) if k is out of range. Useful for building
// an activation literal that the driver can assume rather than assert, to
// extend a bound without permanently fixing it.
func (t *Totalizer) AtMostLit(k int) (lit Lit, ok bool) {
	if k < 0 || k >= len(t.root) {
		return 0, false
	}
	return t.root[k], true
}
