package marray

// At returns the value stored at multi-index idx.
//
// Complexity: O(rank).
func (p *Proxy[T]) At(idx ...int) (T, error) {
	var zero T
	flat, err := p.Flat(idx...)
	if err != nil {
		return zero, err
	}
	return p.values[flat], nil
}

// AtFlat returns the value stored at a precomputed flat index.
//
// Complexity: O(1).
func (p *Proxy[T]) AtFlat(flat int) (T, error) {
	var zero T
	if flat < 0 || flat >= p.count {
		return zero, ErrFlatOutOfRange
	}
	return p.values[flat], nil
}

// Set assigns v to the cell at multi-index idx.
//
// Complexity: O(rank).
func (p *Proxy[T]) Set(v T, idx ...int) error {
	flat, err := p.Flat(idx...)
	if err != nil {
		return err
	}
	p.values[flat] = v
	return nil
}

// SetFlat assigns v to a precomputed flat index.
//
// Complexity: O(1).
func (p *Proxy[T]) SetFlat(flat int, v T) error {
	if flat < 0 || flat >= p.count {
		return ErrFlatOutOfRange
	}
	p.values[flat] = v
	return nil
}

// Fill overwrites every cell with v.
//
// Complexity: O(count).
func (p *Proxy[T]) Fill(v T) {
	for i := range p.values {
		p.values[i] = v
	}
}

// Value returns the single cell of a singleton (rank-0) proxy.
// Returns ErrSingletonMisuse when Rank() != 0.
func (p *Proxy[T]) Value() (T, error) {
	var zero T
	if p.Rank() != 0 {
		return zero, ErrSingletonMisuse
	}
	return p.values[0], nil
}

// SetValue assigns the single cell of a singleton (rank-0) proxy.
// Returns ErrSingletonMisuse when Rank() != 0.
func (p *Proxy[T]) SetValue(v T) error {
	if p.Rank() != 0 {
		return ErrSingletonMisuse
	}
	p.values[0] = v
	return nil
}

// Name returns the display name assigned to the cell at idx.
func (p *Proxy[T]) Name(idx ...int) (string, error) {
	flat, err := p.Flat(idx...)
	if err != nil {
		return "", err
	}
	return p.names[flat], nil
}

// SetName assigns a display name to the cell at idx.
func (p *Proxy[T]) SetName(name string, idx ...int) error {
	flat, err := p.Flat(idx...)
	if err != nil {
		return err
	}
	p.names[flat] = name
	return nil
}

// All returns the underlying values slice. Callers must not mutate its
// length; element mutation is safe and visible through the proxy.
func (p *Proxy[T]) All() []T { return p.values }
