package mesh

// Smoothing returns h's current smoothing flag. An open half-edge
// (FaceOf(h).IsInvalid()) still carries a stream entry like any other
// live handle, but rebuild treats every open half-edge as a hard
// split regardless of this value.
func (m *Mesh) Smoothing(h HalfEdgeHandle) Smoothing {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.smoothing.Get(h.Index())
}

// SetSmoothing sets h's smoothing flag.
func (m *Mesh) SetSmoothing(h HalfEdgeHandle, s Smoothing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.smoothing.Set(h.Index(), s)
	m.markDirty()
}

// SmoothingThreshold returns the cosine of the maximum dihedral angle
// currently treated as smooth across a Default-smoothing edge.
func (m *Mesh) SmoothingThreshold() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.smoothThreshold
}
