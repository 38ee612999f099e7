package mesh

// AssignMaterial sets f's material to ref, resolving ref against the
// configured MaterialResolver the first time this particular ref is
// seen and reusing the resulting local id on every later call with an
// equal ref.
//
// ref is compared with ==; it must be a comparable type (a string
// asset path, an integer id, ...). Local ids are handed out in table
// order, so they stay a compact [0, M) range for as long as the table
// only grows. RemoveBadFaces never touches the table itself;
// rebuild.Rebuild compacts it through CompactMaterials.
func (m *Mesh) AssignMaterial(f FaceHandle, ref any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.topo.IsValidFace(f) {
		return ErrStaleHandle
	}
	for i, e := range m.materials {
		if e.ref == ref {
			m.materialID.Set(f.Index(), int32(i))
			m.markDirty()
			return nil
		}
	}
	if m.resolver == nil {
		return ErrUnresolvedMaterial
	}
	surface, w, h, err := m.resolver.Resolve(ref)
	if err != nil {
		return ErrUnresolvedMaterial
	}
	id := int32(len(m.materials))
	m.materials = append(m.materials, materialEntry{ref: ref, texW: w, texH: h, surface: surface})
	m.materialID.Set(f.Index(), id)
	m.markDirty()
	return nil
}

// MaterialID returns f's current local material id, or -1 if
// unassigned.
func (m *Mesh) MaterialID(f FaceHandle) int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.materialID.Get(f.Index())
}

// MaterialSurface returns the external surface collaborator for local
// material id, as supplied by MaterialResolver.Resolve.
func (m *Mesh) MaterialSurface(id int32) (surface any, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id < 0 || int(id) >= len(m.materials) {
		return nil, false
	}
	return m.materials[id].surface, true
}

// compactMaterials drops any table entry no longer referenced by any
// live face, remapping remaining ids to a dense [0, M) range and
// rewriting every face's stored id to match. Called from
// rebuild.Rebuild, not on any serialize path.
func (m *Mesh) compactMaterials() {
	used := make([]bool, len(m.materials))
	m.topo.EachFace(func(f FaceHandle) {
		id := m.materialID.Get(f.Index())
		if id >= 0 && int(id) < len(used) {
			used[id] = true
		}
	})
	remap := make([]int32, len(m.materials))
	var kept []materialEntry
	for i, e := range m.materials {
		if !used[i] {
			remap[i] = -1
			continue
		}
		remap[i] = int32(len(kept))
		kept = append(kept, e)
	}
	m.topo.EachFace(func(f FaceHandle) {
		id := m.materialID.Get(f.Index())
		if id >= 0 && int(id) < len(remap) {
			m.materialID.Set(f.Index(), remap[id])
		}
	})
	m.materials = kept
}

// CompactMaterials is the exported form of compactMaterials, for
// rebuild.Rebuild.
func (m *Mesh) CompactMaterials() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compactMaterials()
}
