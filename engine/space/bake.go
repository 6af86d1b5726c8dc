package space

// BakedScene is the flat array of world-space transforms produced by Bake, indexed by NodeRef.
// It is read-only once produced.
type BakedScene struct {
	spaces []Space
}

// Bake resolves every node's local transform into world space.
// Nodes are visited in creation order; a node parented to the root takes its local transform
// verbatim, any other node composes its parent's already baked transform with its local one.
//
// Returns:
//   - *BakedScene: the world transforms for every node
func (s *Nodes) Bake() *BakedScene {
	baked := &BakedScene{spaces: make([]Space, len(s.nodes))}
	for i, n := range s.nodes {
		if n.parent == Root {
			baked.spaces[i] = n.local
		} else {
			baked.spaces[i] = baked.spaces[n.parent].Combine(n.local)
		}
	}
	return baked
}

// Len returns the number of baked transforms.
func (b *BakedScene) Len() int {
	return len(b.spaces)
}

// Space returns the world transform of a node.
//
// Parameters:
//   - ref: the node reference
//
// Returns:
//   - Space: the world-space transform
func (b *BakedScene) Space(ref NodeRef) Space {
	return b.spaces[ref]
}

// At returns the flattened world transform of a node.
//
// Parameters:
//   - ref: the node reference
//
// Returns:
//   - RawSpace: the flattened world-space transform
func (b *BakedScene) At(ref NodeRef) RawSpace {
	return b.spaces[ref].Raw()
}
