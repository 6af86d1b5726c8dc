package space

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeRef is an index into a Nodes store. The zero value refers to the root.
type NodeRef uint32

// Root is the implicit root node. It is its own parent and always holds the identity transform.
const Root NodeRef = 0

// Node is a single entry of the transform hierarchy: a parent reference and a parent-relative transform.
type Node struct {
	parent NodeRef
	local  Space
}

// Parent returns the parent node reference.
func (n *Node) Parent() NodeRef {
	return n.parent
}

// Local returns the parent-relative transform.
func (n *Node) Local() Space {
	return n.local
}

// SetLocal replaces the parent-relative transform.
func (n *Node) SetLocal(local Space) {
	n.local = local
}

// Position returns the parent-relative position.
func (n *Node) Position() mgl32.Vec3 {
	return n.local.Position
}

// SetPosition replaces the parent-relative position.
func (n *Node) SetPosition(position mgl32.Vec3) {
	n.local.Position = position
}

// PreMove translates the node in its parent's frame before the local transform is applied,
// composing the offset on the parent side.
//
// Parameters:
//   - offset: the translation to apply
func (n *Node) PreMove(offset mgl32.Vec3) {
	n.local = FromPosition(offset).Combine(n.local)
}

// PostMove adds offset directly to the local position.
//
// Parameters:
//   - offset: the translation to apply
func (n *Node) PostMove(offset mgl32.Vec3) {
	n.local.Position = n.local.Position.Add(offset)
}

// Rotation returns the local orientation as an axis and an angle in degrees.
func (n *Node) Rotation() (mgl32.Vec3, float32) {
	return n.local.AxisAngle()
}

// SetRotation replaces the local orientation with an axis-angle rotation.
//
// Parameters:
//   - axis: the rotation axis
//   - angleDeg: the angle in degrees
func (n *Node) SetRotation(axis mgl32.Vec3, angleDeg float32) {
	n.local.Orientation = AxisAngle(axis, angleDeg)
}

// PreRotate rotates the node around an axis expressed in its own local frame.
//
// Parameters:
//   - axis: the rotation axis in local space
//   - angleDeg: the angle in degrees
func (n *Node) PreRotate(axis mgl32.Vec3, angleDeg float32) {
	n.local.Orientation = n.local.Orientation.Mul(AxisAngle(axis, angleDeg))
}

// PostRotate rotates the whole local transform, position included, around an axis
// expressed in the parent frame.
//
// Parameters:
//   - axis: the rotation axis in parent space
//   - angleDeg: the angle in degrees
func (n *Node) PostRotate(axis mgl32.Vec3, angleDeg float32) {
	n.local = FromAxisAngle(axis, angleDeg).Combine(n.local)
}

// Scale returns the local uniform scale.
func (n *Node) Scale() float32 {
	return n.local.Scale
}

// SetScale replaces the local uniform scale.
func (n *Node) SetScale(scale float32) {
	n.local.Scale = scale
}

// Nodes is an append-only store of transform nodes. Entry 0 is the root.
// Parents are always created before their children, so creation order is a valid topological order.
type Nodes struct {
	nodes []Node
}

// NewNodes creates a store containing only the root node.
//
// Returns:
//   - *Nodes: the new store
func NewNodes() *Nodes {
	return &Nodes{
		nodes: []Node{{parent: Root, local: Identity()}},
	}
}

// Add appends a node under parent.
// Panics if parent does not exist yet.
//
// Parameters:
//   - parent: the parent node, which must already exist
//   - local: the parent-relative transform
//
// Returns:
//   - NodeRef: the reference of the new node
func (s *Nodes) Add(parent NodeRef, local Space) NodeRef {
	if int(parent) >= len(s.nodes) {
		panic(fmt.Sprintf("space: parent node %d does not exist", parent))
	}
	s.nodes = append(s.nodes, Node{parent: parent, local: local})
	return NodeRef(len(s.nodes) - 1)
}

// Get returns a mutable pointer to a node. The pointer is invalidated by the next Add.
// Panics if ref is out of range.
//
// Parameters:
//   - ref: the node reference
//
// Returns:
//   - *Node: the node
func (s *Nodes) Get(ref NodeRef) *Node {
	if int(ref) >= len(s.nodes) {
		panic(fmt.Sprintf("space: node %d does not exist", ref))
	}
	return &s.nodes[ref]
}

// Len returns the number of nodes including the root.
func (s *Nodes) Len() int {
	return len(s.nodes)
}
