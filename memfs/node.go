package memfs

import "github.com/swiftwasm/uwasi/abi"

// kind distinguishes the three node shapes the tree can hold. There is no
// symlink kind; spec.md's filesystem scope stops at directories, regular
// files, and character devices.
type kind int

const (
	kindDirectory kind = iota
	kindRegularFile
	kindCharDevice
)

// charDeviceBinding selects what a character-device node reads and writes
// to: either it silently discards/produces nothing (/dev/null) or it
// forwards to a stdio proxy passed to New, via the same
// abi.Readable/abi.Writable capability sets spec.md §4.6 describes.
type charDeviceBinding struct {
	devnull bool
	reader  *abi.CarryOverReader
	writer  abi.Writable
}

// node is one entry in the file-system tree. Exactly one of children,
// content, or device is meaningful, selected by kind.
type node struct {
	kind kind

	// directory
	children map[string]*node
	order    []string // insertion order, for deterministic fd_readdir-style walks

	// regular file
	content []byte

	// character device
	device charDeviceBinding
}

func newDirNode() *node {
	return &node{kind: kindDirectory, children: map[string]*node{}}
}

func newFileNode() *node {
	return &node{kind: kindRegularFile}
}

func newDevNullNode() *node {
	return &node{kind: kindCharDevice, device: charDeviceBinding{devnull: true}}
}

func newStdioNode(r abi.Readable, w abi.Writable) *node {
	var cr *abi.CarryOverReader
	if r != nil {
		cr = abi.NewCarryOverReader(r)
	}
	return &node{kind: kindCharDevice, device: charDeviceBinding{reader: cr, writer: w}}
}

// fileType returns the node's abi.FileType for fdstat/filestat writers.
func (n *node) fileType() abi.FileType {
	switch n.kind {
	case kindDirectory:
		return abi.FileTypeDirectory
	case kindCharDevice:
		return abi.FileTypeCharacterDevice
	default:
		return abi.FileTypeRegularFile
	}
}

// child looks up name directly under n; n must be a directory.
func (n *node) child(name string) (*node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// ensureChildDir returns the directory child named name under n, creating
// it (and recording it in insertion order) if absent. It fails if a node of
// a different kind already occupies that name.
func (n *node) ensureChildDir(name string) (*node, bool) {
	if c, ok := n.children[name]; ok {
		return c, c.kind == kindDirectory
	}
	c := newDirNode()
	n.children[name] = c
	n.order = append(n.order, name)
	return c, true
}

// setChild inserts or replaces the child named name under n.
func (n *node) setChild(name string, c *node) {
	if _, exists := n.children[name]; !exists {
		n.order = append(n.order, name)
	}
	n.children[name] = c
}

// removeChild deletes the child named name under n, if present.
func (n *node) removeChild(name string) {
	if _, ok := n.children[name]; !ok {
		return
	}
	delete(n.children, name)
	for i, nm := range n.order {
		if nm == name {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// resolve walks segs from n, which must be a directory, returning the final
// node and whether every segment was found. It does not create anything.
func (n *node) resolve(segs []string) (*node, bool) {
	cur := n
	for _, s := range segs {
		if cur.kind != kindDirectory {
			return nil, false
		}
		c, ok := cur.children[s]
		if !ok {
			return nil, false
		}
		cur = c
	}
	return cur, true
}

// resolveParent walks all but the last segment of segs, returning the
// parent directory node and the final segment name. It fails if any
// intermediate component is missing or not a directory.
func (n *node) resolveParent(segs []string) (*node, string, bool) {
	if len(segs) == 0 {
		return nil, "", false
	}
	parent, ok := n.resolve(segs[:len(segs)-1])
	if !ok || parent.kind != kindDirectory {
		return nil, "", false
	}
	return parent, segs[len(segs)-1], true
}
