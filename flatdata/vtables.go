package flatdata

import (
	"github.com/google/btree"
)

// vtableEntry maps the layout key of a written vtable to its position (from the end).
type vtableEntry struct {
	key    string
	offset UOffset
}

// vtableIndex remembers every vtable a Builder has written, so tables with the same layout share
// one copy. Keys are the vtable size followed by the slot entries. The inline object size is left
// out: it counts the alignment padding in front of the first field, which differs between tables
// of the same shape written at different offsets.
type vtableIndex struct {
	tree *btree.BTreeG[vtableEntry]
}

func newVtableIndex() *vtableIndex {
	return &vtableIndex{
		tree: btree.NewG[vtableEntry](2, func(a, b vtableEntry) bool {
			return a.key < b.key
		}),
	}
}

// Get returns the position of a previously written vtable equal to vt.
func (x *vtableIndex) Get(vt []byte) (UOffset, bool) {
	e, ok := x.tree.Get(vtableEntry{key: layoutKey(vt)})
	return e.offset, ok
}

// Put records a freshly written vtable.
func (x *vtableIndex) Put(vt []byte, offset UOffset) {
	x.tree.ReplaceOrInsert(vtableEntry{key: layoutKey(vt), offset: offset})
}

func layoutKey(vt []byte) string {
	return string(vt[:SizeVOffset]) + string(vt[VtableMetadataFields*SizeVOffset:])
}

// Len returns the number of distinct vtables written.
func (x *vtableIndex) Len() int {
	return x.tree.Len()
}

// Clear forgets all vtables.
func (x *vtableIndex) Clear() {
	x.tree.Clear(false)
}
