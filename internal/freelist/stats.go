package freelist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// Stats is a human-readable snapshot of the registry's bookkeeping,
// suitable for logging at a diagnostic level. It is not meant to be
// parsed; see DebugJSON for a machine-readable equivalent.
func (r *Registry) Stats() string {
	var b strings.Builder

	fmt.Fprintf(&b, "total=%d free=%d occupied=%d useFreeBin=%t freeIDs=%d\n",
		r.totalSize, r.freeSize, r.OccupiedSize(), r.useFreeBin, len(r.freeIDs))

	for cur := r.head; cur != InvalidIndex; cur = r.blocks[cur].Next {
		d := r.blocks[cur]
		fmt.Fprintf(&b, "  [%d] memory=%#x size=%d free=%t primary=%t adjacent=%t next=%d\n",
			cur, d.Memory, d.Size, d.IsFree, d.IsPrimary, d.IsAdjacentToNext, d.Next)
	}

	return b.String()
}

// WriteDebugJSON populates writer with the same information as Stats, in
// a structured form that downstream tooling can consume.
func (r *Registry) WriteDebugJSON(writer *jwriter.Writer) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("TotalSize").Int(r.totalSize)
	obj.Name("FreeSize").Int(r.freeSize)
	obj.Name("OccupiedSize").Int(r.OccupiedSize())
	obj.Name("UseFreeBin").Bool(r.useFreeBin)
	obj.Name("RecycledSlots").Int(len(r.freeIDs))

	blocks := obj.Name("Blocks").Array()
	for cur := r.head; cur != InvalidIndex; cur = r.blocks[cur].Next {
		d := r.blocks[cur]

		entry := blocks.Object()
		entry.Name("Id").String(strconv.FormatUint(uint64(cur), 10))
		entry.Name("Memory").String(fmt.Sprintf("%#x", d.Memory))
		entry.Name("Size").Int(d.Size)
		entry.Name("Free").Bool(d.IsFree)
		entry.Name("Primary").Bool(d.IsPrimary)
		entry.Name("AdjacentToNext").Bool(d.IsAdjacentToNext)
		entry.Name("Next").String(strconv.FormatUint(uint64(d.Next), 10))
		entry.End()
	}
	blocks.End()
}

// DebugJSON renders WriteDebugJSON's output to a byte slice.
func (r *Registry) DebugJSON() ([]byte, error) {
	writer := jwriter.NewWriter()
	r.WriteDebugJSON(&writer)
	return writer.Bytes(), writer.Error()
}
