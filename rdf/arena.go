package rdf

import "encoding/binary"

// Node records are built directly into a single contiguous arena used as a
// stack: parsing pushes bytes to grow the newest record, and rolls the arena
// back to a mark when a statement (or a failed grammar alternative) is done.
//
// A record is an 8-byte header followed by its UTF-8 content, zero-padded to
// an 8-byte boundary:
//
//	[0:4] content length (little-endian, excluding padding)
//	[4]   flags
//	[5]   node type
//	[6:8] zero
//
// Padding bytes are always zero, so two records with equal logical content
// are byte-identical and can be compared or hashed as flat byte ranges.
const (
	nodeAlign  = 8
	headerSize = 8
)

// nodeID is a handle to a record: the byte offset of its header in the
// arena. The zero value means "no node"; offset 0 is never allocated.
type nodeID uint32

const nodeNone nodeID = 0

// arenaMark is an opaque checkpoint consumed by popTo.
type arenaMark int

// nodeArena is a fixed-capacity buffer of node records. Capacity is chosen
// at reader construction; exhausting it is reported as overflow rather than
// grown through, so callers can retry with a larger arena.
type nodeArena struct {
	buf  []byte
	cap  int // capacity visible to pushes; buf has padding slack beyond it
	size int
}

func newNodeArena(capacity int) *nodeArena {
	// Slack beyond cap guarantees zero-padding a full arena never fails.
	return &nodeArena{
		buf:  make([]byte, capacity+nodeAlign),
		cap:  capacity,
		size: nodeAlign,
	}
}

func alignUp(n int) int {
	return (n + nodeAlign - 1) &^ (nodeAlign - 1)
}

// mark returns a checkpoint for the current arena size.
func (a *nodeArena) mark() arenaMark {
	return arenaMark(a.size)
}

// popTo truncates the arena back to a checkpoint, invalidating every node
// pushed after it. The discarded region is zeroed so later records never
// inherit stale bytes as padding.
func (a *nodeArena) popTo(m arenaMark) {
	for i := int(m); i < a.size; i++ {
		a.buf[i] = 0
	}
	a.size = int(m)
}

// pushNode allocates a record with the given initial content and returns its
// handle, or nodeNone and overflow if the arena is exhausted.
func (a *nodeArena) pushNode(typ NodeType, initial []byte) (nodeID, status) {
	return a.pushNodePadded(typ, initial, len(initial))
}

// pushNodePadded allocates a record with content capacity for maxLen bytes,
// for nodes whose final content is written later (synthetic blank IDs). The
// initial content, which may be shorter than maxLen, is copied in.
func (a *nodeArena) pushNodePadded(typ NodeType, initial []byte, maxLen int) (nodeID, status) {
	off := alignUp(a.size)
	end := off + headerSize + maxLen
	if end > a.cap {
		return nodeNone, statusOverflow
	}

	// Zero the alignment gap left by pops of the previous record.
	for i := a.size; i < off; i++ {
		a.buf[i] = 0
	}

	binary.LittleEndian.PutUint32(a.buf[off:], uint32(len(initial)))
	a.buf[off+4] = 0
	a.buf[off+5] = byte(typ)
	a.buf[off+6] = 0
	a.buf[off+7] = 0
	copy(a.buf[off+headerSize:], initial)
	for i := off + headerSize + len(initial); i < end; i++ {
		a.buf[i] = 0
	}

	a.size = end
	return nodeID(off), statusSuccess
}

// pushByte appends one content byte to the newest record. Nothing is written
// on overflow.
func (a *nodeArena) pushByte(id nodeID, c byte) status {
	if a.size >= a.cap {
		return statusOverflow
	}
	a.buf[a.size] = c
	a.size++
	a.setLen(id, a.len(id)+1)
	return statusSuccess
}

// pushBytes appends a run of content bytes to the newest record. Nothing is
// written on overflow.
func (a *nodeArena) pushBytes(id nodeID, bytes []byte) status {
	if a.size+len(bytes) > a.cap {
		return statusOverflow
	}
	copy(a.buf[a.size:], bytes)
	a.size += len(bytes)
	a.setLen(id, a.len(id)+len(bytes))
	return statusSuccess
}

// popByte removes the last content byte of the newest record, for grammar
// rules that tentatively consume a trailing character.
func (a *nodeArena) popByte(id nodeID) {
	a.size--
	a.setLen(id, a.len(id)-1)
}

// zeroPad zeroes from the end of the record's content up to the alignment
// boundary. Records under incremental construction must be padded before
// they are read or emitted.
func (a *nodeArena) zeroPad(id nodeID) {
	end := a.contentEnd(id)
	for i := end; i < alignUp(end); i++ {
		a.buf[i] = 0
	}
}

// replaceContent overwrites the newest record's content, for in-place CURIE
// expansion and relative reference resolution.
func (a *nodeArena) replaceContent(id nodeID, content []byte) status {
	end := int(id) + headerSize + len(content)
	if end > a.cap {
		return statusOverflow
	}
	old := a.size
	copy(a.buf[int(id)+headerSize:], content)
	a.setLen(id, len(content))
	for i := end; i < old; i++ {
		a.buf[i] = 0
	}
	a.size = end
	return statusSuccess
}

// setContent rewrites a record allocated with pushNodePadded, within its
// reserved capacity. Used to relabel recycled blank nodes.
func (a *nodeArena) setContent(id nodeID, content []byte) {
	copy(a.buf[int(id)+headerSize:], content)
	a.setLen(id, len(content))
	end := a.contentEnd(id)
	for i := end; i < alignUp(end); i++ {
		a.buf[i] = 0
	}
}

func (a *nodeArena) len(id nodeID) int {
	return int(binary.LittleEndian.Uint32(a.buf[id:]))
}

func (a *nodeArena) setLen(id nodeID, n int) {
	binary.LittleEndian.PutUint32(a.buf[id:], uint32(n))
}

func (a *nodeArena) typeOf(id nodeID) NodeType {
	return NodeType(a.buf[id+5])
}

func (a *nodeArena) setType(id nodeID, typ NodeType) {
	a.buf[id+5] = byte(typ)
}

func (a *nodeArena) flags(id nodeID) NodeFlags {
	return NodeFlags(a.buf[id+4])
}

func (a *nodeArena) orFlags(id nodeID, f NodeFlags) {
	a.buf[id+4] |= byte(f)
}

func (a *nodeArena) setFlags(id nodeID, f NodeFlags) {
	a.buf[id+4] = byte(f)
}

// bytes returns the record's content, excluding padding.
func (a *nodeArena) bytes(id nodeID) []byte {
	off := int(id) + headerSize
	return a.buf[off : off+a.len(id)]
}

func (a *nodeArena) string(id nodeID) string {
	return string(a.bytes(id))
}

func (a *nodeArena) contentEnd(id nodeID) int {
	return int(id) + headerSize + a.len(id)
}

// next returns the handle of the record allocated directly after this one,
// which is where a literal's datatype or language metadata lives.
func (a *nodeArena) next(id nodeID) nodeID {
	return nodeID(alignUp(a.contentEnd(id)))
}

// record returns the full padded record as a flat byte range, suitable for
// equality comparison or hashing.
func (a *nodeArena) record(id nodeID) []byte {
	return a.buf[id : alignUp(a.contentEnd(id))]
}
