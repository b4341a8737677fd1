package voice

// blockQueue is an unbounded FIFO of audio blocks. It has no locking of its
// own; the pipeline mutex guards it together with the state flags.
type blockQueue struct {
	blocks [][]byte
}

func (q *blockQueue) push(b []byte) {
	q.blocks = append(q.blocks, b)
}

func (q *blockQueue) pop() ([]byte, bool) {
	if len(q.blocks) == 0 {
		return nil, false
	}
	b := q.blocks[0]
	q.blocks[0] = nil
	q.blocks = q.blocks[1:]
	return b, true
}

func (q *blockQueue) len() int {
	return len(q.blocks)
}

// clear drops every queued block and returns how many were dropped.
func (q *blockQueue) clear() int {
	n := len(q.blocks)
	q.blocks = nil
	return n
}
