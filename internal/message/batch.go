package message

// Batch is the ordered collection of raw record fragments retrieved during
// one slow sync. Records keep device emission order.
type Batch struct {
	records []*Node
}

// Append adds a record at the end of the batch.
func (b *Batch) Append(record *Node) {
	b.records = append(b.records, record)
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	return len(b.records)
}

// Records returns the records in emission order.
func (b *Batch) Records() []*Node {
	return b.records
}

// Node returns the batch as a single array node, the document handed to
// the transform stage.
func (b *Batch) Node() *Node {
	return NewArray(b.records...)
}
