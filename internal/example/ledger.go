package example

// Ledger records the (field, type) pairs entered along the current path.
// It is a persistent list: Record returns an extended ledger and leaves the
// receiver untouched, so sibling branches never observe each other.
type Ledger struct {
	head *visit
}

type visit struct {
	field    string
	typeName string
	next     *visit
}

// Contains reports whether (field, typeName) was recorded on this path.
func (l Ledger) Contains(field, typeName string) bool {
	for v := l.head; v != nil; v = v.next {
		if v.field == field && v.typeName == typeName {
			return true
		}
	}
	return false
}

// Record returns a ledger with (field, typeName) added.
func (l Ledger) Record(field, typeName string) Ledger {
	return Ledger{head: &visit{field: field, typeName: typeName, next: l.head}}
}

// Len returns the number of recorded visits.
func (l Ledger) Len() int {
	n := 0
	for v := l.head; v != nil; v = v.next {
		n++
	}
	return n
}
