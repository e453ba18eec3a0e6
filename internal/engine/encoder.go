package engine

// LabelEncoder maintains a bidirectional name<->index mapping for categorical
// features. The vocabulary grows monotonically: Upsert appends unseen names
// and never evicts or reorders existing ones, so an index stays stable for
// the life of the encoder. Not safe for concurrent use; the predictor
// serializes access with its own lock.
type LabelEncoder struct {
	indexByName map[string]int
	names       []string
}

// NewLabelEncoder creates an empty label encoder
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{indexByName: make(map[string]int)}
}

// Fit resets the encoder and assigns indices in first-seen order
func (e *LabelEncoder) Fit(names []string) {
	e.indexByName = make(map[string]int, len(names))
	e.names = e.names[:0]
	for _, name := range names {
		if _, seen := e.indexByName[name]; seen {
			continue
		}
		e.indexByName[name] = len(e.names)
		e.names = append(e.names, name)
	}
}

// Encode returns the index for a known name
func (e *LabelEncoder) Encode(name string) (int, bool) {
	idx, ok := e.indexByName[name]
	return idx, ok
}

// Upsert returns the index for a name, appending it to the vocabulary first
// if it has never been seen.
func (e *LabelEncoder) Upsert(name string) int {
	if idx, ok := e.indexByName[name]; ok {
		return idx
	}
	idx := len(e.names)
	e.indexByName[name] = idx
	e.names = append(e.names, name)
	return idx
}

// Len returns the vocabulary size
func (e *LabelEncoder) Len() int {
	return len(e.names)
}

// Names returns a copy of the vocabulary in index order
func (e *LabelEncoder) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}
