package ocif

// ordered is a map that remembers the order in which keys were first seen.
type ordered[K comparable, V any] struct {
	keys  []K
	vals  []V
	index map[K]int
}

func newOrdered[K comparable, V any]() *ordered[K, V] {
	return &ordered[K, V]{
		index: make(map[K]int),
	}
}

// at returns the value for k, creating it with create if k is new.
func (o *ordered[K, V]) at(k K, create func() V) V {
	if i, ok := o.index[k]; ok {
		return o.vals[i]
	}
	v := create()
	o.index[k] = len(o.keys)
	o.keys = append(o.keys, k)
	o.vals = append(o.vals, v)
	return v
}

func (o *ordered[K, V]) len() int {
	return len(o.keys)
}

// Grouping levels, outermost first
type (
	alphaGroup      = ordered[uint8, *characterGroup]
	characterGroup  = ordered[rune, *backgroundGroup]
	backgroundGroup = ordered[uint8, *foregroundGroup]
	foregroundGroup = ordered[uint8, *rowGroup]
	rowGroup        = ordered[int, *[]int]
)

func newCharacterGroup() *characterGroup {
	return newOrdered[rune, *backgroundGroup]()
}

func newBackgroundGroup() *backgroundGroup {
	return newOrdered[uint8, *foregroundGroup]()
}

func newForegroundGroup() *foregroundGroup {
	return newOrdered[uint8, *rowGroup]()
}

func newRowGroup() *rowGroup {
	return newOrdered[int, *[]int]()
}

func newColumns() *[]int {
	return new([]int)
}
