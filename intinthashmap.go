package automaton

const (
	DEFAULT_EXPECTED_ELEMENTS = 4
	DEFAULT_LOAD_FACTOR       = 0.75
	MIN_HASH_ARRAY_LENGTH     = 4
)

// IntIntHashMap maps int keys to int values with open addressing and linear
// probing. The zero key is kept in a dedicated slot since 0 marks an empty
// bucket. It avoids the allocation overhead of map[int]int on the hot
// pair-to-state lookups of the product construction.
type IntIntHashMap struct {
	keys   []int
	values []int

	assigned   int
	mask       int
	resizeAt   int // expand (rehash) keys when assigned hits this value
	hasEmpty   bool
	emptyValue int
	loadFactor float64
}

func NewIntIntHashMap(expectedElements int) *IntIntHashMap {
	if expectedElements < DEFAULT_EXPECTED_ELEMENTS {
		expectedElements = DEFAULT_EXPECTED_ELEMENTS
	}

	arraySize := MIN_HASH_ARRAY_LENGTH
	for float64(arraySize)*DEFAULT_LOAD_FACTOR < float64(expectedElements) {
		arraySize <<= 1
	}

	return &IntIntHashMap{
		keys:       make([]int, arraySize),
		values:     make([]int, arraySize),
		mask:       arraySize - 1,
		resizeAt:   int(float64(arraySize) * DEFAULT_LOAD_FACTOR),
		loadFactor: DEFAULT_LOAD_FACTOR,
	}
}

// Put stores value for key, replacing any previous value.
func (m *IntIntHashMap) Put(key, value int) {
	if key == 0 {
		m.hasEmpty = true
		m.emptyValue = value
		return
	}

	slot := m.slotOf(key)
	if m.keys[slot] == key {
		m.values[slot] = value
		return
	}

	if m.assigned == m.resizeAt {
		m.rehash()
		slot = m.slotOf(key)
	}

	m.keys[slot] = key
	m.values[slot] = value
	m.assigned++
}

// Get returns the value stored for key.
func (m *IntIntHashMap) Get(key int) (int, bool) {
	if key == 0 {
		return m.emptyValue, m.hasEmpty
	}

	slot := m.slotOf(key)
	if m.keys[slot] == key {
		return m.values[slot], true
	}
	return 0, false
}

// Size returns the number of stored entries.
func (m *IntIntHashMap) Size() int {
	if m.hasEmpty {
		return m.assigned + 1
	}
	return m.assigned
}

// slotOf returns the slot where key lives, or the first free slot of its
// probe sequence.
func (m *IntIntHashMap) slotOf(key int) int {
	slot := mixPhi(key) & m.mask
	for m.keys[slot] != 0 && m.keys[slot] != key {
		slot = (slot + 1) & m.mask
	}
	return slot
}

func (m *IntIntHashMap) rehash() {
	oldKeys, oldValues := m.keys, m.values

	arraySize := (m.mask + 1) << 1
	m.keys = make([]int, arraySize)
	m.values = make([]int, arraySize)
	m.mask = arraySize - 1
	m.resizeAt = int(float64(arraySize) * m.loadFactor)

	for i, key := range oldKeys {
		if key != 0 {
			slot := m.slotOf(key)
			m.keys[slot] = key
			m.values[slot] = oldValues[i]
		}
	}
}
