package automaton

import "strconv"

// Minimize Minimizes (and determinizes if not already deterministic) the
// given automaton, returning the unique smallest deterministic automaton for
// the language in a canonical layout: two inputs with the same language
// minimize to structurally identical results. Dead states are removed first,
// so the empty language minimizes to the automaton with no states.
//
// The partition refinement is Moore's algorithm over the start points of the
// alphabet partition; the canonical numbering is a breadth-first walk from
// the initial block following transitions in ascending label order.
func Minimize(a *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	if a.GetNumStates() == 0 || (!a.IsAccept(0) && a.GetNumTransitionsWithState(0) == 0) {
		// Fastmatch for common case
		return NewAutomaton(), nil
	}

	d, err := Determinize(a, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	d, err = RemoveDeadStates(d)
	if err != nil {
		return nil, err
	}

	numStates := d.GetNumStates()
	if numStates == 0 {
		return d, nil
	}

	points := d.GetStartPoints()

	// Moore refinement: states start in one block and split apart whenever
	// their accept flags or per-interval target blocks differ, until the
	// number of blocks is stable.
	block := make([]int, numStates)
	numBlocks := 1
	for {
		sigToBlock := make(map[string]int, numBlocks*2)
		next := make([]int, numStates)
		var sig []byte
		count := 0

		for s := 0; s < numStates; s++ {
			sig = sig[:0]
			if d.IsAccept(s) {
				sig = append(sig, '!')
			}
			sig = strconv.AppendInt(sig, int64(block[s]), 10)
			for _, p := range points {
				destBlock := -1
				if dest := d.Step(s, p); dest != -1 {
					destBlock = block[dest]
				}
				sig = append(sig, ',')
				sig = strconv.AppendInt(sig, int64(destBlock), 10)
			}

			id, ok := sigToBlock[string(sig)]
			if !ok {
				id = count
				count++
				sigToBlock[string(sig)] = id
			}
			next[s] = id
		}

		block = next
		if count == numBlocks {
			break
		}
		numBlocks = count
	}

	// The lowest-numbered member stands in for its block; equivalent states
	// carry identical reduced transition lists up to the partition, so the
	// choice does not affect the output.
	repr := make([]int, numBlocks)
	for s := numStates - 1; s >= 0; s-- {
		repr[block[s]] = s
	}

	// Canonical numbering: breadth-first from the initial block, visiting
	// transitions in ascending label order. Every block is reachable since
	// dead states are already gone.
	newID := make([]int, numBlocks)
	for i := range newID {
		newID[i] = -1
	}
	order := make([]int, 0, numBlocks)
	newID[block[0]] = 0
	order = append(order, block[0])

	t := NewTransition()
	for i := 0; i < len(order); i++ {
		s := repr[order[i]]
		count := d.InitTransition(s, t)
		for j := 0; j < count; j++ {
			d.GetNextTransition(t)
			destBlock := block[t.Dest]
			if newID[destBlock] == -1 {
				newID[destBlock] = len(order)
				order = append(order, destBlock)
			}
		}
	}

	result := NewAutomatonV1(numBlocks, numBlocks)
	for range order {
		result.CreateState()
	}
	for i, b := range order {
		result.SetAccept(i, d.IsAccept(repr[b]))
	}
	for i, b := range order {
		s := repr[b]
		count := d.InitTransition(s, t)
		for j := 0; j < count; j++ {
			d.GetNextTransition(t)
			if err := result.AddTransition(i, newID[block[t.Dest]], t.Min, t.Max); err != nil {
				return nil, err
			}
		}
	}
	result.FinishState()

	return result, nil
}
