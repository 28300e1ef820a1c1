package dice

// RollWithSource rolls dice using the provided random source.
//
// # Determinism
//
// Given a Source that yields the same sequence of integers, RollWithSource
// always produces the same Result. Seed the source with NewSource to replay
// a play-through.
//
// # Ordering
//
// Specs are processed in slice order. The Roll entries in Result.Rolls
// appear in the same order as the corresponding Spec entries.
//
// # Errors
//
//   - src must be non-nil, otherwise ErrNilSource is returned.
//   - At least one Spec must be provided, otherwise ErrMissingDice is
//     returned.
//   - Each Spec must have Sides > 0 and Count > 0, otherwise
//     ErrInvalidDiceSpec is returned.
func RollWithSource(src Source, specs []Spec) (Result, error) {
	if src == nil {
		return Result{}, ErrNilSource
	}
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0

	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}

		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := rollDie(src, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, Roll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return Result{
		Rolls: rolls,
		Total: total,
	}, nil
}

// RollDie rolls a single die with the provided number of sides and returns
// its face in [1, sides].
func RollDie(src Source, sides int) (int, error) {
	result, err := RollWithSource(src, []Spec{{Sides: sides, Count: 1}})
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
