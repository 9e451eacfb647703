package balancer

// IntegerFlows proportionally allocates targetTotal across the given rates,
// returning integers that sum to exactly targetTotal. Each entry gets the
// truncated proportional share and the last entry absorbs the rounding
// remainder.
//
// Planners with fractional production rates use this to produce a valid
// [Design] argument list: the engine itself only accepts integers that sum
// correctly.
func IntegerFlows(flows []float64, targetTotal int) []int {
	if len(flows) == 0 {
		return nil
	}

	sourceTotal := 0.0
	for _, f := range flows {
		sourceTotal += f
	}

	result := make([]int, len(flows))
	remaining := targetTotal
	if sourceTotal == 0 {
		result[len(flows)-1] = remaining
		return result
	}
	for i, f := range flows {
		if i == len(flows)-1 {
			result[i] = remaining
			break
		}
		allocated := int(f * float64(targetTotal) / sourceTotal)
		result[i] = allocated
		remaining -= allocated
	}
	return result
}
