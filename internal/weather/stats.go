package weather

// ComputeStats reduces a temperature sequence to min, max, and arithmetic
// mean. An empty sequence yields all nil fields.
func ComputeStats(temperatures []float64) Stats {
	if len(temperatures) == 0 {
		return Stats{}
	}

	min := temperatures[0]
	max := temperatures[0]
	var sum float64

	for _, t := range temperatures {
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
		sum += t
	}

	avg := sum / float64(len(temperatures))
	return Stats{Min: &min, Max: &max, Average: &avg}
}
