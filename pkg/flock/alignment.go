package flock

// ClearAlignment resets every accumulator to zero.
func ClearAlignment(acc []Alignment) {
	clear(acc)
}

// CalculateAlignment makes every pair within VisionRange see each other's
// velocity. Afterwards a boid with neighbors holds
// (average neighbor velocity - own velocity) * AlignmentFactor, a steering
// correction toward the local heading. Isolated boids stay at zero.
// acc must have been cleared.
func CalculateAlignment(boids []Boid, acc []Alignment, ctrl *Control) {
	n := len(boids)
	forEachPair(0, n, n, func(i, j int) {
		alignPair(boids, acc, i, j, ctrl)
	})
	finishAlignment(boids, acc, ctrl)
}

func alignPair(boids []Boid, acc []Alignment, i, j int, ctrl *Control) {
	if boids[i].Pos.DistanceTo(boids[j].Pos) < ctrl.VisionRange {
		acc[i].Neighbors++
		acc[i].NeighborhoodAlignment = acc[i].NeighborhoodAlignment.Add(boids[j].Vel)

		acc[j].Neighbors++
		acc[j].NeighborhoodAlignment = acc[j].NeighborhoodAlignment.Add(boids[i].Vel)
	}
}

func finishAlignment(boids []Boid, acc []Alignment, ctrl *Control) {
	for i := range acc {
		if acc[i].Neighbors == 0 {
			continue
		}
		average := acc[i].NeighborhoodAlignment.Mul(1 / float64(acc[i].Neighbors))
		acc[i].NeighborhoodAlignment = average.Sub(boids[i].Vel).Mul(ctrl.AlignmentFactor)
	}
}
