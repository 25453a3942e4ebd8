package flock

// ClearCohesion resets every accumulator to zero.
func ClearCohesion(acc []Cohesion) {
	clear(acc)
}

// CalculateCohesion is the positional twin of CalculateAlignment: a boid with
// neighbors ends up holding (neighbors centroid - own position) * CohesionFactor.
// acc must have been cleared.
func CalculateCohesion(boids []Boid, acc []Cohesion, ctrl *Control) {
	n := len(boids)
	forEachPair(0, n, n, func(i, j int) {
		coherePair(boids, acc, i, j, ctrl)
	})
	finishCohesion(boids, acc, ctrl)
}

func coherePair(boids []Boid, acc []Cohesion, i, j int, ctrl *Control) {
	if boids[i].Pos.DistanceTo(boids[j].Pos) < ctrl.VisionRange {
		acc[i].Neighbors++
		acc[i].NeighborhoodCohesion = acc[i].NeighborhoodCohesion.Add(boids[j].Pos)

		acc[j].Neighbors++
		acc[j].NeighborhoodCohesion = acc[j].NeighborhoodCohesion.Add(boids[i].Pos)
	}
}

func finishCohesion(boids []Boid, acc []Cohesion, ctrl *Control) {
	for i := range acc {
		if acc[i].Neighbors == 0 {
			continue
		}
		center := acc[i].NeighborhoodCohesion.Mul(1 / float64(acc[i].Neighbors))
		acc[i].NeighborhoodCohesion = center.Sub(boids[i].Pos).Mul(ctrl.CohesionFactor)
	}
}
