package flock

// ClearSeparation resets every accumulator to zero.
func ClearSeparation(acc []Separation) {
	clear(acc)
}

// CalculateSeparation pushes apart every pair closer than SeparationDistance.
// Each boid of the pair gets the unit direction away from the other scaled by
// how deep the intrusion is, then the sum is scaled by SeparationFactor.
// acc must have been cleared.
func CalculateSeparation(boids []Boid, acc []Separation, ctrl *Control) {
	n := len(boids)
	forEachPair(0, n, n, func(i, j int) {
		separatePair(boids, acc, i, j, ctrl)
	})
	finishSeparation(acc, ctrl)
}

// separatePair applies the symmetric contribution of pair (i, j).
// Coincident boids have no direction to push along: the normalized zero
// vector contributes nothing.
func separatePair(boids []Boid, acc []Separation, i, j int, ctrl *Control) {
	diff := boids[i].Pos.Sub(boids[j].Pos)
	dist := diff.Len()
	if dist < ctrl.SeparationDistance {
		depth := ctrl.SeparationDistance - dist
		acc[i].AvoidDirection = acc[i].AvoidDirection.Add(diff.Normalize().Mul(depth))
		acc[j].AvoidDirection = acc[j].AvoidDirection.Add(diff.Neg().Normalize().Mul(depth))
	}
}

func finishSeparation(acc []Separation, ctrl *Control) {
	for i := range acc {
		acc[i].AvoidDirection = acc[i].AvoidDirection.Mul(ctrl.SeparationFactor)
	}
}
