package engine

import "math/rand"

// Roll holds the two dice, each 1-6.
type Roll [2]int

func (r Roll) Total() int {
	return r[0] + r[1]
}

func (r Roll) Doubles() bool {
	return r[0] != 0 && r[0] == r[1]
}

type Roller interface {
	Roll() Roll
}

type randRoller struct {
	rng *rand.Rand
}

func (r randRoller) Roll() Roll {
	return Roll{r.rng.Intn(6) + 1, r.rng.Intn(6) + 1}
}
