package propgen

import "strconv"

// Iteration identifies one pass of the nested simulation loop
type Iteration struct {
	Outer string
	Inner string
}

func (it Iteration) String() string {
	return "outer" + it.Outer + "/inner" + it.Inner
}

// Plan lists every iteration for the given loop counts, outer-major.
// Non-positive counts give an empty plan.
func Plan(outerCount, innerCount int) []Iteration {
	if outerCount <= 0 || innerCount <= 0 {
		return nil
	}
	plan := make([]Iteration, 0, outerCount*innerCount)
	for o := 0; o < outerCount; o++ {
		for i := 0; i < innerCount; i++ {
			plan = append(plan, Iteration{Outer: strconv.Itoa(o), Inner: strconv.Itoa(i)})
		}
	}
	return plan
}
