package dice

import (
	"sort"
)

// MaxFace is the highest face of the six-sided dice the rule set uses.
// A drama roll of MaxFace dice is a miracle.
const MaxFace = 6

// Policy decides which dice of a roll count towards its total
type Policy string

const (
	// PolicyKeepHighestSum keeps the face group with the greatest summed value
	PolicyKeepHighestSum Policy = "khs"
	// PolicyKeepLowest keeps a single lowest die
	PolicyKeepLowest Policy = "kl"
	// PolicyNone keeps every die
	PolicyNone Policy = ""
)

// Die is a single rolled face
type Die struct {
	Face   int  `json:"face"`
	Active bool `json:"active"`
}

// Roll is a rolled pool of dice with its keep policy applied
type Roll struct {
	// Nominal is the requested dice count before the negative transform
	Nominal int    `json:"nominal"`
	Dice    []Die  `json:"dice"`
	Policy  Policy `json:"policy"`
	Total   int    `json:"total"`
}

// NewRoll builds a roll from faces and applies the policy
func NewRoll(nominal int, faces []int, policy Policy) *Roll {
	r := &Roll{
		Nominal: nominal,
		Dice:    make([]Die, len(faces)),
		Policy:  policy,
	}
	for i, f := range faces {
		r.Dice[i] = Die{Face: f}
	}
	r.Evaluate()
	return r
}

// Faces returns every face of the roll in rolled order
func (r *Roll) Faces() []int {
	out := make([]int, len(r.Dice))
	for i, d := range r.Dice {
		out[i] = d.Face
	}
	return out
}

// ActiveFaces returns the faces that count towards the total
func (r *Roll) ActiveFaces() []int {
	var out []int
	for _, d := range r.Dice {
		if d.Active {
			out = append(out, d.Face)
		}
	}
	return out
}

// Evaluate re-partitions the dice into active and discarded under the
// current policy and recomputes the total.
func (r *Roll) Evaluate() {
	switch r.Policy {
	case PolicyKeepHighestSum:
		keepHighestSum(r.Dice)
	case PolicyKeepLowest:
		keepLowest(r.Dice)
	default:
		for i := range r.Dice {
			r.Dice[i].Active = true
		}
	}

	r.Total = 0
	for _, d := range r.Dice {
		if d.Active {
			r.Total += d.Face
		}
	}
}

// keepHighestSum activates every die of the face whose group sum is the
// greatest. Faces are scanned in ascending order and only a strictly greater
// sum replaces the best group, so the lower face wins a tie.
func keepHighestSum(dice []Die) {
	sums := make(map[int]int)
	for _, d := range dice {
		sums[d.Face] += d.Face
	}

	faces := make([]int, 0, len(sums))
	for f := range sums {
		faces = append(faces, f)
	}
	sort.Ints(faces)

	best, bestSum := 0, -1
	for _, f := range faces {
		if sums[f] > bestSum {
			best, bestSum = f, sums[f]
		}
	}

	for i := range dice {
		dice[i].Active = dice[i].Face == best
	}
}

func keepLowest(dice []Die) {
	lowest := -1
	for i, d := range dice {
		if lowest == -1 || d.Face < dice[lowest].Face {
			lowest = i
		}
	}

	for i := range dice {
		dice[i].Active = i == lowest
	}
}
