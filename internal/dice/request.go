package dice

// Size is the relative size category of a roll against its opponent
type Size string

const (
	SizeDisadvantage Size = "disadvantage"
	SizeNormal       Size = "normal"
	SizeAdvantage    Size = "advantage"
)

var sizeMods = map[Size]int{
	SizeDisadvantage: -5,
	SizeNormal:       0,
	SizeAdvantage:    5,
}

// Multipliers offered for a roll. Defense rolls may be skipped (x0) or
// doubled, a drama roll may be raised to a miracle.
const (
	MultiplierNone    = 0
	MultiplierSingle  = 1
	MultiplierDouble  = 2
	MultiplierMiracle = MaxFace
)

// Request describes a roll before any dice are thrown
type Request struct {
	Base       int
	Modifier   int
	Size       Size
	Multiplier int
}

// NewRequest creates a normal sized, single multiplier request
func NewRequest(base int) *Request {
	return &Request{
		Base:       base,
		Size:       SizeNormal,
		Multiplier: MultiplierSingle,
	}
}

// Pool returns the number of dice to throw and their policy. Penalty pools
// are divided by the multiplier, rounding up, instead of multiplied.
func (r *Request) Pool() (int, Policy) {
	count, policy := NegativeTransform(r.Base + r.Modifier + sizeMods[r.Size])

	if policy == PolicyKeepLowest && r.Multiplier != 0 {
		return (count + r.Multiplier - 1) / r.Multiplier, policy
	}
	return count * r.Multiplier, policy
}

// Roll throws the requested pool
func (r *Request) Roll(roller Roller) (*Roll, error) {
	count, policy := r.Pool()
	return RollPolicy(roller, count, count, policy)
}
