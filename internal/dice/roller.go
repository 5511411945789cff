package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller produces six-sided die faces. Implementations decide where the
// randomness comes from so tests can queue exact faces.
type Roller interface {
	// Faces returns count faces in [1, MaxFace]
	Faces(count int) ([]int, error)
}

// RollNominal routes a nominal dice count through NegativeTransform, rolls
// the resulting pool and applies its policy.
func RollNominal(roller Roller, nominal int) (*Roll, error) {
	count, policy := NegativeTransform(nominal)
	return RollPolicy(roller, nominal, count, policy)
}

// RollPolicy rolls count dice under an explicit policy
func RollPolicy(roller Roller, nominal, count int, policy Policy) (*Roll, error) {
	faces, err := roller.Faces(count)
	if err != nil {
		return nil, err
	}
	return NewRoll(nominal, faces, policy), nil
}
