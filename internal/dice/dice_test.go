package dice_test

import (
	"testing"

	"github.com/KirkDiggler/ova-combat/internal/dice"
	mockdice "github.com/KirkDiggler/ova-combat/internal/dice/mock"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNegativeTransform(t *testing.T) {
	for n := -6; n <= 0; n++ {
		count, policy := dice.NegativeTransform(n)
		assert.Equal(t, 2-n, count)
		assert.Equal(t, dice.PolicyKeepLowest, policy)
	}
	for n := 1; n <= 8; n++ {
		count, policy := dice.NegativeTransform(n)
		assert.Equal(t, n, count)
		assert.Equal(t, dice.PolicyKeepHighestSum, policy)
	}
}

func TestKeepHighestSum(t *testing.T) {
	tests := []struct {
		name       string
		faces      []int
		wantActive []int
		wantTotal  int
	}{
		{
			name:       "pair beats single",
			faces:      []int{5, 5, 3},
			wantActive: []int{5, 5},
			wantTotal:  10,
		},
		{
			name:       "triple of low face beats high single",
			faces:      []int{2, 6, 2, 2},
			wantActive: []int{2, 2, 2},
			wantTotal:  6,
		},
		{
			name:       "tie keeps the lower face",
			faces:      []int{6, 3, 3},
			wantActive: []int{3, 3},
			wantTotal:  6,
		},
		{
			name:       "all distinct keeps highest",
			faces:      []int{1, 4, 2},
			wantActive: []int{4},
			wantTotal:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := dice.NewRoll(len(tt.faces), tt.faces, dice.PolicyKeepHighestSum)
			assert.Equal(t, tt.wantActive, r.ActiveFaces())
			assert.Equal(t, tt.wantTotal, r.Total)
			assert.Equal(t, tt.faces, r.Faces())
		})
	}
}

func TestKeepLowest(t *testing.T) {
	r := dice.NewRoll(0, []int{6, 2, 4}, dice.PolicyKeepLowest)
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, []int{2}, r.ActiveFaces())

	ties := dice.NewRoll(-1, []int{3, 1, 1}, dice.PolicyKeepLowest)
	assert.Equal(t, 1, ties.Total)
	assert.Len(t, ties.ActiveFaces(), 1)
}

func TestPolicyNone(t *testing.T) {
	r := dice.NewRoll(3, []int{1, 2, 3}, dice.PolicyNone)
	assert.Equal(t, 6, r.Total)
	assert.Len(t, r.ActiveFaces(), 3)
}

func TestMergeBonusDice(t *testing.T) {
	t.Run("keep highest sum base gains the bonus dice", func(t *testing.T) {
		base := dice.NewRoll(2, []int{4, 2}, dice.PolicyKeepHighestSum)
		bonus := dice.NewRoll(1, []int{4}, dice.PolicyKeepHighestSum)

		require.NoError(t, dice.MergeBonusDice(base, bonus))
		assert.Equal(t, dice.PolicyKeepHighestSum, base.Policy)
		assert.Equal(t, []int{4, 4}, base.ActiveFaces())
		assert.Equal(t, 8, base.Total)
	})

	t.Run("large penalty stays keep lowest", func(t *testing.T) {
		// nominal -2 rolls four dice, one bonus die offsets one step
		base := dice.NewRoll(-2, []int{5, 1, 3, 2}, dice.PolicyKeepLowest)
		bonus := dice.NewRoll(1, []int{6}, dice.PolicyKeepHighestSum)

		require.NoError(t, dice.MergeBonusDice(base, bonus))
		assert.Equal(t, dice.PolicyKeepLowest, base.Policy)
		assert.Equal(t, []int{3, 5, 6}, base.Faces())
		assert.Equal(t, 3, base.Total)
	})

	t.Run("penalty cancelled by one more die switches policy", func(t *testing.T) {
		base := dice.NewRoll(0, []int{2, 5}, dice.PolicyKeepLowest)
		bonus := dice.NewRoll(1, []int{4}, dice.PolicyKeepHighestSum)

		require.NoError(t, dice.MergeBonusDice(base, bonus))
		assert.Equal(t, dice.PolicyKeepHighestSum, base.Policy)
		assert.Equal(t, []int{4}, base.Faces())
		assert.Equal(t, 4, base.Total)
	})

	t.Run("bonus outnumbers penalty", func(t *testing.T) {
		base := dice.NewRoll(0, []int{1, 2}, dice.PolicyKeepLowest)
		bonus := dice.NewRoll(3, []int{2, 6, 6}, dice.PolicyKeepHighestSum)

		require.NoError(t, dice.MergeBonusDice(base, bonus))
		assert.Equal(t, dice.PolicyKeepHighestSum, base.Policy)
		// 0 + 3 bonus dice nets three dice
		assert.Equal(t, []int{2, 6, 6}, base.Faces())
		assert.Equal(t, 12, base.Total)
	})

	t.Run("merged dice never exceed both inputs", func(t *testing.T) {
		for baseCount := 2; baseCount <= 6; baseCount++ {
			for bonusCount := 1; bonusCount <= 6; bonusCount++ {
				baseFaces := make([]int, baseCount)
				bonusFaces := make([]int, bonusCount)
				for i := range baseFaces {
					baseFaces[i] = i%6 + 1
				}
				for i := range bonusFaces {
					bonusFaces[i] = 6 - i%6
				}
				base := dice.NewRoll(2-baseCount, baseFaces, dice.PolicyKeepLowest)
				bonus := dice.NewRoll(bonusCount, bonusFaces, dice.PolicyKeepHighestSum)

				require.NoError(t, dice.MergeBonusDice(base, bonus))
				assert.LessOrEqual(t, len(base.Dice), baseCount+bonusCount)
				assert.NotEmpty(t, base.ActiveFaces())
				if base.Policy == dice.PolicyKeepLowest {
					assert.Len(t, base.ActiveFaces(), 1)
				}
			}
		}
	})

	t.Run("missing base is rejected", func(t *testing.T) {
		err := dice.MergeBonusDice(nil, dice.NewRoll(1, []int{3}, dice.PolicyKeepHighestSum))
		assert.True(t, ovaerr.IsInvalidBonusMerge(err))
	})
}

func TestRequestPool(t *testing.T) {
	tests := []struct {
		name       string
		req        dice.Request
		wantCount  int
		wantPolicy dice.Policy
	}{
		{
			name:       "plain pool",
			req:        dice.Request{Base: 3, Size: dice.SizeNormal, Multiplier: 1},
			wantCount:  3,
			wantPolicy: dice.PolicyKeepHighestSum,
		},
		{
			name:       "advantage adds five",
			req:        dice.Request{Base: 2, Modifier: 1, Size: dice.SizeAdvantage, Multiplier: 1},
			wantCount:  8,
			wantPolicy: dice.PolicyKeepHighestSum,
		},
		{
			name:       "disadvantage goes negative",
			req:        dice.Request{Base: 2, Size: dice.SizeDisadvantage, Multiplier: 1},
			wantCount:  5,
			wantPolicy: dice.PolicyKeepLowest,
		},
		{
			name:       "doubled defense",
			req:        dice.Request{Base: 3, Size: dice.SizeNormal, Multiplier: 2},
			wantCount:  6,
			wantPolicy: dice.PolicyKeepHighestSum,
		},
		{
			name:       "doubled penalty is halved rounding up",
			req:        dice.Request{Base: -3, Size: dice.SizeNormal, Multiplier: 2},
			wantCount:  3,
			wantPolicy: dice.PolicyKeepLowest,
		},
		{
			name:       "no defense",
			req:        dice.Request{Base: 4, Size: dice.SizeNormal, Multiplier: 0},
			wantCount:  0,
			wantPolicy: dice.PolicyKeepHighestSum,
		},
		{
			name:       "miracle",
			req:        dice.Request{Base: 1, Size: dice.SizeNormal, Multiplier: dice.MultiplierMiracle},
			wantCount:  6,
			wantPolicy: dice.PolicyKeepHighestSum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, policy := tt.req.Pool()
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantPolicy, policy)
		})
	}
}

func TestRequestRoll(t *testing.T) {
	roller := mockdice.NewManualMockRoller(3, 3, 6)

	r, err := dice.NewRequest(3).Roll(roller)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Nominal)
	assert.Equal(t, 6, r.Total)
	assert.Equal(t, 0, roller.Remaining())

	_, err = dice.NewRequest(1).Roll(roller)
	assert.Error(t, err)
}

func TestRollNominalUsesTransform(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := mockdice.NewMockRoller(ctrl)

	roller.EXPECT().Faces(3).Return([]int{4, 2, 5}, nil)

	r, err := dice.RollNominal(roller, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, r.Nominal)
	assert.Equal(t, dice.PolicyKeepLowest, r.Policy)
	assert.Equal(t, 2, r.Total)
}

func TestSeededRollerIsReproducible(t *testing.T) {
	a, err := dice.NewSeededRoller(42).Faces(20)
	require.NoError(t, err)
	b, err := dice.NewSeededRoller(42).Faces(20)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	for _, f := range a {
		assert.GreaterOrEqual(t, f, 1)
		assert.LessOrEqual(t, f, dice.MaxFace)
	}
}
