package main

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/ova-combat/internal/domain/character"
	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// roster is the file format play reads characters from
type roster struct {
	Characters []*character.Character `yaml:"characters"`
}

func loadRoster(path string) ([]*character.Character, error) {
	if path == "" {
		return demoRoster(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ovaerr.WrapWithCode(err, ovaerr.CodeNotFound, "failed to read roster")
	}
	return parseRoster(data)
}

func parseRoster(data []byte) ([]*character.Character, error) {
	var r roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, ovaerr.WrapWithCode(err, ovaerr.CodeInvalidArgument, "failed to parse roster")
	}
	if len(r.Characters) == 0 {
		return nil, ovaerr.InvalidArgument("roster has no characters")
	}

	seen := make(map[string]bool)
	for _, c := range r.Characters {
		if c.ID == "" || strings.TrimSpace(c.Name) == "" {
			return nil, ovaerr.InvalidArgument("every character needs an id and a name")
		}
		if seen[c.ID] {
			return nil, ovaerr.AlreadyExistsf("character %s is listed twice", c.ID)
		}
		seen[c.ID] = true

		if c.Stats == nil {
			c.Stats = effects.Snapshot{}
		}
		// Pools start full unless the roster says otherwise
		c.Stats.Default(character.PathHP, c.Stats.Number(character.PathHPMax))
		c.Stats.Default(character.PathEndurance, c.Stats.Number(character.PathEnduranceMax))
	}
	return r.Characters, nil
}

// demoRoster is the party play uses without a roster file
func demoRoster() []*character.Character {
	aiko := character.New("aiko", "gm", "Aiko", 40, 40)
	aiko.Stats.Set("defenses.evasion", 2.0)
	aiko.Abilities = []*character.Ability{
		{ID: "aiko-sword", Name: "Swordsmanship", Kind: effects.SourceAbility, Level: 2, Active: true},
		{
			ID: "aiko-tough", Name: "Tough", Kind: effects.SourceAbility, Level: 1, Active: true,
			Effects: []effects.Definition{
				effects.Changes(character.PathArmor, "@level").Build(),
			},
		},
	}
	aiko.Attacks = []*character.Attack{
		{ID: "aiko-katana", Name: "Katana", Dx: 2, AbilityIDs: []string{"aiko-sword"}},
	}

	mika := character.New("mika", "gm", "Mika", 30, 50)
	mika.Stats.Set("defenses.resolve", 2.0)
	mika.Abilities = []*character.Ability{
		{ID: "mika-magic", Name: "Magic", Kind: effects.SourceAbility, Level: 3, Active: true, Magic: true},
		{ID: "mika-heal", Name: "Healing", Kind: effects.SourceAbility, Level: 2, Active: true},
	}
	mika.Attacks = []*character.Attack{
		{ID: "mika-mend", Name: "Mend", Dx: -1, AbilityIDs: []string{"mika-heal"}, EnduranceCost: 5},
	}
	mika.Spells = []*character.Spell{
		{
			ID: "mika-ward", Name: "Ward", DN: 8, AbilityIDs: []string{"mika-magic"},
			Effects: []effects.Definition{
				effects.NewBuilder(effects.KindApplyActiveEffect).
					WithTarget(effects.TargetTarget).
					WithKey(character.PathArmor, "").
					WithValue("@level").
					ForRounds(2).
					Build(),
			},
		},
	}

	goblin := character.New("goblin", "gm", "Goblin", 30, 30)
	goblin.Stats.Set("defenses.evasion", 1.0)
	goblin.Abilities = []*character.Ability{
		{ID: "goblin-knife", Name: "Knife Fighting", Kind: effects.SourceAbility, Level: 1, Active: true},
		{ID: "goblin-coward", Name: "Coward", Kind: effects.SourceWeakness, Level: 1, Active: true},
	}
	goblin.Attacks = []*character.Attack{
		{
			ID: "goblin-stab", Name: "Poisoned Stab", Dx: 1, AbilityIDs: []string{"goblin-knife"},
			LimitedUse: &character.LimitedUse{Value: 2, Max: 2},
			Perks: character.Perks{{
				ID: "goblin-poison", Name: "Poison", Kind: effects.SourcePerk, Level: 1,
				Effects: []effects.Definition{
					effects.NewBuilder(effects.KindApplyActiveEffect).
						WithTarget(effects.TargetTarget).
						WithKey(character.PathHP, "").
						WithOverTime(effects.TriggerEachRound, character.PathHP, effects.ModeAdd, "-2 * @level").
						ForRounds(3).
						Build(),
				},
			}},
		},
	}

	return []*character.Character{aiko, mika, goblin}
}
