package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ova-combat/internal/combat"
	"github.com/KirkDiggler/ova-combat/internal/command"
	"github.com/KirkDiggler/ova-combat/internal/domain/character"
	"github.com/KirkDiggler/ova-combat/internal/domain/encounter"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/KirkDiggler/ova-combat/internal/notify"
	"github.com/KirkDiggler/ova-combat/internal/services"
	combatService "github.com/KirkDiggler/ova-combat/internal/services/combat"
	encounterService "github.com/KirkDiggler/ova-combat/internal/services/encounter"
)

const playHelp = `play loads a roster, rolls initiative and reads actions line by line.

  /a 3 2            roll a chat command as whoever's turn it is
  Goblin: /d        act as a named character
  use Katana @Goblin
  cast Ward @Aiko
  defend evasion
  counter Katana
  next | status | help | quit`

var (
	playRoster string
	playName   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run an encounter at the terminal",
	Long:  playHelp,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		chars, err := loadRoster(playRoster)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		t, err := openTable(ctx, a.provider, chars, playName, out)
		if err != nil {
			return err
		}
		a.bus.Subscribe(t.printer())

		return t.run(ctx, cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVarP(&playRoster, "roster", "r", "", "YAML roster of characters (defaults to a demo party)")
	playCmd.Flags().StringVarP(&playName, "name", "n", "Skirmish", "Encounter name")
}

// table runs one encounter for the play command
type table struct {
	provider    *services.Provider
	out         io.Writer
	encounterID string
	names       map[string]string
	byName      map[string]string
}

func openTable(ctx context.Context, provider *services.Provider, chars []*character.Character, name string, out io.Writer) (*table, error) {
	t := &table{
		provider: provider,
		out:      out,
		names:    make(map[string]string),
		byName:   make(map[string]string),
	}

	enc, err := provider.EncounterService.CreateEncounter(ctx, &encounterService.CreateEncounterInput{
		Name:   name,
		UserID: "terminal",
	})
	if err != nil {
		return nil, err
	}
	t.encounterID = enc.ID

	for _, c := range chars {
		if err := provider.CharacterService.ImportCharacter(ctx, c); err != nil {
			return nil, err
		}
		if _, err := provider.EncounterService.AddCombatant(ctx, enc.ID, c.ID); err != nil {
			return nil, err
		}
		t.names[c.ID] = c.Name
		t.byName[strings.ToLower(c.Name)] = c.ID
	}

	rolls, err := provider.EncounterService.RollInitiative(ctx, enc.ID)
	if err != nil {
		return nil, err
	}
	if err := provider.EncounterService.StartEncounter(ctx, enc.ID); err != nil {
		return nil, err
	}

	enc, err = provider.EncounterService.GetEncounter(ctx, enc.ID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "%s begins\n", enc.Name)
	for _, id := range enc.TurnOrder {
		c := enc.Combatants[id]
		fmt.Fprintf(out, "  %-10s initiative %s\n", c.Name, describeRoll(rolls[id]))
	}
	t.announce(enc)
	return t, nil
}

func (t *table) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(t.out, "> ")
		if !scanner.Scan() {
			break
		}
		quit, err := t.handle(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(t.out, "  error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return ovaerr.Wrap(err, "failed to read input")
	}
	return t.provider.EncounterService.EndEncounter(ctx, t.encounterID)
}

// handle runs one line of input and reports whether play should stop
func (t *table) handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, t.provider.EncounterService.EndEncounter(ctx, t.encounterID)
	case "next":
		return false, t.next(ctx)
	case "status":
		return false, t.status(ctx)
	case "help":
		fmt.Fprintln(t.out, playHelp)
		return false, nil
	}

	actorID := ""
	if name, rest, ok := strings.Cut(line, ":"); ok && !command.IsCommand(name) {
		id, found := t.byName[strings.ToLower(strings.TrimSpace(name))]
		if !found {
			return false, ovaerr.NotFoundf("no one called %s", strings.TrimSpace(name))
		}
		actorID, line = id, strings.TrimSpace(rest)
	}
	if actorID == "" {
		enc, err := t.provider.EncounterService.GetEncounter(ctx, t.encounterID)
		if err != nil {
			return false, err
		}
		current := enc.GetCurrentCombatant()
		if current == nil {
			return false, ovaerr.Validationf("no one is acting")
		}
		actorID = current.CharacterID
	}

	line, targetIDs, err := t.targets(line)
	if err != nil {
		return false, err
	}

	var result *combatService.RollResult
	if command.IsCommand(line) {
		result, err = t.provider.CombatService.SubmitCommand(ctx, &combatService.CommandInput{
			EncounterID: t.encounterID,
			ActorID:     actorID,
			Text:        line,
			TargetIDs:   targetIDs,
		})
	} else {
		var input *combatService.SubmitRollInput
		input, err = t.action(ctx, actorID, line)
		if err != nil {
			return false, err
		}
		input.TargetIDs = targetIDs
		result, err = t.provider.CombatService.SubmitRoll(ctx, input)
	}
	if err != nil {
		return false, err
	}

	t.report(actorID, result)
	return false, nil
}

// targets strips trailing @Name tokens from line
func (t *table) targets(line string) (string, []string, error) {
	fields := strings.Fields(line)
	var rest []string
	var ids []string
	for _, f := range fields {
		if !strings.HasPrefix(f, "@") {
			rest = append(rest, f)
			continue
		}
		id, ok := t.byName[strings.ToLower(strings.TrimPrefix(f, "@"))]
		if !ok {
			return "", nil, ovaerr.NotFoundf("no one called %s", strings.TrimPrefix(f, "@"))
		}
		ids = append(ids, id)
	}
	return strings.Join(rest, " "), ids, nil
}

// action turns a worded action into a roll
func (t *table) action(ctx context.Context, actorID, line string) (*combatService.SubmitRollInput, error) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	input := &combatService.SubmitRollInput{
		EncounterID: t.encounterID,
		ActorID:     actorID,
	}

	switch strings.ToLower(verb) {
	case "defend":
		input.Type = combat.RollDefense
		input.Defense = strings.ToLower(rest)
		return input, nil
	case "use", "counter", "cast":
	default:
		return nil, ovaerr.InvalidArgumentf("unknown action %q, try help", verb)
	}

	char, err := t.provider.CharacterService.GetCharacter(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(verb, "cast") {
		for _, s := range char.Spells {
			if strings.EqualFold(s.ID, rest) || strings.EqualFold(s.Name, rest) {
				input.Type = combat.RollSpell
				input.SpellID = s.ID
				return input, nil
			}
		}
		return nil, ovaerr.NotFoundf("%s has no spell %s", char.Name, rest)
	}

	for _, a := range char.Attacks {
		if strings.EqualFold(a.ID, rest) || strings.EqualFold(a.Name, rest) {
			input.Type = combat.RollAttack
			if strings.EqualFold(verb, "counter") {
				input.Type = combat.RollCounter
			}
			input.AttackID = a.ID
			return input, nil
		}
	}
	return nil, ovaerr.NotFoundf("%s has no attack %s", char.Name, rest)
}

func (t *table) report(actorID string, result *combatService.RollResult) {
	res := result.Resolution
	fmt.Fprintf(t.out, "%s rolls %s\n", t.names[actorID], describeRoll(res.Record.Roll))

	switch res.Outcome {
	case combat.OutcomePending:
		fmt.Fprintln(t.out, "  waiting for a defense or counter")
	case combat.OutcomeFlavor:
	case combat.OutcomeBonusMerged:
		fmt.Fprintf(t.out, "  %s's roll is now %d\n", t.names[res.Against.AuthorID], res.Against.Result())
	default:
		fmt.Fprintf(t.out, "  %s by %d\n", res.Outcome, res.Delta)
	}
	if res.StaleCleared {
		fmt.Fprintln(t.out, "  the earlier attack went unanswered")
	}
	for _, g := range res.Grants {
		fmt.Fprintf(t.out, "  %s gains %s\n", t.names[g.ActorID], g.Effect.Label)
	}
	for _, err := range res.EffectErrors {
		fmt.Fprintf(t.out, "  effect failed: %v\n", err)
	}
}

func (t *table) next(ctx context.Context) error {
	turn, err := t.provider.EncounterService.NextTurn(ctx, t.encounterID)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(turn.Ticks))
	for id := range turn.Ticks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		tick := turn.Ticks[id]
		for _, e := range tick.Expired {
			fmt.Fprintf(t.out, "  %s's %s wears off\n", t.names[id], e.Label)
		}
	}

	enc, err := t.provider.EncounterService.GetEncounter(ctx, t.encounterID)
	if err != nil {
		return err
	}
	t.announce(enc)
	return nil
}

func (t *table) status(ctx context.Context) error {
	enc, err := t.provider.EncounterService.GetEncounter(ctx, t.encounterID)
	if err != nil {
		return err
	}
	for _, id := range enc.TurnOrder {
		c := enc.Combatants[id]
		char, err := t.provider.CharacterService.GetCharacter(ctx, c.CharacterID)
		if err != nil {
			return err
		}
		fmt.Fprintf(t.out, "  %-10s hp %g/%g  endurance %g/%g  drama %g\n", char.Name,
			char.Stats.Number(character.PathHP), char.Stats.Number(character.PathHPMax),
			char.Stats.Number(character.PathEndurance), char.Stats.Number(character.PathEnduranceMax),
			char.Stats.Number(character.PathDramaFree))
		for _, e := range char.ActiveEffects {
			fmt.Fprintf(t.out, "    %s\n", e.Label)
		}
	}
	return nil
}

func (t *table) announce(enc *encounter.Encounter) {
	if current := enc.GetCurrentCombatant(); current != nil {
		fmt.Fprintf(t.out, "Round %d: %s's turn\n", enc.Round, current.Name)
	}
}

func (t *table) printer() notify.Listener {
	return &poolPrinter{out: t.out, names: t.names}
}

// poolPrinter writes pool changes as they are broadcast
type poolPrinter struct {
	mu    sync.Mutex
	out   io.Writer
	names map[string]string
}

func (p *poolPrinter) HandleNotification(_ context.Context, n *notify.Notification) error {
	if n.Kind != notify.KindPoolChange {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range n.TargetIDs {
		fmt.Fprintf(p.out, "  %s %s %+g\n", p.names[id], n.Path, n.Delta)
	}
	return nil
}

func (p *poolPrinter) Priority() int { return 100 }

func (p *poolPrinter) ID() string { return "pool-printer" }
