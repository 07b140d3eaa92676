package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetropet/internal/config"
	"github.com/vovakirdan/tetropet/internal/core"
	"github.com/vovakirdan/tetropet/internal/games/pet"
	"github.com/vovakirdan/tetropet/internal/storage"
)

var (
	flagPetSlot    string
	flagPetSpecies string
	flagPetForce   bool
)

var petCmd = &cobra.Command{
	Use:   "pet",
	Short: "Inspect and manage the saved pet",
	Long: `Work with the saved pet without starting the game.

Time away is applied when the pet is loaded, so status shows the
pet as it is right now.

Examples:
  tetropet pet status
  tetropet pet adopt Biscuit --species dog
  tetropet pet buy ball 50
  tetropet pet release
  tetropet pet list
  tetropet pet status --slot alice`,
}

var petStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pet's stats",
	Args:  cobra.NoArgs,
	RunE:  runPetStatus,
}

var petAdoptCmd = &cobra.Command{
	Use:   "adopt [name]",
	Short: "Adopt a new pet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPetAdopt,
}

var petBuyCmd = &cobra.Command{
	Use:   "buy <item> <cost>",
	Short: "Spend coins on an item",
	Args:  cobra.ExactArgs(2),
	RunE:  runPetBuy,
}

var petReleaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Release the pet and clear its saved state",
	Args:  cobra.NoArgs,
	RunE:  runPetRelease,
}

var petListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved pets in every slot",
	Args:  cobra.NoArgs,
	RunE:  runPetList,
}

func init() {
	petCmd.PersistentFlags().StringVar(&flagPetSlot, "slot", localSlot, "Pet slot (SSH users are stored under their user name)")
	petCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pet config YAML")
	petAdoptCmd.Flags().StringVar(&flagPetSpecies, "species", "", "Species: cat, dog, bird, rabbit")
	petAdoptCmd.Flags().BoolVar(&flagPetForce, "force", false, "Replace an existing pet")

	petCmd.AddCommand(petStatusCmd, petAdoptCmd, petBuyCmd, petReleaseCmd, petListCmd)
}

// petSession is a Sim loaded from the database for one command.
type petSession struct {
	store *storage.Store
	sim   *pet.Sim
}

func openPet(ctx context.Context) (*petSession, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pc, err := config.LoadPet(flagConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	sim := pet.NewSim(core.NewTickScheduler(time.Now()), pet.Options{
		Persister: storage.NewPetSlot(store, flagPetSlot),
		Logger:    log.Default().WithPrefix("pet"),
		Config:    &pc,
	})
	if err := sim.Load(ctx); err != nil && !errors.Is(err, pet.ErrNoPet) {
		store.Close()
		return nil, err
	}

	return &petSession{store: store, sim: sim}, nil
}

// close saves the pet, if any, and releases the database.
func (p *petSession) close(ctx context.Context) error {
	err := p.sim.Close(ctx)
	p.store.Close()
	return err
}

func runPetStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	ps, err := openPet(ctx)
	if err != nil {
		return err
	}
	defer ps.close(ctx) //nolint:errcheck // best-effort save of time away

	p := ps.sim.Pet()
	if p == nil {
		fmt.Fprintln(out, "No pet yet. Run 'tetropet pet adopt' or 'tetropet play pet'.")
		return nil
	}

	fmt.Fprintf(out, "%s %s the %s\n", ps.sim.Emoji(), p.Name, p.Species)
	fmt.Fprintf(out, "Level %d  %s  Coins %s  Age %.1f days\n",
		p.Level, xpProgress(p), humanize.Comma(int64(p.Coins)), p.Age)
	fmt.Fprintf(out, "Mood: %s\n", ps.sim.Mood())
	fmt.Fprintln(out)

	stats := []struct {
		name  string
		value float64
	}{
		{"Happiness", p.Happiness},
		{"Hunger", p.Hunger},
		{"Energy", p.Energy},
		{"Cleanliness", p.Cleanliness},
		{"Health", p.Health},
	}
	for _, s := range stats {
		filled := int(s.value / 5)
		fmt.Fprintf(out, "  %-11s [%s%s] %3.0f\n", s.name,
			strings.Repeat("#", filled), strings.Repeat(".", 20-filled), s.value)
	}
	fmt.Fprintln(out)

	cooldowns := ps.sim.ActivityCooldowns()
	for _, a := range ps.sim.Activities() {
		status := "ready"
		if cd := cooldowns[a.ID]; !cd.CanUse {
			status = "in " + cd.Remaining.Round(time.Second).String()
		}
		fmt.Fprintf(out, "  %s %-9s %s\n", a.Icon, a.Name, status)
	}

	if len(p.Achievements) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Achievements:")
		for _, id := range p.Achievements {
			if a, ok := pet.LookupAchievement(id); ok {
				fmt.Fprintf(out, "  🏆 %s - %s\n", a.Name, a.Description)
			}
		}
	}

	if len(p.Items) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Items: %s\n", strings.Join(p.Items, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Adopted %s", humanize.Time(p.Created))
	if !p.LastSaved.IsZero() {
		fmt.Fprintf(out, ", last saved %s", humanize.Time(p.LastSaved))
	}
	fmt.Fprintln(out)

	for _, text := range ps.sim.NotificationTexts() {
		fmt.Fprintf(out, "» %s\n", text)
	}
	return nil
}

func runPetAdopt(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	ps, err := openPet(ctx)
	if err != nil {
		return err
	}

	if ps.sim.HasPet() && !flagPetForce {
		name := ps.sim.Pet().Name
		ps.close(ctx) //nolint:errcheck // nothing changed
		return fmt.Errorf("slot %q already has %s; use --force to replace", flagPetSlot, name)
	}

	pc, err := config.LoadPet(flagConfig)
	if err != nil {
		pc = config.DefaultPetConfig()
	}
	name := pc.DefaultName
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		name = strings.TrimSpace(args[0])
	}
	speciesName := pc.DefaultSpecies
	if flagPetSpecies != "" {
		speciesName = flagPetSpecies
	}
	species, ok := pet.ParseSpecies(speciesName)
	if !ok {
		ps.close(ctx) //nolint:errcheck // nothing changed
		return fmt.Errorf("unknown species %q", speciesName)
	}

	ps.sim.CreatePet(name, species)
	fmt.Fprintf(out, "%s %s the %s is home!\n", ps.sim.Emoji(), name, species)
	return ps.close(ctx)
}

func runPetBuy(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cost, err := strconv.Atoi(args[1])
	if err != nil || cost < 0 {
		return fmt.Errorf("invalid cost %q", args[1])
	}

	ctx := cmd.Context()
	ps, err := openPet(ctx)
	if err != nil {
		return err
	}
	if !ps.sim.HasPet() {
		ps.close(ctx) //nolint:errcheck // nothing to save
		return pet.ErrNoPet
	}

	if !ps.sim.BuyItem(args[0], cost) {
		coins := ps.sim.Pet().Coins
		ps.close(ctx) //nolint:errcheck // nothing changed
		return fmt.Errorf("not enough coins: have %s, need %s",
			humanize.Comma(int64(coins)), humanize.Comma(int64(cost)))
	}

	fmt.Fprintf(out, "Bought %s. %s coins left.\n", args[0], humanize.Comma(int64(ps.sim.Pet().Coins)))
	return ps.close(ctx)
}

func runPetRelease(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	ps, err := openPet(ctx)
	if err != nil {
		return err
	}
	if !ps.sim.HasPet() {
		fmt.Fprintln(out, "No pet to release.")
		return ps.close(ctx)
	}

	name := ps.sim.Pet().Name
	if err := ps.sim.ResetPet(ctx); err != nil {
		ps.close(ctx) //nolint:errcheck // reporting the reset error
		return err
	}
	fmt.Fprintf(out, "%s has been released.\n", name)
	return ps.close(ctx)
}

func runPetList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	pets, err := store.ListPets(cmd.Context())
	if err != nil {
		return err
	}
	if len(pets) == 0 {
		fmt.Fprintln(out, "No saved pets.")
		return nil
	}

	fmt.Fprintf(out, "  %-12s  %-12s  %-7s  %-5s  %s\n", "Slot", "Name", "Species", "Level", "Saved")
	fmt.Fprintf(out, "  %-12s  %-12s  %-7s  %-5s  %s\n", "----", "----", "-------", "-----", "-----")
	for _, rec := range pets {
		fmt.Fprintf(out, "  %-12s  %-12s  %-7s  %-5d  %s\n",
			rec.Slot, rec.Name, rec.Species, rec.Level, humanize.Time(rec.UpdatedAt))
	}
	return nil
}

// xpProgress shows experience against the current level's threshold.
func xpProgress(p *pet.Pet) string {
	threshold := p.Level * 100
	return fmt.Sprintf("XP %d/%d (%d to next)", p.Experience, threshold, threshold-p.Experience)
}
