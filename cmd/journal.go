package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/radiantjournal/radiant/internal/export"
	"github.com/radiantjournal/radiant/internal/journal"
	"github.com/radiantjournal/radiant/internal/tui"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Affirmations, goals, traits and vision boards",
	Args:    cobra.NoArgs,
	Long:    `Edit the journal: affirmations, traits, standards, daily reminders, routines, goals and vision boards.`,
	RunE:    runJournalShow,
}

var journalShowRaw bool

var journalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the whole journal",
	Args:  cobra.NoArgs,
	RunE:  runJournalShow,
}

var journalRoutineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Morning and evening routines",
}

var journalRoutineSetCmd = &cobra.Command{
	Use:   "set <morning|evening> <text>",
	Short: "Replace a routine",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runJournalRoutineSet,
}

var journalGoalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Goals by life area",
}

var journalGoalSetCmd = &cobra.Command{
	Use:   "set <" + strings.Join(journal.GoalAreas, "|") + "> <text>",
	Short: "Replace the goal for an area",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runJournalGoalSet,
}

var journalVisionCmd = &cobra.Command{
	Use:     "vision",
	Aliases: []string{"v"},
	Short:   "Vision board images",
	Args:    cobra.NoArgs,
	RunE:    runJournalVisionList,
}

var visionLabel string

var journalVisionAddCmd = &cobra.Command{
	Use:   "add <board> <uri>",
	Short: "Add an image to a board",
	Long: `Add an image reference to a vision board.

Boards: role-models, lifestyle, body-goals, success-symbols, inspiration`,
	Args: cobra.ExactArgs(2),
	RunE: runJournalVisionAdd,
}

var journalVisionRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Remove an image by ID (or the first 8+ characters of it), or pick one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalVisionRm,
}

var journalVisionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List images on every board",
	Args:  cobra.NoArgs,
	RunE:  runJournalVisionList,
}

// textList describes one of the journal's plain string lists.
type textList struct {
	use     string
	aliases []string
	noun    string
	get     func(*journal.Data) []string
	add     func(*journal.Data, string) error
	remove  func(*journal.Data, int) (string, error)
}

var textLists = []textList{
	{
		use: "affirm", aliases: []string{"affirmation", "a"}, noun: "affirmation",
		get:    func(d *journal.Data) []string { return d.Affirmations },
		add:    (*journal.Data).AddAffirmation,
		remove: (*journal.Data).RemoveAffirmation,
	},
	{
		use: "trait", aliases: []string{"traits"}, noun: "trait",
		get:    func(d *journal.Data) []string { return d.Traits },
		add:    (*journal.Data).AddTrait,
		remove: (*journal.Data).RemoveTrait,
	},
	{
		use: "standard", aliases: []string{"standards"}, noun: "standard",
		get:    func(d *journal.Data) []string { return d.Standards },
		add:    (*journal.Data).AddStandard,
		remove: (*journal.Data).RemoveStandard,
	},
	{
		use: "reminder", aliases: []string{"reminders"}, noun: "reminder",
		get:    func(d *journal.Data) []string { return d.DailyReminders },
		add:    (*journal.Data).AddReminder,
		remove: (*journal.Data).RemoveReminder,
	},
}

func init() {
	journalShowCmd.Flags().BoolVar(&journalShowRaw, "raw", false, "print markdown without rendering")
	journalVisionAddCmd.Flags().StringVarP(&visionLabel, "label", "l", "", "caption for the image")

	journalCmd.AddCommand(journalShowCmd)
	for _, l := range textLists {
		journalCmd.AddCommand(newTextListCmd(l))
	}

	journalRoutineCmd.AddCommand(journalRoutineSetCmd)
	journalCmd.AddCommand(journalRoutineCmd)

	journalGoalCmd.AddCommand(journalGoalSetCmd)
	journalCmd.AddCommand(journalGoalCmd)

	journalVisionCmd.AddCommand(journalVisionAddCmd)
	journalVisionCmd.AddCommand(journalVisionRmCmd)
	journalVisionCmd.AddCommand(journalVisionListCmd)
	journalCmd.AddCommand(journalVisionCmd)
}

func newTextListCmd(l textList) *cobra.Command {
	parent := &cobra.Command{
		Use:     l.use,
		Aliases: l.aliases,
		Short:   fmt.Sprintf("List, add or remove %ss", l.noun),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextListShow(cmd, l)
		},
	}
	parent.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a " + l.noun,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTextListAdd(cmd, l, strings.Join(args, " "))
		},
	})
	parent.AddCommand(&cobra.Command{
		Use:     "rm [number]",
		Aliases: []string{"remove"},
		Short:   "Remove a " + l.noun + " by its list number, or pick one",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTextListPick(cmd, l)
			}
			return runTextListRm(cmd, l, args[0])
		},
	})
	parent.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List " + l.noun + "s",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextListShow(cmd, l)
		},
	})
	return parent
}

func runTextListShow(cmd *cobra.Command, l textList) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	d := s.journal.Load(cmdContext(cmd))
	items := l.get(&d)
	if len(items) == 0 {
		fmt.Printf("  No %ss yet.\n", l.noun)
		ui.Tip(fmt.Sprintf("`radiant journal %s add \"...\"` to add one.", l.use))
		return nil
	}
	for i, item := range items {
		fmt.Printf("  %s %s\n", ui.Muted.Render(fmt.Sprintf("%2d.", i+1)), item)
	}
	return nil
}

func runTextListAdd(cmd *cobra.Command, l textList, text string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := s.journal.Update(cmdContext(cmd), func(d *journal.Data) error {
		return l.add(d, text)
	})
	if err != nil {
		return fmt.Errorf("adding %s: %w", l.noun, err)
	}
	ui.Ok(fmt.Sprintf("Added %s #%d", l.noun, len(l.get(&d))))
	return nil
}

func runTextListRm(cmd *cobra.Command, l textList, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return fmt.Errorf("invalid %s number %q (use the number shown by `radiant journal %s`)", l.noun, arg, l.use)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var removed string
	if _, err := s.journal.Update(cmdContext(cmd), func(d *journal.Data) error {
		var rmErr error
		removed, rmErr = l.remove(d, n-1)
		return rmErr
	}); err != nil {
		return fmt.Errorf("removing %s: %w", l.noun, err)
	}
	ui.Ok(fmt.Sprintf("Removed %s: %s", l.noun, removed))
	return nil
}

// runTextListPick lets the user choose the entry to remove.
func runTextListPick(cmd *cobra.Command, l textList) error {
	if !tui.IsTTY() {
		return fmt.Errorf("which %s? pass its number (see `radiant journal %s`)", l.noun, l.use)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	d := s.journal.Load(cmdContext(cmd))
	items := l.get(&d)
	if len(items) == 0 {
		fmt.Printf("  No %ss to remove.\n", l.noun)
		return nil
	}
	entries := make([]tui.Entry, len(items))
	for i, item := range items {
		entries[i] = tui.Entry{Index: i, Text: item}
	}

	e, ok, err := tui.PickEntry(entries, tui.WithTitle("Remove which "+l.noun+"?"))
	if err != nil || !ok {
		return err
	}
	return runTextListRm(cmd, l, strconv.Itoa(e.Index+1))
}

func runJournalShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmdContext(cmd)
	b := export.New(s.journal.Load(ctx), s.activity.Load(ctx), clock.Now())
	return ui.WriteMarkdown(os.Stdout, export.Markdown(b), journalShowRaw)
}

func runJournalRoutineSet(cmd *cobra.Command, args []string) error {
	kind, text := args[0], strings.Join(args[1:], " ")

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.journal.Update(cmdContext(cmd), func(d *journal.Data) error {
		return d.SetRoutine(kind, text)
	}); err != nil {
		return fmt.Errorf("setting routine: %w", err)
	}
	ui.Ok(fmt.Sprintf("Saved your %s routine", strings.ToLower(kind)))
	return nil
}

func runJournalGoalSet(cmd *cobra.Command, args []string) error {
	area, text := args[0], strings.Join(args[1:], " ")

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.journal.Update(cmdContext(cmd), func(d *journal.Data) error {
		return d.SetGoal(area, text)
	}); err != nil {
		return fmt.Errorf("setting goal: %w", err)
	}
	ui.Ok(fmt.Sprintf("Saved your %s goal", strings.ToLower(area)))
	return nil
}

func runJournalVisionAdd(cmd *cobra.Command, args []string) error {
	c, err := journal.ParseCategory(args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var img journal.VisionImage
	if _, err := s.journal.Update(cmdContext(cmd), func(d *journal.Data) error {
		var addErr error
		img, addErr = d.AddVisionImage(c, args[1], visionLabel, clock.Now())
		return addErr
	}); err != nil {
		return fmt.Errorf("adding image: %w", err)
	}
	ui.Ok(fmt.Sprintf("Added to %s %s", c.Title(), ui.Muted.Render(shortID(img.ID))))
	return nil
}

func runJournalVisionRm(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmdContext(cmd)
	var id string
	if len(args) > 0 {
		id = args[0]
	} else if id, err = pickVisionImage(s.journal.Load(ctx)); err != nil || id == "" {
		return err
	}

	var img journal.VisionImage
	if _, err := s.journal.Update(ctx, func(d *journal.Data) error {
		var rmErr error
		img, rmErr = d.RemoveVisionImage(id)
		return rmErr
	}); err != nil {
		return fmt.Errorf("removing image: %w", err)
	}
	ui.Ok("Removed " + img.URI)
	return nil
}

func runJournalVisionList(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	d := s.journal.Load(cmdContext(cmd))
	images := d.AllVisionImages()
	if len(images) == 0 {
		fmt.Println("  Your vision boards are empty.")
		ui.Tip("`radiant journal vision add lifestyle <uri>` to pin your first image.")
		return nil
	}

	var current journal.Category
	for _, img := range images {
		if img.Category != current {
			current = img.Category
			ui.Header(ui.IconImage + " " + current.Title())
		}
		line := fmt.Sprintf("  %s  %s", ui.Muted.Render(shortID(img.ID)), img.URI)
		if img.Label != "" {
			line += "  " + ui.Accent.Render(img.Label)
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}

// pickVisionImage returns the ID of the image the user picks, or "" when
// they back out.
func pickVisionImage(d journal.Data) (string, error) {
	if !tui.IsTTY() {
		return "", fmt.Errorf("which image? pass its ID (see `radiant journal vision list`)")
	}
	images := d.AllVisionImages()
	if len(images) == 0 {
		fmt.Println("  Your vision boards are empty.")
		return "", nil
	}

	entries := make([]tui.Entry, len(images))
	for i, img := range images {
		text := img.URI
		if img.Label != "" {
			text = img.Label + " (" + img.URI + ")"
		}
		entries[i] = tui.Entry{Index: i, Text: text, Detail: img.Category.Title()}
	}
	e, ok, err := tui.PickEntry(entries, tui.WithTitle("Remove which image?"))
	if err != nil || !ok {
		return "", err
	}
	return images[e.Index].ID, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
