package idiombench

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/variants"
)

// ErrNotEquivalent is returned by verify when a group has disagreeing variants.
var ErrNotEquivalent = errors.New("variants are not equivalent")

// verifyCmd implements 'verify', which checks that every variant in a group
// returns the same result as the group's first variant at each size.
var verifyCmd = &cobra.Command{
	Use:   "verify [filter]",
	Short: "Check that the variants of each group return identical results",
	Long: `Verify runs every variant of the groups whose name matches the filter at each configured
size, or at 0, 1, 5, 25, 125 and 1000 when no sizes are configured, and compares the outputs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration not loaded")
		}
		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}

		pass := color.New(color.FgGreen).SprintFunc()
		fail := color.New(color.FgRed).SprintFunc()
		if cfg.NoColor {
			pass = fmt.Sprint
			fail = fmt.Sprint
		}

		match := benchmark.MatchFilter(filter)
		out := cmd.OutOrStdout()
		checked, failed := 0, 0
		for _, g := range variants.Groups() {
			if !match(g.Name) {
				continue
			}
			checked++
			if err := g.Verify(cfg.Sizes); err != nil {
				failed++
				fmt.Fprintf(out, "%s %s\n%v\n", fail("FAIL"), g.Name, err)
				continue
			}
			fmt.Fprintf(out, "%s %s (%d variants)\n", pass("ok"), g.Name, len(g.Variants))
		}

		if checked == 0 {
			fmt.Fprintln(out, "No groups matched.")
			return nil
		}
		if failed > 0 {
			return fmt.Errorf("%w: %d of %d groups", ErrNotEquivalent, failed, checked)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
