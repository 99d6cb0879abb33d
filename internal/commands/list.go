package idiombench

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/variants"
)

var (
	groupStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	detailStyle = lipgloss.NewStyle().Faint(true)
)

// listCmd implements 'list', which prints registered benchmark names grouped
// by variant group without measuring anything.
var listCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List registered benchmarks",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration not loaded")
		}
		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}

		reg, err := buildRegistry(*cfg)
		if err != nil {
			return err
		}
		entries := benchmark.Select(reg, filter)
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No benchmarks matched.")
			return nil
		}

		byGroup := make(map[string][]string)
		for _, e := range entries {
			byGroup[e.Group] = append(byGroup[e.Group], e.Name())
		}
		style := func(s lipgloss.Style, text string) string {
			if cfg.NoColor {
				return text
			}
			return s.Render(text)
		}

		var sections []string
		for _, g := range variants.Groups() {
			names, ok := byGroup[g.Name]
			if !ok {
				continue
			}
			var b strings.Builder
			b.WriteString(style(groupStyle, g.Name))
			b.WriteString(" ")
			b.WriteString(style(detailStyle, fmt.Sprintf("(%s; %s input)", g.Description, g.Kind)))
			b.WriteString("\n")
			for _, name := range names {
				b.WriteString("  ")
				b.WriteString(name)
				b.WriteString("\n")
			}
			sections = append(sections, b.String())
		}
		fmt.Fprint(out, strings.Join(sections, "\n"))
		fmt.Fprintf(out, "\n%d of %d benchmarks\n", len(entries), reg.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
