package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mchmarny/sidenav/pkg/level"
	"github.com/mchmarny/sidenav/pkg/menu"
)

// unmatched is printed for paths no rule classifies.
const unmatched = "-"

func newClassifyCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "classify PATH...",
		Short: "Print the menu level of each URL path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := r.site(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range args {
				l, ok := site.Classifier.Classify(p)
				name := l.String()
				if !ok {
					name = unmatched
				}
				fmt.Fprintf(out, "%s\t%s\n", p, name)
			}
			return nil
		},
	}
}

func newRulesCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the route classification rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := r.site(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, rule := range site.Classifier.Rules() {
				match := "contains"
				if rule.Match == level.MatchExact {
					match = "exact"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", match, rule.Pattern, rule.Level)
			}
			return nil
		},
	}
}

func newKeysCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "keys SURFACE",
		Short: "Print the allowed keys of a versioned reference surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := r.site(cmd.Context())
			if err != nil {
				return err
			}

			keys, err := site.Assembler.AllowedKeys(level.Level(args[0]))
			if err != nil {
				return err
			}
			if keys == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is not versioned, every catalog entry is shown\n", args[0])
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(keys, "\n"))
			return nil
		},
	}
}

func newTreeCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "tree PATH",
		Short: "Print the side navigation shown for a URL path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := r.site(cmd.Context())
			if err != nil {
				return err
			}

			m := site.MenuFor(args[0])
			l, ok := m.ActiveList()
			if !ok {
				return fmt.Errorf("no menu level for %s", args[0])
			}

			printTree(cmd.OutOrStdout(), l)
			return nil
		},
	}
}

type treeStyles struct {
	title    lipgloss.Style
	category lipgloss.Style
	entry    lipgloss.Style
	href     lipgloss.Style
}

func newTreeStyles(w io.Writer) treeStyles {
	re := lipgloss.NewRenderer(w)
	return treeStyles{
		title:    re.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5c2e7")),
		category: re.NewStyle().Bold(true).Foreground(lipgloss.Color("#b4befe")),
		entry:    re.NewStyle().Foreground(lipgloss.Color("#cdd6f4")),
		href:     re.NewStyle().Foreground(lipgloss.Color("#6c7086")),
	}
}

func printTree(w io.Writer, l menu.List) {
	st := newTreeStyles(w)

	header := fmt.Sprintf("%s (%s)", l.Title, l.ID)
	if l.Versioned {
		header += fmt.Sprintf(" %d allowed keys", len(l.AllowedKeys))
	}
	fmt.Fprintln(w, st.title.Render(header))
	printItems(w, st, l.Items, 1)
}

func printItems(w io.Writer, st treeStyles, items []menu.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		if it.Href == "" {
			fmt.Fprintln(w, indent+st.category.Render(it.Title))
		} else {
			fmt.Fprintln(w, indent+st.entry.Render(it.Title)+"  "+st.href.Render(it.Href))
		}
		printItems(w, st, it.Items, depth+1)
	}
}
