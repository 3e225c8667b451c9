package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/kestrel-ai/kestrel/internal/config"
)

// pipesCmd lists the pipes of a configuration file together with their
// resolved references. An optional glob pattern filters by pipe name.
var pipesCmd = &cobra.Command{
	Use:   "pipes [pattern]",
	Short: "List pipes and their resolved references",
	Long: `Pipes lists every pipeline stage with the llm, embedder, engine and
document store it references. An optional glob pattern (e.g. 'sql_*')
filters the list by pipe name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath())
		if err != nil {
			return err
		}

		matcher := glob.MustCompile("*")
		if len(args) == 1 {
			matcher, err = glob.Compile(args[0])
			if err != nil {
				return fmt.Errorf("invalid pattern %q: %w", args[0], err)
			}
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		defer w.Flush()

		matched := 0
		for _, p := range cfg.Pipes {
			if !matcher.Match(p.Name) {
				continue
			}
			matched++
			fmt.Fprintf(w, "%s\t%s\n", p.Name, formatRefs(p))
		}
		if matched == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no pipes matched")
		}
		return nil
	},
}

func formatRefs(p config.Pipe) string {
	var refs []string
	if p.LLM != "" {
		refs = append(refs, "llm="+p.LLM)
	}
	if p.Embedder != "" {
		refs = append(refs, "embedder="+p.Embedder)
	}
	if p.Engine != "" {
		refs = append(refs, "engine="+p.Engine)
	}
	if p.DocumentStore != "" {
		refs = append(refs, "document_store="+p.DocumentStore)
	}
	if len(refs) == 0 {
		return "-"
	}
	return strings.Join(refs, " ")
}

func init() {
	rootCmd.AddCommand(pipesCmd)
}
