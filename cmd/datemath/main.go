package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/mmrzaf/datemath/internal/config"
	"github.com/mmrzaf/datemath/internal/datemath"
	"github.com/mmrzaf/datemath/internal/domain"
	"github.com/mmrzaf/datemath/internal/infra/repos/history"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	tzName    string
	historyDB string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "datemath",
		Short: "Date math expression evaluator",
	}

	rootCmd.PersistentFlags().StringVar(&tzName, "tz", cfg.TZ, "Time zone for rounding and results")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history-db", cfg.HistoryDB, "History database path")

	rootCmd.AddCommand(evalCmd())
	rootCmd.AddCommand(unitsCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type evalResult struct {
	Expression string    `json:"expression" yaml:"expression"`
	Anchor     string    `json:"anchor" yaml:"anchor"`
	Result     time.Time `json:"result" yaml:"result"`
}

func evalCmd() *cobra.Command {
	var format string
	var nowStr string

	cmd := &cobra.Command{
		Use:   "eval <expression> [expression]",
		Short: "Evaluate date math expressions",
		Long: `Evaluate date math expressions.

The first expression is a math suffix (e.g. "/DAY+6MONTHS") applied to this
invocation's implicit now. An optional second expression is a full input
("NOW+1DAY" or "2024-01-01T00:00:00Z/MONTH") evaluated through the absolute
entry point with an explicit now.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(tzName)
			if err != nil {
				return fmt.Errorf("unknown time zone %q: %w", tzName, err)
			}

			p := datemath.New(loc)
			if nowStr != "" {
				anchor, err := time.Parse(time.RFC3339, nowStr)
				if err != nil {
					return fmt.Errorf("invalid --now value %q: %w", nowStr, err)
				}
				p.SetNow(anchor.In(loc))
			}

			results := make([]evalResult, 0, 2)

			first, err := p.Eval(args[0])
			if err != nil {
				return err
			}
			results = append(results, evalResult{
				Expression: args[0],
				Anchor:     "implicit now",
				Result:     first,
			})

			if len(args) > 1 {
				now := p.Now()
				second, err := datemath.ParseIn(&now, args[1], loc)
				if err != nil {
					return err
				}
				results = append(results, evalResult{
					Expression: args[1],
					Anchor:     now.Format(time.RFC3339Nano),
					Result:     second,
				})
			}

			return printResults(results, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table|json|yaml)")
	cmd.Flags().StringVar(&nowStr, "now", "", "Explicit anchor (RFC 3339) instead of the wall clock")
	return cmd
}

func printResults(results []evalResult, format string) error {
	switch format {
	case "json":
		return printJSON(results)
	case "yaml":
		data, err := yaml.Marshal(results)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "EXPRESSION\tANCHOR\tRESULT")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Expression, r.Anchor, r.Result.Format(time.RFC3339Nano))
		}
		return w.Flush()
	}
}

func unitsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List supported unit aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			units := datemath.Units()
			aliases := make([]string, 0, len(units))
			for alias := range units {
				aliases = append(aliases, alias)
			}
			sort.Strings(aliases)

			list := make([]domain.UnitAlias, 0, len(aliases))
			for _, alias := range aliases {
				list = append(list, domain.UnitAlias{Alias: alias, Unit: units[alias].String()})
			}

			switch format {
			case "json":
				return printJSON(list)
			case "yaml":
				data, err := yaml.Marshal(list)
				if err != nil {
					return err
				}
				fmt.Print(string(data))
				return nil
			default:
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ALIAS\tUNIT")
				for _, u := range list {
					fmt.Fprintf(w, "%s\t%s\n", u.Alias, u.Unit)
				}
				return w.Flush()
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table|json|yaml)")
	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded evaluations",
	}

	var limit int
	var status string
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := history.NewSQLiteRepository(historyDB)
			if err := repo.Init(); err != nil {
				return err
			}
			defer repo.Close()

			list, err := repo.List(limit, status)
			if err != nil {
				return err
			}

			if format == "json" {
				return printJSON(list)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tINPUT\tTZ\tSTATUS\tEVALUATED")
			for _, ev := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					ev.ID[:8], ev.Input, ev.TZ, ev.Status, ev.EvaluatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Limit results")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status (ok|error)")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := history.NewSQLiteRepository(historyDB)
			if err := repo.Init(); err != nil {
				return err
			}
			defer repo.Close()

			ev, err := repo.Get(args[0])
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(ev)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
