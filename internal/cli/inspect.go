package cli

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mddocs/internal/domain"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List resolved types without writing pages",
	Long: `Resolve the configured module and print one row per documented type with
its member counts and ancestor chain.

Examples:
  mddocs inspect
  mddocs inspect --json`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output as JSON")
}

// InspectRow summarises one resolved type.
type InspectRow struct {
	Type         string   `json:"type"`
	Signature    string   `json:"signature"`
	Constructors int      `json:"constructors"`
	Properties   int      `json:"properties"`
	Methods      int      `json:"methods"`
	Fields       int      `json:"fields"`
	Inheritance  []string `json:"inheritance"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	resolver, _, err := newResolver(GetConfig())
	if err != nil {
		return err
	}
	types, err := resolver.ResolveModule()
	if err != nil {
		return err
	}

	rows := inspectRows(types)
	if inspectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	writeInspectTable(os.Stdout, rows)
	return nil
}

func inspectRows(types []*domain.ResolvedType) []InspectRow {
	rows := make([]InspectRow, 0, len(types))
	for _, rt := range types {
		var chain []string
		for _, n := range rt.Inheritance.Chain() {
			chain = append(chain, n.FullName())
		}
		rows = append(rows, InspectRow{
			Type:         rt.Def.FullName(),
			Signature:    rt.Signature,
			Constructors: len(rt.Constructors),
			Properties:   len(rt.Properties),
			Methods:      len(rt.Methods),
			Fields:       len(rt.Fields),
			Inheritance:  chain,
		})
	}
	return rows
}

func writeInspectTable(w io.Writer, rows []InspectRow) {
	x := table.NewWriter()
	x.AppendHeader(table.Row{"type", "ctors", "props", "methods", "fields", "inheritance"})
	for _, r := range rows {
		x.AppendRow(table.Row{r.Type, r.Constructors, r.Properties, r.Methods, r.Fields, strings.Join(r.Inheritance, " → ")})
	}
	x.AppendFooter(table.Row{len(rows), "", "", "", "", ""})
	_, _ = io.WriteString(w, x.Render()+"\n")
}
