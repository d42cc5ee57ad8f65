package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"platformsdk/internal/logger"
	"platformsdk/pkg/models"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the invoice field and relation tables",
	Long: `Print the declared fields of the invoice record with their types and
format hints, the relations with their keys and include names, and the
include value accepted by the platform API.`,
	Example: `  # Print the tables
  platformsdk schema

  # Print them as JSON
  platformsdk schema --json`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

// SchemaOutput is the JSON description of a record schema
type SchemaOutput struct {
	Name      string         `json:"name"`
	Fields    []FieldInfo    `json:"fields"`
	Relations []RelationInfo `json:"relations"`
	Include   string         `json:"include"`
}

// FieldInfo describes one declared field
type FieldInfo struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Format string   `json:"format,omitempty"`
	Enum   []string `json:"enum,omitempty"`
}

// RelationInfo describes one declared relation
type RelationInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Kind        string   `json:"kind"`
	Target      string   `json:"target"`
	PrimaryKey  string   `json:"primary_key"`
	ForeignKey  string   `json:"foreign_key"`
	Polymorphic string   `json:"polymorphic,omitempty"`
	Include     string   `json:"include,omitempty"`
	Embedded    bool     `json:"embedded"`
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().Bool("json", false, "Print the schema as JSON")
}

// describeInvoiceSchema builds the description of models.InvoiceSchema
func describeInvoiceSchema() SchemaOutput {
	s := models.InvoiceSchema
	out := SchemaOutput{
		Name:    s.Name(),
		Include: s.IncludeNames().QueryValue(),
	}
	for _, f := range s.Fields() {
		out.Fields = append(out.Fields, FieldInfo{
			Name:   f.Name,
			Type:   string(f.Type),
			Format: string(f.Format),
			Enum:   f.Enum,
		})
	}
	for _, r := range s.Relations() {
		out.Relations = append(out.Relations, RelationInfo{
			Name:        r.Name,
			Aliases:     r.Aliases,
			Kind:        string(r.Kind),
			Target:      r.Target,
			PrimaryKey:  r.PrimaryKey,
			ForeignKey:  r.ForeignKey,
			Polymorphic: r.Polymorphic,
			Include:     r.Include,
			Embedded:    r.Embedded(),
		})
	}
	return out
}

func printSchema(out io.Writer, desc SchemaOutput) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s fields\n\n", desc.Name)
	fmt.Fprintln(tw, "FIELD\tTYPE\tFORMAT")
	for _, f := range desc.Fields {
		format := f.Format
		if len(f.Enum) > 0 {
			format = "enum: " + strings.Join(f.Enum, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Type, format)
	}

	fmt.Fprintf(tw, "\n%s relations\n\n", desc.Name)
	fmt.Fprintln(tw, "RELATION\tKIND\tTARGET\tKEYS\tINCLUDE\tALIASES")
	for _, r := range desc.Relations {
		keys := r.PrimaryKey + " <- " + r.ForeignKey
		if r.Polymorphic != "" {
			keys += " (" + r.Polymorphic + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Kind, r.Target, keys, r.Include, strings.Join(r.Aliases, ", "))
	}

	fmt.Fprintf(tw, "\ninclude=%s\n", desc.Include)
	return tw.Flush()
}

func runSchema(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("schema")
	asJSON, _ := cmd.Flags().GetBool("json")

	desc := describeInvoiceSchema()
	if asJSON {
		return writeJSON(desc, "", cmd.OutOrStdout(), log)
	}
	return printSchema(cmd.OutOrStdout(), desc)
}
