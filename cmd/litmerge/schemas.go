package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/litmerge/internal/schema"
)

func init() {
	rootCmd.AddCommand(schemasCmd)
}

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List supported export schemas",
	Args:  cobra.NoArgs,
	RunE:  runSchemas,
}

// SchemaInfo describes one supported schema.
type SchemaInfo struct {
	Tag         string            `json:"tag"`
	Description string            `json:"description"`
	Kind        string            `json:"kind"`
	Columns     map[string]string `json:"columns,omitempty"`
}

func runSchemas(cmd *cobra.Command, args []string) error {
	infos := schemaInfos()

	if humanOutput {
		for _, info := range infos {
			fmt.Printf("%-11s %s\n", info.Tag, info.Description)
		}
		return nil
	}
	return outputJSON(infos)
}

func schemaInfos() []SchemaInfo {
	all := schema.All()
	infos := make([]SchemaInfo, len(all))
	for i, s := range all {
		info := SchemaInfo{Tag: s.Tag, Description: s.Description, Kind: "identifier_list"}
		if s.Family == schema.FamilyTabular {
			info.Kind = "tabular"
			info.Columns = columnMap(s.Columns)
		}
		infos[i] = info
	}
	return infos
}

// columnMap lists the source header of each canonical field the schema has.
func columnMap(c schema.Columns) map[string]string {
	m := make(map[string]string)
	for field, col := range map[string]string{
		"authors":       c.Authors,
		"title":         c.Title,
		"year":          c.Year,
		"doi":           c.Identifier,
		"document_type": c.DocumentType,
		"language":      c.Language,
		"cited_by":      c.CitedBy,
	} {
		if col != "" {
			m[field] = col
		}
	}
	return m
}
