package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mcpbuilder/mcp-builder/internal/database"
	"github.com/mcpbuilder/mcp-builder/internal/validators"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

func newCmd(rf *rootFlags) *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a draft with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			drafts := rf.drafts()
			draft := drafts.CreateNew()
			if name != "" {
				draft.Name = name
			}
			draft.Description = description

			if !drafts.Save(cmd.Context(), &draft) {
				return fmt.Errorf("failed to save draft to %s", rf.StoragePath)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), draft.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Integration name")
	cmd.Flags().StringVar(&description, "description", "", "Integration description")
	return cmd
}

func listCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tVERSION\tPUBLISHED\tAPIS\tTOOLS\tUPDATED")
			for _, d := range rf.drafts().LoadAll(cmd.Context()) {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					d.ID, d.Name, d.Version, strconv.FormatBool(d.Published),
					len(d.APIs), len(d.Tools), d.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func showCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a draft as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := loadDraft(cmd, rf.drafts(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), draft)
		},
	}
}

func deleteCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts := rf.drafts()
			if _, err := loadDraft(cmd, drafts, args[0]); err != nil {
				return err
			}
			drafts.Delete(cmd.Context(), args[0])
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func validateCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [id...]",
		Short: "Check drafts for referential-integrity and field problems",
		Long:  "Validate the given drafts, or every draft when no id is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts := rf.drafts()

			var targets []model.Integration
			if len(args) == 0 {
				targets = drafts.LoadAll(cmd.Context())
			}
			for _, id := range args {
				draft, err := loadDraft(cmd, drafts, id)
				if err != nil {
					return err
				}
				targets = append(targets, *draft)
			}

			out := cmd.OutOrStdout()
			invalid := 0
			for i := range targets {
				problems := validators.Problems(validators.ValidateIntegration(&targets[i]))
				if len(problems) == 0 {
					_, _ = fmt.Fprintf(out, "%s: ok\n", targets[i].ID)
					continue
				}
				invalid++
				_, _ = fmt.Fprintf(out, "%s: %d problem(s)\n", targets[i].ID, len(problems))
				for _, p := range problems {
					_, _ = fmt.Fprintf(out, "  - %s\n", p)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d drafts are invalid", invalid, len(targets))
			}
			return nil
		},
	}
}

func exportCmd(rf *rootFlags) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a draft as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := loadDraft(cmd, rf.drafts(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "yaml":
				return writeYAML(out, draft)
			case "json":
				return writeJSON(out, draft)
			default:
				return fmt.Errorf("unsupported format %q (use yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func importCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file-or-url>",
		Short: "Import integrations from a JSON file, URL or builder API as drafts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			integrations, err := database.ReadSeedFile(cmd.Context(), args[0], rf.logger())
			if err != nil {
				return err
			}

			drafts := rf.drafts()
			var failed []error
			imported := 0
			for i := range integrations {
				if drafts.Save(cmd.Context(), &integrations[i]) {
					imported++
					continue
				}
				failed = append(failed, fmt.Errorf("failed to save %s", integrations[i].ID))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d draft(s)\n", imported)
			return errors.Join(failed...)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML goes through JSON so the YAML keys match the API field names
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
