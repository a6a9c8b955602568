package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/moralreport/pkg/docx"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.docx>",
		Short: "Validate a report and print its text",
		Long: `Inspect checks the package structure of a .docx file (content types,
relationships and style references) and prints its paragraphs in
document order, table cells row by row.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspectCmd,
	}
	cmd.Flags().Bool("parts", false, "List package parts instead of text")
	return cmd
}

func runInspectCmd(cmd *cobra.Command, args []string) error {
	pkg, err := docx.OpenPackageFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if listParts, _ := cmd.Flags().GetBool("parts"); listParts {
		types, err := pkg.ContentTypes()
		if err != nil {
			return err
		}
		for _, name := range pkg.PartNames() {
			ct, ok := types.ContentTypeFor("/" + name)
			if !ok {
				ct = "(unregistered)"
			}
			fmt.Fprintf(out, "%-40s %s\n", name, ct)
		}
	} else {
		texts, err := pkg.Text()
		if err != nil {
			return err
		}
		for _, line := range texts {
			fmt.Fprintln(out, line)
		}
	}

	if err := pkg.Validate(); err != nil {
		var verr *docx.ValidationError
		if errors.As(err, &verr) {
			for _, issue := range verr.Issues {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", issue.Part, issue.Message)
			}
		}
		return err
	}
	return nil
}
