package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type OutlineCmd struct {
	inputPath string
	locale    string
	out       io.Writer
}

// NewOutlineCmd prints the chapter layout of a report payload without
// writing the PDF. Handy for checking page-break behavior on real payloads.
func NewOutlineCmd(out io.Writer) *cobra.Command {
	oc := &OutlineCmd{out: out}
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Show the chapter/page layout for a report payload",
		RunE:  oc.run,
	}

	cmd.Flags().StringVar(&oc.inputPath, "input", "", "Path to the report JSON payload")
	cmd.Flags().StringVar(&oc.locale, "locale", "id", "Locale for the generation date (id or en)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (oc *OutlineCmd) run(cmd *cobra.Command, args []string) error {
	res, err := buildFromFile(oc.inputPath, oc.locale)
	if err != nil {
		return err
	}

	fmt.Fprintf(oc.out, "%s (%d pages)\n", res.Filename, res.Pages)
	for _, ch := range res.Chapters {
		fmt.Fprintf(oc.out, "  %d. %s  ....  p.%d\n", ch.Number, ch.Title, ch.Page)
	}
	return nil
}
