package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/postbox/compose"
	"github.com/zostay/postbox/message"
	"github.com/zostay/postbox/message/walk"
)

var treeCmd = &cobra.Command{
	Use:   "tree [sample...]",
	Short: "Shows the part structure of each sample message",
	Args:  cobra.ArbitraryArgs,
	RunE:  RunTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

// RunTree assembles the chosen samples and prints their part trees.
func RunTree(cmd *cobra.Command, args []string) error {
	msgs, err := selectSamples(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	c := compose.NewCompiler()
	for _, m := range msgs {
		subject, _ := m.Subject()
		fmt.Fprintf(out, "# %s\n", subject)

		root, err := c.Assemble(m)
		if err != nil {
			return err
		}

		err = walk.AndProcess(
			func(part message.Part, parents []message.Part) error {
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", len(parents)), describe(part))
				return nil
			}, root)
		if err != nil {
			return err
		}
	}

	return nil
}

func describe(part message.Part) string {
	h := part.GetHeader()

	mt, err := h.GetMediaType()
	if err != nil {
		mt = "(no content type)"
	}

	desc := []string{mt}
	if cte, err := h.GetTransferEncoding(); err == nil {
		desc = append(desc, cte)
	}
	if pres, err := h.GetPresentation(); err == nil {
		desc = append(desc, pres)
	}
	if fn, err := h.GetFilename(); err == nil {
		desc = append(desc, "filename="+fn)
	}
	if cid, err := h.GetContentID(); err == nil {
		desc = append(desc, "id="+cid)
	}

	return strings.Join(desc, " ")
}
