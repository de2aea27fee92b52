package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/saavn/internal/tags"
)

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <file>",
		Short: "Print the metadata embedded in a downloaded song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := tags.SniffFile(args[0])
			if err != nil {
				return err
			}
			t, err := tags.Read(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Format: %s\n", format)
			fmt.Fprintf(out, "Title:  %s\n", t.Title)
			fmt.Fprintf(out, "Artist: %s\n", t.Artist)
			fmt.Fprintf(out, "Album:  %s\n", t.Album)
			if t.Year > 0 {
				fmt.Fprintf(out, "Year:   %d\n", t.Year)
			}
			if len(t.Cover) > 0 {
				fmt.Fprintf(out, "Cover:  %s\n", humanize.Bytes(uint64(len(t.Cover))))
			}
			return nil
		},
	}
}
