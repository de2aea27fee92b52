package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/errmsg"
	"github.com/llehouerou/saavn/internal/ui/playerbar"
	"github.com/llehouerou/saavn/internal/ui/render"
)

func newSearchCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search songs and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("empty query")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cc := cfg.GetCatalogConfig()
			tracks, err := catalog.NewClient(cc.BaseURL, cc.Timeout).SearchSongs(cmd.Context(), query)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpSearch, err))
			}
			if limit > 0 && len(tracks) > limit {
				tracks = tracks[:limit]
			}
			printTracks(cmd.OutOrStdout(), tracks)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most this many results")
	return cmd
}

func printTracks(w io.Writer, tracks []catalog.Track) {
	if len(tracks) == 0 {
		fmt.Fprintln(w, "No songs found.")
		return
	}
	for i := range tracks {
		t := &tracks[i]
		line := fmt.Sprintf("%2d. %s - %s [%s]",
			i+1, render.Sanitize(t.Name), render.Sanitize(t.ArtistLine()),
			playerbar.FormatTime(t.Duration))
		if album := render.Sanitize(t.Album.Name); album != "" {
			line += "  " + album
			if t.Year > 0 {
				line += fmt.Sprintf(" (%d)", t.Year)
			}
		}
		fmt.Fprintf(w, "%s  id:%s\n", line, t.Identity())
	}
}
