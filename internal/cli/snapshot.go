package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/saavn/internal/snapshot"
	"github.com/llehouerou/saavn/internal/state"
	"github.com/llehouerou/saavn/internal/ui/playerbar"
	"github.com/llehouerou/saavn/internal/ui/render"
)

func newSnapshotCmd(opts *options) *cobra.Command {
	var clearSaved bool
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show the saved playback session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if clearSaved {
				if err := store.Delete(cmd.Context(), state.SnapshotKey); err != nil {
					return fmt.Errorf("clear snapshot: %w", err)
				}
				fmt.Fprintln(out, "Saved session cleared.")
				return nil
			}

			data, err := store.Get(cmd.Context(), state.SnapshotKey)
			if errors.Is(err, state.ErrNotFound) {
				fmt.Fprintln(out, "No saved session.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			snap, ok := snapshot.Decode(data)
			if !ok {
				fmt.Fprintln(out, "Saved session is unreadable and will be ignored.")
				return nil
			}
			printSnapshot(out, snap)
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearSaved, "clear", false, "delete the saved session")
	return cmd
}

func printSnapshot(w io.Writer, s snapshot.Snapshot) {
	fmt.Fprintf(w, "Track:    %s - %s\n", render.Sanitize(s.Track.Name), render.Sanitize(s.Track.ArtistLine()))
	fmt.Fprintf(w, "Position: %s / %s\n", playerbar.FormatTime(s.PositionSeconds), playerbar.FormatTime(s.Track.Duration))
	if !s.SavedAt.IsZero() {
		fmt.Fprintf(w, "Saved:    %s\n", humanize.Time(s.SavedAt))
	}
	if s.ShouldResume() {
		fmt.Fprintln(w, "Resumes on next start.")
	} else {
		fmt.Fprintln(w, "Closed by user; will not resume.")
	}
}
