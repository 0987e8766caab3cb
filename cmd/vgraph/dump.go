package main

import (
	"fmt"

	"github.com/kungfusheep/vgraph"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Render the dashboard off screen and print the last frame as text",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.graph()
			if err != nil {
				return err
			}
			frames := max(1, a.cfg.Display.Frames)
			buf := vgraph.NewCellBuffer(a.cfg.Display.Width, a.cfg.Display.Height)
			for i := 0; i < frames; i++ {
				if i > 0 {
					g.Refresh()
				}
				g.Render(buf)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, buf.StringTrimmed())
			if stats {
				s := g.Stats()
				fmt.Fprintf(out, "frames=%d full=%d incremental=%d rebuilds=%d patches=%d\n",
					s.Frames, s.FullPaints, s.Incremental, s.Rebuilds, s.PatchesApplied)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "print render statistics after the frame")
	return cmd
}
