package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Gate88/adventofcode2023/internal/almanac"
	"github.com/Gate88/adventofcode2023/pkg/stream/drawer"
)

func chainCmd() *cobra.Command {
	var (
		start string
		dot   bool
	)

	cmd := &cobra.Command{
		Use:   "chain <almanac>",
		Short: "Print the stage chain of an almanac",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := almanac.Load(args[0])
			if err != nil {
				return err
			}

			if start != "" {
				doc.Start = start
			}

			pipe, err := doc.Pipeline()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !dot {
				fmt.Fprintln(out, strings.Join(pipe.Chain(), " -> "))

				for _, name := range pipe.Chain() {
					stage, _ := pipe.Stage(name)
					fmt.Fprintf(out, "  %s: %d entries\n", name, stage.Len())
				}

				return nil
			}

			d := drawer.NewDOTDrawer("")
			d.SetGraphAttribute("rankdir", "LR")

			chain := pipe.Chain()
			for i, name := range chain {
				if err := d.AddStep(name); err != nil {
					return err
				}

				if i > 0 {
					if err := d.AddLink(chain[i-1], name); err != nil {
						return err
					}
				}
			}

			return errors.Wrap(d.Render(out), "unable to render chain")
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start stage")
	cmd.Flags().BoolVar(&dot, "dot", false, "Print the chain as a DOT graph")

	return cmd
}
