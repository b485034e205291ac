package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Gate88/adventofcode2023/internal/almanac"
)

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <almanac>",
		Short: "Print an almanac in YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := almanac.Load(args[0])
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)

			if err := enc.Encode(doc); err != nil {
				return errors.Wrap(err, "unable to encode almanac")
			}

			return errors.Wrap(enc.Close(), "unable to encode almanac")
		},
	}
}
