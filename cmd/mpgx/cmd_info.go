// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/mpgx"
	"github.com/ik5/mpgx/engine"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>...",
	Short: "Print the output format and length of MPEG files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	h, err := newHandle()
	if err != nil {
		return err
	}
	defer h.Destroy()

	out := cmd.OutOrStdout()
	for _, path := range args {
		if err := h.Open(path); err != nil {
			return err
		}

		info, err := mpgx.Measure(h)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fmt.Fprintf(out, "%s:\n", path)
		fmt.Fprintf(out, "  format:   %s\n", info.Format)
		fmt.Fprintf(out, "  frames:   %d\n", info.Frames)
		fmt.Fprintf(out, "  samples:  %d\n", info.Samples)
		fmt.Fprintf(out, "  duration: %s\n", info.Duration)
		fmt.Fprintf(out, "  id3v1:    %v\n", info.Meta&engine.MetaID3v1 != 0)
		fmt.Fprintf(out, "  id3v2:    %v\n", info.Meta&engine.MetaID3v2 != 0)

		logger.Debug().Str("path", path).Int64("frames", info.Frames).Msg("measured")
	}

	return h.Close()
}
