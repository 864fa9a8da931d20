// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/mpgx"
	"github.com/ik5/mpgx/export"
	"github.com/ik5/mpgx/handle"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <file|->",
	Short: "Decode an MPEG file to raw PCM, WAV or AIFF",
	Long: "Decode an MPEG file. With - the stream is read from stdin and decoded in feed mode. " +
		"Output goes to stdout unless -o is given.",
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

// Decode flags
var (
	decodeFormat string
	decodeOutput string
	decodeNoTags bool
)

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", "wav", "output container: wav, aiff or raw")
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "output file, stdout when empty")
	decodeCmd.Flags().BoolVar(&decodeNoTags, "no-tags", false, "do not copy tags into the WAV INFO chunk")
}

func runDecode(cmd *cobra.Command, args []string) error {
	switch decodeFormat {
	case "wav", "aiff", "raw":
	default:
		return fmt.Errorf("unknown output format %q", decodeFormat)
	}

	h, err := newHandle()
	if err != nil {
		return err
	}
	defer h.Destroy()

	if err := openInput(h, args[0], cmd.InOrStdin()); err != nil {
		return err
	}

	if decodeOutput == "" {
		// Containers are patched after the samples, so build them in
		// memory when stdout cannot seek.
		var buf export.Buffer
		if _, err := encode(h, &buf); err != nil {
			return err
		}
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	}

	f, err := os.Create(decodeOutput)
	if err != nil {
		return err
	}

	n, err := encode(h, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.Info().Str("output", decodeOutput).Int64("frames", n).Msg("decoded")

	return nil
}

// openInput opens path, or feeds all of stdin for "-".
func openInput(h *handle.Handle, path string, stdin io.Reader) error {
	if path != "-" {
		return h.Open(path)
	}

	if err := h.OpenFeed(); err != nil {
		return err
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	logger.Debug().Int("bytes", len(data)).Msg("feeding stdin")

	return h.Feed(data)
}

// encode writes the stream in the selected container and returns the
// number of sample frames written.
func encode(h *handle.Handle, w io.WriteSeeker) (int64, error) {
	switch decodeFormat {
	case "aiff":
		return export.AIFF(h, w)
	case "raw":
		pcm, err := mpgx.DecodeAll(h)
		if err != nil {
			return 0, err
		}
		if _, err := w.Write(pcm); err != nil {
			return 0, err
		}

		f, err := h.Format()
		if err != nil || f.FrameSize() == 0 {
			return 0, err
		}
		return int64(len(pcm) / f.FrameSize()), nil
	default:
		var opts []export.Option
		if !decodeNoTags {
			// A feed only reaches its leading tag once the first frame
			// is found.
			if _, err := h.Format(); err != nil {
				return 0, err
			}
			tags, err := h.Tags()
			if err != nil {
				return 0, err
			}
			opts = append(opts, export.WithTags(tags))
		}
		return export.WAV(h, w, opts...)
	}
}
