// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"github.com/ik5/mpgx"
	"github.com/ik5/mpgx/handle"
	"github.com/ik5/mpgx/tag"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <file>...",
	Short: "Print the ID3 tags of MPEG files",
	Long:  "Read the ID3v1 and ID3v2 tags of every file, several files at a time.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTags,
}

var tagsWorkers int

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().IntVarP(&tagsWorkers, "workers", "j", 0, "files read at once, 0 means one per CPU")
}

func runTags(cmd *cobra.Command, args []string) error {
	eng, err := selectedEngine()
	if err != nil {
		return err
	}

	results, err := mpgx.ScanTags(cmd.Context(), eng, args, tagsWorkers,
		handle.WithDecoder(profile.Decoder), handle.WithLogger(logger))
	if err != nil {
		return err
	}

	failed := 0
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Error().Err(r.Err).Str("path", r.Path).Msg("read tags")
			continue
		}
		printTags(out, r.Path, r.Tags)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}

	return nil
}

// fromLatin1 decodes an ID3v1 field, which is ISO-8859-1, for a UTF-8
// terminal.
func fromLatin1(s string) string {
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}

	return out
}

func printTags(w io.Writer, path string, t tag.Tags) {
	fmt.Fprintf(w, "%s:\n", path)
	if t.Empty() {
		fmt.Fprintln(w, "  no tags")
		return
	}

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "    %-8s %s\n", name+":", value)
		}
	}

	if v1 := t.V1; v1 != nil {
		fmt.Fprintf(w, "  ID3v%s\n", v1.Version())
		field("title", fromLatin1(v1.Title))
		field("artist", fromLatin1(v1.Artist))
		field("album", fromLatin1(v1.Album))
		field("year", fromLatin1(v1.Year))
		field("comment", fromLatin1(v1.Comment))
		if track, ok := v1.TrackNumber(); ok && track > 0 {
			field("track", fmt.Sprint(track))
		}
		field("genre", fmt.Sprint(v1.Genre))
	}

	if v2 := t.V2; v2 != nil {
		fmt.Fprintf(w, "  ID3v2.%d\n", v2.Version)
		field("title", v2.Title)
		field("artist", v2.Artist)
		field("album", v2.Album)
		field("year", v2.Year)
		field("genre", v2.Genre)
		field("comment", v2.Comment)
		for _, x := range v2.Extras {
			field(x.Description, x.Text)
		}
		for _, p := range v2.Pictures {
			fmt.Fprintf(w, "    picture: %s %s (%s, %d bytes)\n",
				p.Type, p.MIMEType, p.Payload.State, len(p.Payload.Data))
		}
	}
}
