// SPDX-License-Identifier: EPL-2.0

package mpgx

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/handle"
	"github.com/ik5/mpgx/tag"
)

// readChunk is the size of a single Read in DecodeAll.
const readChunk = 64 * 1024

// ReadTags opens path on a fresh handle and returns its tags.
func ReadTags(eng engine.Engine, path string, opts ...handle.Option) (tag.Tags, error) {
	h, err := handle.New(eng, opts...)
	if err != nil {
		return tag.Tags{}, err
	}
	defer h.Destroy()

	if err := h.Open(path); err != nil {
		return tag.Tags{}, err
	}

	return h.Tags()
}

// ScanResult is the outcome for one file of ScanTags.
type ScanResult struct {
	Path string
	Tags tag.Tags
	Err  error
}

// ScanTags reads the tags of every path with at most workers files open
// at once; workers below one means one per CPU. Results are in input
// order. A file that fails to open is reported in its result; only
// cancellation of ctx fails the whole scan.
func ScanTags(ctx context.Context, eng engine.Engine, paths []string, workers int, opts ...handle.Option) ([]ScanResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]ScanResult, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			t, err := ReadTags(eng, path, opts...)
			results[i] = ScanResult{Path: path, Tags: t, Err: err}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}

	return results, nil
}

// DecodeAll reads PCM from the open stream until it ends. In feed mode
// it returns what the fed bytes decoded to.
func DecodeAll(h *handle.Handle) ([]byte, error) {
	var pcm []byte
	buf := make([]byte, readChunk)

	for {
		n, err := h.Read(buf)
		pcm = append(pcm, buf[:n]...)

		if err != nil {
			if errors.Is(err, handle.ErrEndOfStream) || errors.Is(err, handle.ErrNeedMore) {
				return pcm, nil
			}
			return pcm, err
		}
	}
}

// Info summarises a stream.
type Info struct {
	Format   handle.Format
	Frames   int64 // MPEG frames
	Samples  int64 // sample frames per channel
	Duration time.Duration
	Meta     engine.Meta
}

// Inspect opens path and decodes it frame by frame to count its length.
func Inspect(eng engine.Engine, path string, opts ...handle.Option) (Info, error) {
	h, err := handle.New(eng, opts...)
	if err != nil {
		return Info{}, err
	}
	defer h.Destroy()

	if err := h.Open(path); err != nil {
		return Info{}, err
	}

	return Measure(h)
}

// Measure decodes the rest of the open stream frame by frame. Frames
// already read are not counted.
func Measure(h *handle.Handle) (Info, error) {
	var (
		info Info
		err  error
	)
	if info.Format, err = h.Format(); err != nil {
		return Info{}, err
	}
	info.Meta = h.MetaCheck()

	size := info.Format.FrameSize()
	for {
		f, err := h.DecodeFrame()
		if errors.Is(err, handle.ErrEndOfStream) || errors.Is(err, handle.ErrNeedMore) {
			break
		}
		if err != nil {
			return info, err
		}

		info.Frames++
		if size > 0 {
			info.Samples += int64(f.Len() / size)
		}
	}

	if info.Format.Rate > 0 {
		info.Duration = time.Duration(info.Samples) * time.Second / time.Duration(info.Format.Rate)
	}

	return info, nil
}
