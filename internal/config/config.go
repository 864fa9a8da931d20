// SPDX-License-Identifier: EPL-2.0

// Package config reads decoder profiles: the decoder, flags and output
// format a handle is set up with before a stream is opened.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/handle"
)

// Format restricts the output to one combination. A zero rate accepts
// any stream rate.
type Format struct {
	Rate     int64  `yaml:"rate"`
	Channels string `yaml:"channels"`
	Encoding string `yaml:"encoding"`
}

// Profile is the YAML decoder profile.
type Profile struct {
	Decoder     string   `yaml:"decoder"`
	Flags       []string `yaml:"flags"`
	ICYInterval int      `yaml:"icy_interval"`
	Verbose     bool     `yaml:"verbose"`
	Format      *Format  `yaml:"format"`
}

// Load reads the profile at path, then applies the MPGX_DECODER,
// MPGX_ICY_INTERVAL and MPGX_VERBOSE environment overrides. An empty
// path starts from the zero profile.
func Load(path string) (*Profile, error) {
	p := &Profile{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read profile: %w", err)
		}
		if p, err = Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	p.Decoder = getEnv("MPGX_DECODER", p.Decoder)
	p.ICYInterval = getEnvInt("MPGX_ICY_INTERVAL", p.ICYInterval)
	p.Verbose = getEnvBool("MPGX_VERBOSE", p.Verbose)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Parse decodes and validates a YAML profile. Unknown keys are errors.
func Parse(data []byte) (*Profile, error) {
	p := &Profile{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks every field without touching a handle.
func (p *Profile) Validate() error {
	if _, err := p.EngineFlags(); err != nil {
		return err
	}
	if p.ICYInterval < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeICY, p.ICYInterval)
	}
	if _, _, _, err := p.Format.parse(); err != nil {
		return err
	}

	return nil
}

// EngineFlags converts the flag names.
func (p *Profile) EngineFlags() (engine.Flags, error) {
	var flags engine.Flags
	for _, name := range p.Flags {
		f, ok := engine.ParseFlag(strings.TrimSpace(name))
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
		}
		flags |= f
	}

	if !flags.Validate() {
		return 0, fmt.Errorf("%w: %s", ErrFlagConflict, strings.Join(p.Flags, ", "))
	}

	return flags, nil
}

func parseChannels(s string) (engine.Channels, bool) {
	switch strings.ToLower(s) {
	case "mono":
		return engine.Mono, true
	case "stereo":
		return engine.Stereo, true
	case "", "any", "both":
		return engine.AllChannels, true
	default:
		return 0, false
	}
}

func (f *Format) parse() (int64, engine.Channels, engine.Encoding, error) {
	if f == nil {
		return 0, 0, 0, nil
	}

	if f.Rate != 0 && !engine.ValidRate(f.Rate) {
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrBadRate, f.Rate)
	}

	ch, ok := parseChannels(f.Channels)
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrUnknownChannels, f.Channels)
	}

	enc := engine.EncodingSigned16
	if f.Encoding != "" {
		if enc, ok = engine.ParseEncoding(f.Encoding); !ok {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, f.Encoding)
		}
	}

	return f.Rate, ch, enc, nil
}

// Apply sets the handle up from the profile. The context is re-created
// when the profile names a different decoder, so Apply belongs before
// Open.
func (p *Profile) Apply(h *handle.Handle) error {
	flags, err := p.EngineFlags()
	if err != nil {
		return err
	}

	if p.Decoder != "" && p.Decoder != h.Decoder() {
		if err := h.Create(p.Decoder); err != nil {
			return err
		}
	}

	if err := h.SetFlags(flags); err != nil {
		return err
	}
	if err := h.SetICYInterval(p.ICYInterval); err != nil {
		return err
	}
	if err := h.SetVerbose(p.Verbose); err != nil {
		return err
	}

	if p.Format != nil {
		rate, ch, enc, err := p.Format.parse()
		if err != nil {
			return err
		}
		if err := h.SetFormat(rate, ch, enc); err != nil {
			return err
		}
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}
