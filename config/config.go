// Package config turns raw command-line text into a validated build
// configuration. Everything here runs before any component is opened: a
// configuration error means the build never starts and no input is touched.
package config

import (
	"fmt"
	"strconv"

	"github.com/bbfw/makesksa/bb"
	"github.com/bbfw/makesksa/kio"
)

// Error is a configuration error: a malformed field value, or a field supplied
// without its required companion.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Options carries the raw command-line values. Empty strings mean the field
// was not supplied.
type Options struct {
	Virage2  string
	Bootrom  string
	SK       string
	SA1      string
	SA1Cid   string
	SA1Key   string
	SA1Iv    string
	SA1KeyIv string
	SA2      string
	SA2Cid   string
	SA2Key   string
	SA2Iv    string
	SA2KeyIv string
	Outfile  string
}

// Build is the fully resolved configuration consumed by the pipeline. Key and
// IV fields left unset on the command line are all-zero, which the boot chain
// accepts for test and low-security builds.
type Build struct {
	Virage2 *kio.Stream
	Bootrom *kio.Stream
	SK      *kio.Stream

	SA1      *kio.Stream
	SA1Cid   uint32
	SA1Key   bb.AesKey
	SA1Iv    bb.AesIv
	SA1KeyIv bb.AesIv

	// SA2 is nil when no second application is built.
	SA2      *kio.Stream
	SA2Cid   uint32
	SA2Key   bb.AesKey
	SA2Iv    bb.AesIv
	SA2KeyIv bb.AesIv

	Outfile *kio.Stream
}

// Resolve validates opts and produces the build configuration.
func Resolve(opts Options) (*Build, error) {
	b := &Build{
		Virage2: kio.Input(opts.Virage2),
		Bootrom: kio.Input(opts.Bootrom),
		SK:      kio.Input(opts.SK),
		SA1:     kio.Input(opts.SA1),
		Outfile: kio.Output(opts.Outfile),
	}

	var err error
	if b.SA1Cid, err = parseCid(opts.SA1Cid); err != nil {
		return nil, &Error{Field: "sa1-cid", Reason: err.Error()}
	}
	if b.SA1Key, err = parseKey("sa1-key", opts.SA1Key); err != nil {
		return nil, err
	}
	if b.SA1Iv, err = parseIv("sa1-iv", opts.SA1Iv); err != nil {
		return nil, err
	}
	if b.SA1KeyIv, err = parseIv("sa1-key-iv", opts.SA1KeyIv); err != nil {
		return nil, err
	}

	if opts.SA2 == "" {
		// Every SA2-dependent field must stay unset.
		for field, value := range map[string]string{
			"sa2-cid":    opts.SA2Cid,
			"sa2-key":    opts.SA2Key,
			"sa2-iv":     opts.SA2Iv,
			"sa2-key-iv": opts.SA2KeyIv,
		} {
			if value != "" {
				return nil, &Error{Field: field, Reason: "supplied without an SA2"}
			}
		}
		return b, nil
	}

	if opts.SA2Cid == "" {
		return nil, &Error{Field: "sa2-cid", Reason: "required when an SA2 is supplied"}
	}

	b.SA2 = kio.Input(opts.SA2)
	if b.SA2Cid, err = parseCid(opts.SA2Cid); err != nil {
		return nil, &Error{Field: "sa2-cid", Reason: err.Error()}
	}
	if b.SA2Key, err = parseKey("sa2-key", opts.SA2Key); err != nil {
		return nil, err
	}
	if b.SA2Iv, err = parseIv("sa2-iv", opts.SA2Iv); err != nil {
		return nil, err
	}
	if b.SA2KeyIv, err = parseIv("sa2-key-iv", opts.SA2KeyIv); err != nil {
		return nil, err
	}

	return b, nil
}

// parseCid accepts decimal or 0x-prefixed hex 32-bit content IDs.
func parseCid(s string) (uint32, error) {
	cid, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("not a 32-bit decimal or hex value: %q", s)
	}
	return uint32(cid), nil
}

func parseKey(field, s string) (bb.AesKey, error) {
	if s == "" {
		return bb.AesKey{}, nil
	}
	key, err := bb.ParseKey(s)
	if err != nil {
		return bb.AesKey{}, &Error{Field: field, Reason: err.Error()}
	}
	return key, nil
}

func parseIv(field, s string) (bb.AesIv, error) {
	if s == "" {
		return bb.AesIv{}, nil
	}
	iv, err := bb.ParseIv(s)
	if err != nil {
		return bb.AesIv{}, &Error{Field: field, Reason: err.Error()}
	}
	return iv, nil
}
