// Package sksa assembles a signed/encrypted SKSA image from a secure kernel,
// one or two application blobs and the console's key material. The build is a
// single forward pass: load, compress (SA2 only), pad, encrypt, concatenate.
// Any failure aborts the whole build; nothing is ever written on error.
package sksa

import (
	"bytes"
	"compress/flate"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/bbfw/makesksa/bb"
	"github.com/bbfw/makesksa/config"
	"github.com/bbfw/makesksa/krypto/aescbc"
)

// Build runs the full pipeline described by cfg and writes the resulting image
// to cfg.Outfile. The output layout is fixed: encrypted SK, then the SA1 head
// block and encrypted SA1, then the same pair for SA2 when present. Section
// boundaries are implicit in the block sizes; there are no length prefixes.
func Build(cfg *config.Build) error {
	buf, err := cfg.Virage2.ReadAll()
	if err != nil {
		return err
	}
	virage2, err := bb.ParseVirage2(buf)
	if err != nil {
		return err
	}
	log.Debugf("building SKSA for console %08X", virage2.BbId)

	bootrom, err := cfg.Bootrom.ReadAll()
	if err != nil {
		return err
	}
	skKey, skIv, err := bb.BootromKeys(bootrom)
	if err != nil {
		return err
	}

	sk, err := cfg.SK.ReadAll()
	if err != nil {
		return err
	}
	if len(sk) > SKSize {
		return &ComponentTooLongError{Component: ComponentSK, Len: uint64(len(sk)), Max: SKSize}
	}
	sk = padTo(sk, SKSize)

	sa1, err := cfg.SA1.ReadAll()
	if err != nil {
		return err
	}
	if uint64(len(sa1)) > maxAppSize {
		return &ComponentTooLongError{Component: ComponentSA1, Len: uint64(len(sa1)), Max: maxAppSize}
	}
	sa1 = alignTo(sa1, bb.BlockSize)

	var sa2 []byte
	if cfg.SA2 != nil {
		raw, err := cfg.SA2.ReadAll()
		if err != nil {
			return err
		}
		sa2, err = deflate(raw)
		if err != nil {
			return fmt.Errorf("could not compress SA2: %w", err)
		}
		log.Debugf("SA2 compressed from 0x%X to 0x%X bytes", len(raw), len(sa2))
		if uint64(len(sa2)) > maxAppSize {
			return &ComponentTooLongError{Component: ComponentSA2, Len: uint64(len(sa2)), Max: maxAppSize}
		}
		sa2 = alignTo(sa2, bb.BlockSize)
	}

	encSk, err := aescbc.Encrypt(sk, skKey[:], skIv[:])
	if err != nil {
		return fmt.Errorf("could not encrypt SK: %w", err)
	}

	sa1Head, err := appHead(cfg.SA1Key, cfg.SA1Iv, virage2.BootAppKey, cfg.SA1KeyIv, uint32(len(sa1)), cfg.SA1Cid)
	if err != nil {
		return fmt.Errorf("could not build SA1 head: %w", err)
	}
	encSa1, err := aescbc.Encrypt(sa1, cfg.SA1Key[:], cfg.SA1Iv[:])
	if err != nil {
		return fmt.Errorf("could not encrypt SA1: %w", err)
	}

	out := make([]byte, 0, len(encSk)+2*(bb.BlockSize)+len(encSa1)+len(sa2))
	out = append(out, encSk...)
	out = append(out, sa1Head...)
	out = append(out, encSa1...)

	if sa2 != nil {
		sa2Head, err := appHead(cfg.SA2Key, cfg.SA2Iv, virage2.BootAppKey, cfg.SA2KeyIv, uint32(len(sa2)), cfg.SA2Cid)
		if err != nil {
			return fmt.Errorf("could not build SA2 head: %w", err)
		}
		encSa2, err := aescbc.Encrypt(sa2, cfg.SA2Key[:], cfg.SA2Iv[:])
		if err != nil {
			return fmt.Errorf("could not encrypt SA2: %w", err)
		}
		out = append(out, sa2Head...)
		out = append(out, encSa2...)
	}

	log.Debugf("writing 0x%X byte SKSA to %s", len(out), cfg.Outfile)

	return cfg.Outfile.Write(out)
}

// appHead encodes the CMD head for one application component and pads it out
// to a full block: head, frozen cert/CRL filler, then zeros.
func appHead(key bb.AesKey, iv bb.AesIv, bootAppKey bb.AesKey, keyIv bb.AesIv, size, cid uint32) ([]byte, error) {
	cmd, err := bb.NewUnsignedCmdHead(key, iv, bootAppKey, keyIv, size, cid)
	if err != nil {
		return nil, err
	}
	buf, err := cmd.ToBuf()
	if err != nil {
		return nil, err
	}
	buf = append(buf, dummyCertsCrls...)

	return padTo(buf, bb.BlockSize), nil
}

// padTo zero-extends buf to exactly size bytes; already-full buffers pass
// through unchanged.
func padTo(buf []byte, size int) []byte {
	if len(buf) >= size {
		return buf
	}
	return append(buf, make([]byte, size-len(buf))...)
}

// alignTo zero-extends buf to the next multiple of align, which must be a
// power of two.
func alignTo(buf []byte, align int) []byte {
	padding := -len(buf) & (align - 1)
	return append(buf, make([]byte, padding)...)
}

// deflate compresses data as a raw DEFLATE stream at the fastest level. This
// is a one-shot build tool; throughput beats ratio.
func deflate(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := flate.NewWriter(buf, flate.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
