package demo

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/simulation"
	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

// Player reads a demo stream frame by frame.
type Player struct {
	zr     *zstd.Decoder
	dec    *codec.Decoder
	header Header
}

// Open checks the magic prefix and reads the header.
func Open(r io.Reader) (*Player, error) {
	prefix := make([]byte, len(magic))
	if _, err := io.ReadFull(r, prefix); err != nil || string(prefix) != magic {
		return nil, ErrBadMagic
	}
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open demo decoder: %w", err)
	}

	p := &Player{zr: zr, dec: codec.NewDecoder(bufio.NewReader(zr), &handle)}
	if err := p.dec.Decode(&p.header); err != nil {
		zr.Close()
		return nil, fmt.Errorf("decode demo header: %w", err)
	}
	if p.header.Version != FormatVersion {
		zr.Close()
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, p.header.Version)
	}
	return p, nil
}

// Header returns the stream's header.
func (p *Player) Header() Header { return p.header }

// Next returns the next frame, or io.EOF after the last one.
func (p *Player) Next() (Frame, error) {
	var f Frame
	if err := p.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, io.EOF
		}
		return f, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}

// Close releases the decoder.
func (p *Player) Close() {
	p.zr.Close()
}

// WorldFactory builds the world a demo starts from.
type WorldFactory func(h Header) (*simulation.World, error)

// Result summarizes a replayed demo.
type Result struct {
	Header Header
	Frames int
	Digest uint64 // of the final state
}

// Apply ticks w once with the content of f and checks the resulting digest.
func Apply(w *simulation.World, f Frame) error {
	if want := w.CurrentTick() + 1; f.Tick != want {
		return fmt.Errorf("frame for tick %d, world expects %d", f.Tick, want)
	}
	for _, j := range f.Joins {
		if id := w.AddCharacter(); uint32(id) != j {
			return fmt.Errorf("tick %d: join created %d, recorded %d: %w", f.Tick, id, j, ErrDigestMismatch)
		}
	}
	for _, in := range f.Inputs {
		if err := w.SetInput(character.EntityID(in.ID), in.Input); err != nil {
			return fmt.Errorf("tick %d: %w", f.Tick, err)
		}
	}
	for _, id := range f.Leaves {
		w.RemoveCharacter(character.EntityID(id))
	}

	w.Step()
	if got := w.Digest(); got != f.Digest {
		return fmt.Errorf("tick %d: got %016x, recorded %016x: %w", f.Tick, got, f.Digest, ErrDigestMismatch)
	}
	return nil
}

// Verify replays a demo into a fresh world and stops at the first tick whose
// digest differs from the recording.
func Verify(r io.Reader, newWorld WorldFactory, log logrus.FieldLogger) (Result, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	p, err := Open(r)
	if err != nil {
		return Result{}, err
	}
	defer p.Close()

	res := Result{Header: p.Header()}
	w, err := newWorld(res.Header)
	if err != nil {
		return res, fmt.Errorf("build world for %s: %w", res.Header.Level, err)
	}

	for {
		f, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		if err := Apply(w, f); err != nil {
			return res, err
		}
		res.Frames++
	}
	res.Digest = w.Digest()
	log.Infof("Verified %d ticks of %s, digest %016x", res.Frames, res.Header.Level, res.Digest)
	return res, nil
}
