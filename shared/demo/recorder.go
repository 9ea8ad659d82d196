package demo

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/automoto/hookcore/shared/character"
	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

// Recorder writes a demo stream. Calls between two EndTick calls collect
// one frame. A Recorder is not safe for concurrent use.
type Recorder struct {
	zw  *zstd.Encoder
	enc *codec.Encoder
	log logrus.FieldLogger

	joins  []uint32
	leaves []uint32
	inputs map[uint32]character.Input
	frames int
}

// NewRecorder writes the header to w and returns a recorder for the frames.
func NewRecorder(w io.Writer, h Header, log logrus.FieldLogger) (*Recorder, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if _, err := io.WriteString(w, magic); err != nil {
		return nil, fmt.Errorf("write demo magic: %w", err)
	}
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("create demo encoder: %w", err)
	}

	h.Version = FormatVersion
	r := &Recorder{
		zw:     zw,
		enc:    codec.NewEncoder(zw, &handle),
		log:    log,
		inputs: make(map[uint32]character.Input),
	}
	if err := r.enc.Encode(&h); err != nil {
		zw.Close()
		return nil, fmt.Errorf("encode demo header: %w", err)
	}
	log.Infof("Recording demo of %s (seed %d)", h.Level, h.Seed)
	return r, nil
}

// Join records that the world created character id.
func (r *Recorder) Join(id character.EntityID) {
	r.joins = append(r.joins, uint32(id))
}

// Leave records that character id was removed.
func (r *Recorder) Leave(id character.EntityID) {
	r.leaves = append(r.leaves, uint32(id))
}

// Input records the input of character id. The last input per character
// within a tick wins.
func (r *Recorder) Input(id character.EntityID, in character.Input) {
	r.inputs[uint32(id)] = in
}

// EndTick writes the collected frame. tick is the world's tick count after
// the step and digest its digest.
func (r *Recorder) EndTick(tick, digest uint64) error {
	f := Frame{
		Tick:   tick,
		Joins:  r.joins,
		Leaves: r.leaves,
		Digest: digest,
	}
	if len(r.inputs) > 0 {
		f.Inputs = make([]FrameInput, 0, len(r.inputs))
		for id, in := range r.inputs {
			f.Inputs = append(f.Inputs, FrameInput{ID: id, Input: in})
		}
		slices.SortFunc(f.Inputs, func(a, b FrameInput) int { return cmp.Compare(a.ID, b.ID) })
	}

	if err := r.enc.Encode(&f); err != nil {
		return fmt.Errorf("encode frame %d: %w", tick, err)
	}
	r.joins = nil
	r.leaves = nil
	clear(r.inputs)
	r.frames++
	return nil
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int { return r.frames }

// Close flushes the stream. It does not close the underlying writer.
func (r *Recorder) Close() error {
	if err := r.zw.Close(); err != nil {
		return fmt.Errorf("close demo: %w", err)
	}
	r.log.Infof("Demo closed after %d frames", r.frames)
	return nil
}
