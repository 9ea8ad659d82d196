// Package demo records the inputs a world was ticked with and replays them
// against a fresh world, checking the state digest after every tick.
//
// A demo stream starts with a raw magic prefix followed by a zstd
// compressed sequence of msgpack values: one Header, then one Frame per
// tick.
package demo

import (
	"errors"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/character"
	"github.com/hashicorp/go-msgpack/v2/codec"
)

const (
	magic = "HOOKDEMO"

	// FormatVersion is bumped whenever Header or Frame change shape.
	FormatVersion = 1
)

var (
	ErrBadMagic       = errors.New("not a demo stream")
	ErrBadVersion     = errors.New("unsupported demo version")
	ErrDigestMismatch = errors.New("digest mismatch")
)

var handle codec.MsgpackHandle

// Header describes the world a demo was recorded in.
type Header struct {
	Version int
	Seed    uint64
	Level   string
	Zones   config.TuneZones
	Created int64 // unix nanoseconds
}

// FrameInput is the input one character used during a tick.
type FrameInput struct {
	ID    uint32
	Input character.Input
}

// Frame holds everything that happened before one Step, and the digest
// after it. Joins are applied first, then inputs, then leaves.
type Frame struct {
	Tick   uint64 // completed ticks after the step
	Joins  []uint32
	Inputs []FrameInput
	Leaves []uint32
	Digest uint64
}
