package network

import (
	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/messages"
)

const predictionBufferSize = 64

// InputRecord stores an input alongside the predicted wire state of the
// local character after applying it.
type InputRecord struct {
	Input     messages.PlayerInput
	Predicted character.NetObjCharacterCore
	valid     bool
}

// PredictionBuffer is a ring buffer keyed by tick that stores recent inputs
// and their predicted outcomes for server reconciliation.
type PredictionBuffer struct {
	history  [predictionBufferSize]InputRecord
	nextTick uint64
}

// Store saves an input and the predicted state after its tick.
func (pb *PredictionBuffer) Store(input messages.PlayerInput, predicted character.NetObjCharacterCore) {
	idx := input.Tick % predictionBufferSize
	pb.history[idx] = InputRecord{
		Input:     input,
		Predicted: predicted,
		valid:     true,
	}
	pb.nextTick = input.Tick + 1
}

// Get retrieves a stored record by tick. Returns false if not found or if
// the slot has been overwritten.
func (pb *PredictionBuffer) Get(tick uint64) (InputRecord, bool) {
	record := pb.history[tick%predictionBufferSize]
	if !record.valid || record.Input.Tick != tick {
		return InputRecord{}, false
	}
	return record, true
}

// NextTick returns the tick the next stored input is expected for.
func (pb *PredictionBuffer) NextTick() uint64 {
	return pb.nextTick
}

// Since returns the stored records for ticks from..NextTick-1 in order,
// stopping at the first gap.
func (pb *PredictionBuffer) Since(from uint64) []InputRecord {
	var results []InputRecord
	for tick := from; tick < pb.nextTick; tick++ {
		record, ok := pb.Get(tick)
		if !ok {
			break
		}
		results = append(results, record)
	}
	return results
}

// Matches reports whether the prediction stored for tick equals the
// server's state.
func (pb *PredictionBuffer) Matches(tick uint64, server character.NetObjCharacterCore) bool {
	record, ok := pb.Get(tick)
	return ok && record.Predicted == server
}
