package protocol

import (
	"fmt"

	"github.com/automoto/hookcore/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetCharacterCore uint = 10
	SyncIDNetHook          uint = 11
	SyncIDNetGameState     uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetCharacterCore uint8 = 10
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	// Register with interpolation for smooth client-side rendering
	if err := esync.RegisterComponent(
		SyncIDNetCharacterCore,
		netcomponents.NetCharacterCoreData{},
		netcomponents.NetCharacterCore,
		esync.WithInterpFn(InterpIDNetCharacterCore, netcomponents.LerpNetCharacterCore),
	); err != nil {
		return fmt.Errorf("register character core: %w", err)
	}

	// Hook relation: no interpolation (discrete state changes)
	if err := esync.RegisterComponent(
		SyncIDNetHook,
		netcomponents.NetHookData{},
		netcomponents.NetHook,
	); err != nil {
		return fmt.Errorf("register hook: %w", err)
	}

	if err := esync.RegisterComponent(
		SyncIDNetGameState,
		netcomponents.NetGameStateData{},
		netcomponents.NetGameState,
	); err != nil {
		return fmt.Errorf("register game state: %w", err)
	}

	return nil
}
