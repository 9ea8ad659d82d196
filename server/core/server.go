// Package core runs an authoritative hook simulation behind a necs
// websocket transport.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/demo"
	"github.com/automoto/hookcore/shared/messages"
	"github.com/automoto/hookcore/shared/netcomponents"
	"github.com/automoto/hookcore/shared/simulation"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"golang.org/x/sync/errgroup"
)

// Peer is a connected client as the server sees it.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

type commandKind int

const (
	cmdJoin commandKind = iota
	cmdInput
	cmdLeave
)

type command struct {
	kind  commandKind
	peer  Peer
	join  messages.JoinRequest
	input messages.PlayerInput
}

type player struct {
	peer    Peer
	name    string
	id      character.EntityID
	entity  donburi.Entity // net mirror
	lastSeq uint32
	acked   uint32
}

// Server owns the simulation, its net mirror and the connected players.
// Router callbacks only queue commands; everything else runs on the loop
// goroutine.
type Server struct {
	settings config.ServerSettings
	level    *ServerLevel
	log      logrus.FieldLogger

	sim       *simulation.World
	world     donburi.World
	gameState donburi.Entity
	loop      *GameLoop
	transport *transports.WsServerTransport

	recorder  *demo.Recorder
	demoFile  *os.File
	stopOnce  sync.Once
	players   map[string]*player
	playerCnt atomic.Int32

	mu      sync.Mutex
	pending []command
}

// NewServer creates a server on level. When settings.DemoDir is set every
// tick is recorded to a new demo file there.
func NewServer(settings config.ServerSettings, level *ServerLevel, log logrus.FieldLogger) (*Server, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	world := donburi.NewWorld()

	s := &Server{
		settings: settings,
		level:    level,
		log:      log,
		sim:      level.NewWorld(settings.Seed, log.WithField("component", "simulation")),
		world:    world,
		players:  make(map[string]*player),
	}
	s.loop = NewGameLoop(s, config.TicksPerSecond, log)

	// Set up the world for esync
	srvsync.UseEsync(world)

	s.gameState = world.Create(netcomponents.NetGameState)
	*netcomponents.NetGameState.Get(world.Entry(s.gameState)) = netcomponents.NetGameStateData{Level: level.Name}
	if err := srvsync.NetworkSync(world, &s.gameState, netcomponents.NetGameState); err != nil {
		return nil, fmt.Errorf("sync game state: %w", err)
	}

	if settings.DemoDir != "" {
		if err := s.startRecording(); err != nil {
			return nil, err
		}
	}

	s.setupRouterCallbacks()
	return s, nil
}

func (s *Server) startRecording() error {
	if err := os.MkdirAll(s.settings.DemoDir, 0o755); err != nil {
		return fmt.Errorf("create demo dir: %w", err)
	}
	now := time.Now()
	path := filepath.Join(s.settings.DemoDir, fmt.Sprintf("%s-%s.demo", s.level.Name, now.Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create demo: %w", err)
	}
	rec, err := demo.NewRecorder(f, demo.Header{
		Seed:    s.settings.Seed,
		Level:   s.level.Name,
		Zones:   s.level.Zones,
		Created: now.UnixNano(),
	}, s.log)
	if err != nil {
		f.Close()
		return err
	}
	s.demoFile = f
	s.recorder = rec
	s.log.Infof("Recording to %s", path)
	return nil
}

// Run serves clients on port and ticks the world until ctx is cancelled or
// the transport fails.
func (s *Server) Run(ctx context.Context, port uint) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.loop.Run(ctx)
	})
	g.Go(func() error {
		s.transport = transports.NewWsServerTransport(port, "", nil)
		errCh := make(chan error, 1)
		go func() { errCh <- s.transport.Start() }()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("transport: %w", err)
			}
			return errors.New("transport stopped")
		case <-ctx.Done():
			if ok, err := stopTransport(s.transport); !ok {
				s.log.Debug("Transport has no stop method, its listener stays up until exit")
			} else if err != nil {
				s.log.Warnf("Failed to stop transport: %v", err)
			}
			return nil
		}
	})

	err := g.Wait()
	s.Stop()
	return err
}

// stopTransport shuts t down through whichever stop method it has. It
// reports false when t has none.
func stopTransport(t any) (bool, error) {
	switch t := t.(type) {
	case interface{ Shutdown(context.Context) error }:
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return true, t.Shutdown(ctx)
	case interface{ Stop() error }:
		return true, t.Stop()
	case interface{ Stop() }:
		t.Stop()
		return true, nil
	case interface{ Close() error }:
		return true, t.Close()
	}
	return false, nil
}

// Stop closes the demo recording, if any.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.recorder == nil {
			return
		}
		if err := s.recorder.Close(); err != nil {
			s.log.Errorf("Failed to finish demo: %v", err)
		}
		if err := s.demoFile.Close(); err != nil {
			s.log.Errorf("Failed to close demo: %v", err)
		}
		s.recorder = nil
	})
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.log.Infof("Client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			s.log.Infof("Client %s disconnected with error: %v", client.Id(), err)
		} else {
			s.log.Infof("Client %s disconnected", client.Id())
		}
		s.HandleDisconnect(client)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.HandleJoin(client, req)
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.HandleInput(client, input)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.Warnf("Client error: %v", err)
	})
}

func (s *Server) enqueue(c command) {
	s.mu.Lock()
	s.pending = append(s.pending, c)
	s.mu.Unlock()
}

// HandleJoin queues a join request. It is safe to call from any goroutine.
func (s *Server) HandleJoin(peer Peer, req messages.JoinRequest) {
	s.enqueue(command{kind: cmdJoin, peer: peer, join: req})
}

// HandleInput queues a player input. It is safe to call from any goroutine.
func (s *Server) HandleInput(peer Peer, in messages.PlayerInput) {
	s.enqueue(command{kind: cmdInput, peer: peer, input: in})
}

// HandleDisconnect queues the removal of a peer's character. It is safe to
// call from any goroutine.
func (s *Server) HandleDisconnect(peer Peer) {
	s.enqueue(command{kind: cmdLeave, peer: peer})
}

// ProcessCommands applies the queued commands: joins first, then inputs,
// then leaves, each in arrival order.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, kind := range []commandKind{cmdJoin, cmdInput, cmdLeave} {
		for _, c := range batch {
			if c.kind != kind {
				continue
			}
			switch kind {
			case cmdJoin:
				s.join(c.peer, c.join)
			case cmdInput:
				s.applyInput(c.peer, c.input)
			case cmdLeave:
				s.leave(c.peer)
			}
		}
	}
}

func (s *Server) join(peer Peer, req messages.JoinRequest) {
	if _, ok := s.players[peer.Id()]; ok {
		return
	}
	if s.settings.Version != "" && req.Version != s.settings.Version {
		s.log.Infof("Rejecting %s: version %q, want %q", peer.Id(), req.Version, s.settings.Version)
		s.send(peer, messages.JoinRejected{
			Reason: fmt.Sprintf("version mismatch: server %s, client %s", s.settings.Version, req.Version),
		})
		return
	}

	id := s.sim.AddCharacter()
	if s.recorder != nil {
		s.recorder.Join(id)
	}

	entity := s.world.Create(netcomponents.NetCharacterCore, netcomponents.NetHook)
	p := &player{peer: peer, name: req.PlayerName, id: id, entity: entity}
	s.writeMirror(p)
	if err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetCharacterCore),
		netcomponents.NetHook,
	); err != nil {
		s.log.Errorf("Failed to setup network sync for character %d: %v", id, err)
	}

	s.players[peer.Id()] = p
	s.playerCnt.Store(int32(len(s.players)))

	msg := messages.JoinAccepted{
		CharacterID: uint32(id),
		ServerName:  s.settings.Name,
		TickRate:    config.TicksPerSecond,
		Level:       s.level.Name,
		Tick:        s.sim.CurrentTick(),
	}
	if nid := esync.GetNetworkId(s.world.Entry(entity)); nid != nil {
		msg.NetworkID = *nid
	}
	s.send(peer, msg)
	s.log.Infof("Player %q joined as character %d", req.PlayerName, id)
}

func (s *Server) applyInput(peer Peer, in messages.PlayerInput) {
	p, ok := s.players[peer.Id()]
	if !ok || in.Sequence <= p.lastSeq {
		return
	}
	p.lastSeq = in.Sequence
	ci := in.CharacterInput()
	if err := s.sim.SetInput(p.id, ci); err != nil {
		s.log.Warnf("Input for %s: %v", peer.Id(), err)
		return
	}
	if s.recorder != nil {
		s.recorder.Input(p.id, ci)
	}
}

func (s *Server) leave(peer Peer) {
	p, ok := s.players[peer.Id()]
	if !ok {
		return
	}
	delete(s.players, peer.Id())
	s.playerCnt.Store(int32(len(s.players)))

	s.sim.RemoveCharacter(p.id)
	if s.recorder != nil {
		s.recorder.Leave(p.id)
	}
	if s.world.Valid(p.entity) {
		s.world.Remove(p.entity)
	}
	s.log.Infof("Character %d removed for client %s", p.id, peer.Id())
}

// Step ticks the simulation once, records it and refreshes the net mirror.
func (s *Server) Step() {
	s.sim.Step()
	tick := s.sim.CurrentTick()
	digest := s.sim.Digest()

	if s.recorder != nil {
		if err := s.recorder.EndTick(tick, digest); err != nil {
			s.log.Errorf("Demo recording stopped: %v", err)
			s.Stop()
		}
	}

	for _, p := range s.players {
		s.writeMirror(p)
		if p.lastSeq != p.acked {
			p.acked = p.lastSeq
			s.send(p.peer, messages.InputAck{Sequence: p.lastSeq, Tick: tick})
		}
	}

	gs := netcomponents.NetGameState.Get(s.world.Entry(s.gameState))
	gs.Tick = tick
	gs.Characters = s.sim.Len()
	gs.Digest = digest
}

func (s *Server) writeMirror(p *player) {
	core, ok := s.sim.Core(p.id)
	if !ok {
		return
	}
	entry := s.world.Entry(p.entity)
	*netcomponents.NetCharacterCore.Get(entry) = netcomponents.NetCharacterCoreData{
		CharacterID:  uint32(p.id),
		Core:         core.Write(),
		Events:       int32(core.TriggeredEvents),
		LastSequence: p.lastSeq,
	}

	hook := netcomponents.NetHook.Get(entry)
	hook.Hooked = uint32(s.sim.HookedID(p.id))
	hook.Attached = hook.Attached[:0]
	for _, holder := range s.sim.AttachedIDs(p.id) {
		hook.Attached = append(hook.Attached, uint32(holder))
	}
}

func (s *Server) send(peer Peer, msg any) {
	if err := peer.SendMessage(msg); err != nil {
		s.log.Warnf("Send %T to %s: %v", msg, peer.Id(), err)
	}
}

// Simulation returns the authoritative world.
func (s *Server) Simulation() *simulation.World {
	return s.sim
}

// World returns the ECS world mirrored to clients.
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined players.
func (s *Server) PlayerCount() int {
	return int(s.playerCnt.Load())
}
