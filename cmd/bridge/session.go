// Command bridge is the headless process that couples one RDP client
// facade instance to a web-facing gateway over two named local IPC
// channels: one process per session, per the scope this package
// implements.
package main

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/myrtille/remotesession-bridge/internal/codec"
	"github.com/myrtille/remotesession-bridge/internal/command"
	"github.com/myrtille/remotesession-bridge/internal/diagnostics"
	"github.com/myrtille/remotesession-bridge/internal/ipc"
	"github.com/myrtille/remotesession-bridge/internal/metrics"
	"github.com/myrtille/remotesession-bridge/internal/printer"
	"github.com/myrtille/remotesession-bridge/internal/ratectl"
	"github.com/myrtille/remotesession-bridge/internal/rdpfacade"
	"github.com/myrtille/remotesession-bridge/internal/screencap"
)

// State is the session bridge's lifecycle state.
type State int

const (
	StateConfigured State = iota
	StateConnected
	StateRunning
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateConnected:
		return "connected"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// Session owns the two IPC channels, the policy state, and every
// collaborator the command dispatcher and capture hooks drive.
type Session struct {
	id int

	log *zap.Logger

	rdp    rdpfacade.Client
	screen screencap.ScreenSource
	codec  *codec.Codec
	rate   *ratectl.Controller
	prints *printer.Registry
	mtr    *metrics.Metrics
	diag   *diagnostics.Store // nil when debug artifacts are disabled

	stateMu sync.RWMutex
	state   State

	policyMu sync.RWMutex
	policy   codec.Policy

	clipboard clipboardState

	processInputs atomic.Bool

	inputsCh  ipc.Channel
	updatesCh ipc.Channel
	writer    *updatesActor

	rdpCfg rdpfacade.ConnectionConfig
}

// NewSession builds a Session in StateConfigured. Collaborators are
// injected so a deployment without a real RDP/spooler/WebP binding
// still starts up against the Null/Fallback defaults.
func NewSession(id int, log *zap.Logger, rdp rdpfacade.Client, screen screencap.ScreenSource, c *codec.Codec, prints *printer.Registry, mtr *metrics.Metrics, diag *diagnostics.Store) *Session {
	s := &Session{
		id:     id,
		log:    log,
		rdp:    rdp,
		screen: screen,
		codec:  c,
		rate:   ratectl.New(),
		prints: prints,
		mtr:    mtr,
		diag:   diag,
		state:  StateConfigured,
		policy: codec.NewPolicy(),
	}
	s.processInputs.Store(true)
	return s
}

func (s *Session) setState(st State) {
	s.stateMu.Lock()
	s.state = st
	s.stateMu.Unlock()
}

// State reports the session's current lifecycle state.
func (s *Session) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Connect opens both IPC channels and transitions Configured→Connected.
// It blocks until a peer has connected to both.
func (s *Session) Connect() error {
	inputs, err := ipc.Listen(s.id, "inputs")
	if err != nil {
		return err
	}
	updates, err := ipc.Listen(s.id, "updates")
	if err != nil {
		inputs.Close()
		return err
	}

	s.inputsCh = inputs
	s.updatesCh = updates
	s.writer = newUpdatesActor(updates, s.log)
	s.writer.failed = func() { s.processInputs.Store(false) }
	go s.writer.run()

	if s.prints != nil {
		s.prints.SetNotifier(func(text string) { s.writer.emitText(text) })
	}

	s.setState(StateConnected)
	return nil
}

// Run spawns the input reader and transitions Connected→Running. It
// blocks until the reader exits (terminal IPC error, CLO, or RDP
// facade disconnect).
func (s *Session) Run(ctx context.Context) {
	s.setState(StateRunning)

	go func() {
		select {
		case <-s.rdp.Disconnected():
			s.log.Info("rdp facade disconnected")
			s.terminate()
		case <-ctx.Done():
			s.terminate()
		}
	}()

	s.readLoop()
	s.Terminate()
}

// Terminate transitions to Terminating, closes both channels, and
// shuts down the updates actor. It is safe to call more than once.
func (s *Session) Terminate() {
	s.stateMu.Lock()
	if s.state == StateTerminating {
		s.stateMu.Unlock()
		return
	}
	s.state = StateTerminating
	s.stateMu.Unlock()

	s.processInputs.Store(false)
	if s.writer != nil {
		s.writer.close()
	}
	if s.inputsCh != nil {
		s.inputsCh.Close()
	}
	if s.updatesCh != nil {
		s.updatesCh.Close()
	}
	if s.diag != nil {
		s.diag.Close()
	}
}

func (s *Session) terminate() {
	s.processInputs.Store(false)
}

// apply dispatches one parsed command to the appropriate collaborator
// or policy mutation. It never blocks on IPC; the only capture hook it
// triggers is SendScreen for FSU, which runs inline on the caller's
// goroutine.
func (s *Session) apply(cmd command.Command) {
	switch c := cmd.(type) {
	case command.SetServer:
		s.rdpCfg.Host = c.Host
		s.rdpCfg.Port = c.Port
		s.rdpCfg.HasPort = c.HasPort
		s.rdp.Configure(s.rdpCfg)
	case command.SetVMGuid:
		s.rdpCfg.VMGuid = c.GUID
		s.rdpCfg.VMConnect = true
		s.rdpCfg.Port = 2179
		s.rdpCfg.HasPort = true
		s.rdp.Configure(s.rdpCfg)
	case command.SetDomain:
		s.rdpCfg.Domain = c.Domain
		s.rdp.Configure(s.rdpCfg)
	case command.SetUsername:
		s.rdpCfg.Username = resolveUsername(s.rdpCfg.Domain, c.Username, &s.rdpCfg.Domain)
		s.rdp.Configure(s.rdpCfg)
	case command.SetPassword:
		s.rdpCfg.Password = c.Password
		s.rdp.Configure(s.rdpCfg)
	case command.SetProgram:
		s.rdpCfg.AltShell = c.Program
		s.rdp.Configure(s.rdpCfg)
	case command.Connect:
		if err := s.rdp.Connect(context.Background()); err != nil {
			s.log.Warn("rdp connect failed", zap.Error(err))
		}
	case command.Resize:
		s.policyMu.Lock()
		s.policy.ClientW = c.Width
		s.policy.ClientH = c.Height
		s.policyMu.Unlock()
	case command.KeyUnicode:
		s.rdp.InjectKeyUnicode(c.Code, c.Down)
	case command.KeyScancode:
		extended := c.Down && command.IsExtendedScancode(c.Code)
		s.rdp.InjectKeyScancode(c.Code, c.Down, extended)
	case command.MouseMove:
		x, y := s.toDesktopCoords(c.X, c.Y)
		s.rdp.InjectMouseMove(x, y)
	case command.MouseButton:
		x, y := s.toDesktopCoords(c.X, c.Y)
		s.rdp.InjectMouseButton(c.Button, c.Down, x, y)
	case command.MouseWheel:
		x, y := s.toDesktopCoords(c.X, c.Y)
		s.rdp.InjectMouseWheel(c.Direction, x, y)
	case command.ToggleReload:
		s.writer.emitText("reload")
	case command.ScaleDisplay:
		s.policyMu.Lock()
		if c.Disable {
			s.policy.ScaleDisplay = false
		} else {
			s.policy.ScaleDisplay = true
			s.policy.ClientW = c.Width
			s.policy.ClientH = c.Height
		}
		s.policyMu.Unlock()
		s.writer.emitText("reload")
	case command.SetEncoding:
		if enc, ok := codec.ParseEncoding(c.Raw); ok {
			s.policyMu.Lock()
			s.policy.Encoding = enc
			s.policy.Quality = codec.QualityHigh
			s.policyMu.Unlock()
		}
	case command.SetQuality:
		s.policyMu.Lock()
		s.policy.Quality = c.Quality
		s.policyMu.Unlock()
	case command.SetQuantity:
		s.policyMu.Lock()
		s.policy.Quantity = c.Quantity
		s.policyMu.Unlock()
	case command.FullscreenRequest:
		s.SendScreen()
	case command.ClipboardRequest:
		s.handleClipboardRequest()
	case command.Close:
		s.processInputs.Store(false)
	}
}

// toDesktopCoords rescales client-space pointer coordinates back to
// desktop space when scaling is active, the inverse of ScaleRect.
func (s *Session) toDesktopCoords(x, y int) (int, int) {
	s.policyMu.RLock()
	scale := s.policy.ScaleDisplay
	cw, ch := s.policy.ClientW, s.policy.ClientH
	s.policyMu.RUnlock()

	if !scale || cw == 0 || ch == 0 {
		return x, y
	}
	dw, dh := s.screen.DesktopSize()
	return x * dw / cw, y * dh / ch
}

func resolveUsername(domain, raw string, domainOut *string) string {
	if domain != "" {
		return raw
	}
	if i := strings.IndexByte(raw, '@'); i >= 0 {
		*domainOut = raw[i+1:]
		return raw[:i]
	}
	if i := strings.IndexByte(raw, '\\'); i >= 0 {
		*domainOut = raw[:i]
		return raw[i+1:]
	}
	return raw
}
