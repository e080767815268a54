//go:build windows

package hotkeys

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-mdi/logger"
	"github.com/NaveLIL/erez-mdi/utils"
)

// hotkeyRegistration holds info needed to register a hotkey.
type hotkeyRegistration struct {
	id       HotkeyID
	hotkey   string
	handler  HotkeyHandler
	resultCh chan error
}

// Manager manages global hotkey registration. RegisterHotKey binds a
// hotkey to the calling thread, so registration and WM_HOTKEY delivery
// both happen on the manager's own locked goroutine.
type Manager struct {
	handlers   map[HotkeyID]HotkeyHandler
	mu         sync.RWMutex
	log        *logrus.Entry
	running    bool
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	registerCh chan hotkeyRegistration
}

// New creates a new hotkey manager.
func New() *Manager {
	return &Manager{
		handlers:   make(map[HotkeyID]HotkeyHandler),
		log:        logger.Get().Component("hotkeys"),
		registerCh: make(chan hotkeyRegistration, 10),
	}
}

// Register registers a global hotkey on the message loop goroutine.
func (m *Manager) Register(id HotkeyID, hotkey string, handler HotkeyHandler) error {
	reg := hotkeyRegistration{
		id:       id,
		hotkey:   hotkey,
		handler:  handler,
		resultCh: make(chan error, 1),
	}

	select {
	case m.registerCh <- reg:
		return <-reg.resultCh
	default:
		m.log.Warnf("Failed to queue hotkey registration: %s", hotkey)
		return nil
	}
}

func (m *Manager) registerInternal(id HotkeyID, hotkey string, handler HotkeyHandler) error {
	modifiers, vk, ok := utils.ParseHotkey(hotkey)
	if !ok {
		m.log.Warnf("Failed to parse hotkey: %s", hotkey)
		return nil
	}

	if err := utils.RegisterHotKey(0, int(id), modifiers, vk); err != nil {
		m.log.WithError(err).Errorf("RegisterHotKey failed for %s", hotkey)
		return err
	}

	m.mu.Lock()
	m.handlers[id] = handler
	m.mu.Unlock()

	m.log.WithField("hotkey", id).Infof("Registered hotkey: %s", hotkey)
	return nil
}

// Unregister unregisters a global hotkey.
func (m *Manager) Unregister(id HotkeyID) error {
	if err := utils.UnregisterHotKey(0, int(id)); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.handlers, id)
	m.mu.Unlock()

	return nil
}

// Start starts listening for hotkey events.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true
	m.mu.Unlock()

	ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go m.messageLoop(ctx)

	m.log.Info("Hotkey manager started")
	return nil
}

// Stop stops listening for hotkey events and unregisters all hotkeys.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.log.Info("Hotkey manager stopped")
}

// messageLoop registers hotkeys and delivers WM_HOTKEY on one OS thread.
// Hotkeys still registered when ctx ends are released on the same thread.
func (m *Manager) messageLoop(ctx context.Context) {
	defer m.wg.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	msg := &utils.MSG{}
	for {
		select {
		case <-ctx.Done():
			m.unregisterAll()
			return
		case reg := <-m.registerCh:
			reg.resultCh <- m.registerInternal(reg.id, reg.hotkey, reg.handler)
		default:
			if utils.PeekMessage(msg, 0, 0, 0, utils.PM_REMOVE) {
				if msg.Message == utils.WM_HOTKEY {
					m.fire(HotkeyID(msg.WParam))
				}
			} else {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}
}

func (m *Manager) fire(id HotkeyID) {
	m.mu.RLock()
	handler, exists := m.handlers[id]
	m.mu.RUnlock()

	m.log.WithField("hotkey", id).Debug("Hotkey pressed")
	if exists && handler != nil {
		go handler()
	}
}

func (m *Manager) unregisterAll() {
	m.mu.RLock()
	ids := make([]HotkeyID, 0, len(m.handlers))
	for id := range m.handlers {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		if err := m.Unregister(id); err != nil {
			m.log.WithError(err).Warnf("Failed to unregister hotkey %s", id)
		}
	}
}

// RegisterBindings registers every binding whose handler is present.
func (m *Manager) RegisterBindings(bindings []Binding, handlers map[HotkeyID]HotkeyHandler) {
	for _, b := range bindings {
		if h := handlers[b.ID]; h != nil {
			m.Register(b.ID, b.Hotkey, h)
		}
	}
}
