package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"
)

// RegistrationError reports that the OS hotkey facility refused a binding.
// The registry's stored state is unchanged when it is returned.
type RegistrationError struct {
	Binding string
	Err     error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("hotkeys: register %q: %v", e.Binding, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// osHotkey is the OS-facing surface of one registered hotkey, satisfied by
// *hotkey.Hotkey and by test fakes.
type osHotkey interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
}

func systemHotkey(mods []hotkey.Modifier, key hotkey.Key) osHotkey {
	return hotkey.New(mods, key)
}

// osModifiers converts a Modifier bitmask to the platform's modifier values,
// in a fixed order.
func osModifiers(mods Modifier) []hotkey.Modifier {
	var out []hotkey.Modifier
	for _, m := range []Modifier{ModCtrl, ModShift, ModAlt, ModSuper} {
		if mods&m != 0 {
			out = append(out, modifierMap[m])
		}
	}

	return out
}

type registration struct {
	binding Binding
	hk      osHotkey
	stop    chan struct{}
}

// Registry owns the process's single active global shortcut. All mutation
// goes through Replace, which holds one critical section for the whole swap,
// so two live registrations never coexist and concurrent replacements cannot
// leave the OS and the stored state disagreeing.
type Registry struct {
	mu        sync.Mutex
	active    *registration
	onTrigger func()
	log       *slog.Logger

	// newHotkey creates the OS registration; tests substitute a fake facility.
	newHotkey func(mods []hotkey.Modifier, key hotkey.Key) osHotkey
}

// NewRegistry creates a Registry whose shortcut fires onTrigger. The callback
// runs on the keydown listener goroutine and must return quickly. A nil
// logger falls back to slog.Default.
func NewRegistry(onTrigger func(), log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}

	return &Registry{onTrigger: onTrigger, log: log, newHotkey: systemHotkey}
}

// Active returns the currently stored binding, if any.
func (r *Registry) Active() (Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return Binding{}, false
	}

	return r.active.binding, true
}

// Replace swaps the active shortcut for b. The previous binding is
// unregistered first; unregister failure is logged and ignored, since a stale
// binding is less harmful than none. If registering b fails, a
// *RegistrationError is returned and the stored state is left as it was.
func (r *Registry) Replace(b Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dropActiveLocked()

	hk := r.newHotkey(osModifiers(b.mods), b.key)
	if err := hk.Register(); err != nil {
		return &RegistrationError{Binding: b.String(), Err: err}
	}

	stop := make(chan struct{})
	go r.listen(hk, stop)

	r.active = &registration{binding: b, hk: hk, stop: stop}

	r.log.Info("global shortcut registered", "binding", b.String())

	return nil
}

// Close unregisters the active shortcut and stops its listener.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dropActiveLocked()
	r.active = nil

	return nil
}

// dropActiveLocked tears down the active OS registration, keeping the stored
// binding value so a failed replacement still reports the prior state.
func (r *Registry) dropActiveLocked() {
	if r.active == nil || r.active.hk == nil {
		return
	}

	if err := r.active.hk.Unregister(); err != nil {
		r.log.Warn("unregister previous shortcut",
			"binding", r.active.binding.String(),
			"error", err,
		)
	}

	close(r.active.stop)
	r.active.hk = nil
}

func (r *Registry) listen(hk osHotkey, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}

			if r.onTrigger != nil {
				r.onTrigger()
			}
		}
	}
}
