package favorites

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

// Capacity is the fixed number of quick-swap slots.
const Capacity = 4

var (
	// ErrFull is returned by Add when all slots are occupied.
	ErrFull = errors.New("all quick swap slots are full")
	// ErrDuplicate is returned by Add when the channel is already saved.
	ErrDuplicate = errors.New("stream already saved to quick swap")
	// ErrOutOfRange is returned by RemoveByIndex for an index that names
	// no occupied slot.
	ErrOutOfRange = errors.New("no quick swap slot at that position")
)

// Slot is one quick-swap entry together with its last known live status.
type Slot struct {
	Channel   twitch.Channel
	Status    twitch.Status
	CheckedAt time.Time
}

// StatusChecker resolves live status for a batch of channels, invoking
// onEach as each result arrives.
type StatusChecker interface {
	CheckMultiple(channels []twitch.Channel, onEach func(twitch.Channel, twitch.Status)) map[twitch.Channel]twitch.Status
}

// Persister stores the quick-swap URL list.
type Persister interface {
	SetQuickSwap(urls []string) error
}

// Registry owns the quick-swap slots. Mutations persist through the
// Persister before returning; status refreshes run on the caller-provided
// checker's worker pool.
type Registry struct {
	mu      sync.Mutex
	slots   []Slot
	checker StatusChecker
	persist Persister
	log     zerolog.Logger
}

// New builds a Registry from a persisted URL list. Entries that no longer
// parse as Twitch channels are dropped, duplicates are collapsed, and
// anything beyond Capacity is ignored.
func New(persisted []string, checker StatusChecker, persist Persister, logger zerolog.Logger) *Registry {
	r := &Registry{
		checker: checker,
		persist: persist,
		log:     logger,
	}
	seen := make(map[twitch.Channel]struct{}, Capacity)
	for _, raw := range persisted {
		ch, err := twitch.ParseChannel(raw)
		if err != nil {
			r.log.Warn().Str("url", raw).Err(err).Msg("dropping unparseable quick swap entry")
			continue
		}
		if _, dup := seen[ch]; dup {
			continue
		}
		if len(r.slots) == Capacity {
			break
		}
		seen[ch] = struct{}{}
		r.slots = append(r.slots, Slot{Channel: ch, Status: twitch.StatusUnknown})
	}
	return r
}

// Add appends a channel to the first free slot and persists the list.
func (r *Registry) Add(ch twitch.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.slots {
		if s.Channel == ch {
			return ErrDuplicate
		}
	}
	if len(r.slots) == Capacity {
		return ErrFull
	}
	r.slots = append(r.slots, Slot{Channel: ch, Status: twitch.StatusUnknown})
	return r.persistLocked()
}

// RemoveByIndex deletes the slot at i, compacting the remaining entries,
// and persists the list. An index that names no occupied slot fails with
// ErrOutOfRange and leaves the slots untouched.
func (r *Registry) RemoveByIndex(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i < 0 || i >= len(r.slots) {
		return ErrOutOfRange
	}
	r.slots = append(r.slots[:i], r.slots[i+1:]...)
	return r.persistLocked()
}

// Channel returns the channel in slot i, if occupied.
func (r *Registry) Channel(i int) (twitch.Channel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.slots) {
		return twitch.Channel{}, false
	}
	return r.slots[i].Channel, true
}

// Slots returns a copy of the current slots in order.
func (r *Registry) Slots() []Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Slot(nil), r.slots...)
}

// Len reports the number of occupied slots.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// IsFull reports whether every slot is occupied.
func (r *Registry) IsFull() bool {
	return r.Len() == Capacity
}

// CheckAll refreshes the live status of every slot. Each slot is flipped
// to StatusChecking and reported through onUpdate before any network work
// starts; final statuses arrive through onUpdate as the checker resolves
// them. Slots removed mid-refresh are silently skipped.
func (r *Registry) CheckAll(onUpdate func(int, Slot)) {
	r.mu.Lock()
	channels := make([]twitch.Channel, len(r.slots))
	for i := range r.slots {
		r.slots[i].Status = twitch.StatusChecking
		channels[i] = r.slots[i].Channel
	}
	pending := make([]Slot, len(r.slots))
	copy(pending, r.slots)
	r.mu.Unlock()

	if onUpdate != nil {
		for i, s := range pending {
			onUpdate(i, s)
		}
	}
	if len(channels) == 0 || r.checker == nil {
		return
	}

	go r.checker.CheckMultiple(channels, func(ch twitch.Channel, st twitch.Status) {
		if i, slot, ok := r.record(ch, st); ok && onUpdate != nil {
			onUpdate(i, slot)
		}
	})
}

// record stores a resolved status against the slot currently holding ch.
func (r *Registry) record(ch twitch.Channel, st twitch.Status) (int, Slot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.slots {
		if r.slots[i].Channel == ch {
			r.slots[i].Status = st
			r.slots[i].CheckedAt = time.Now()
			return i, r.slots[i], true
		}
	}
	return 0, Slot{}, false
}

// persistLocked writes the URL list through the Persister. Callers must
// hold r.mu.
func (r *Registry) persistLocked() error {
	if r.persist == nil {
		return nil
	}
	urls := make([]string, len(r.slots))
	for i, s := range r.slots {
		urls[i] = s.Channel.URL()
	}
	return r.persist.SetQuickSwap(urls)
}
