package control

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MaskiCoding/StreaMaski/internal/favorites"
	"github.com/MaskiCoding/StreaMaski/internal/supervisor"
	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

// Event is delivered on the Controller's channel. The concrete types are
// StreamStarted, StreamStopped, StreamFailed, and SlotUpdated.
type Event interface {
	isEvent()
}

// StreamStarted reports that playback began.
type StreamStarted struct {
	Channel twitch.Channel
	Quality twitch.Quality
}

// StreamStopped reports that the playback session ended cleanly.
type StreamStopped struct{}

// StreamFailed carries a user-facing description of why playback ended
// or could not begin.
type StreamFailed struct {
	Message string
}

// SlotUpdated reports a quick-swap slot's refreshed live status.
type SlotUpdated struct {
	Index int
	Slot  favorites.Slot
}

func (StreamStarted) isEvent() {}
func (StreamStopped) isEvent() {}
func (StreamFailed) isEvent()  {}
func (SlotUpdated) isEvent()   {}

// StreamSupervisor is the slice of the playback supervisor the controller
// drives.
type StreamSupervisor interface {
	Start(ch twitch.Channel, quality twitch.Quality) bool
	Switch(ch twitch.Channel, quality twitch.Quality) bool
	Stop()
	IsRunning() bool
	Notify(cb supervisor.Callbacks)
}

// LastStreamRecorder persists the most recently watched stream.
type LastStreamRecorder interface {
	SetLastStream(url string, quality twitch.Quality) error
}

// ErrBusy is returned when a start is rejected because a session is
// already in progress.
var ErrBusy = errors.New("a stream is already playing")

const eventBuffer = 32

// Controller translates UI intents into supervisor and registry calls and
// funnels asynchronous outcomes onto a single event channel.
type Controller struct {
	sup    StreamSupervisor
	reg    *favorites.Registry
	rec    LastStreamRecorder
	log    zerolog.Logger
	events chan Event
}

// New wires a Controller to the supervisor's callbacks. The supervisor
// must not have another subscriber.
func New(sup StreamSupervisor, reg *favorites.Registry, rec LastStreamRecorder, logger zerolog.Logger) *Controller {
	c := &Controller{
		sup:    sup,
		reg:    reg,
		rec:    rec,
		log:    logger,
		events: make(chan Event, eventBuffer),
	}
	sup.Notify(supervisor.Callbacks{
		Started: func(ch twitch.Channel, quality twitch.Quality) {
			c.rememberLastStream(ch, quality)
			c.emit(StreamStarted{Channel: ch, Quality: quality})
		},
		Stopped: func() {
			c.emit(StreamStopped{})
		},
		Errored: func(message string) {
			c.emit(StreamFailed{Message: message})
		},
	})
	return c
}

// Events is the channel the UI selects on. It is never closed.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Start validates rawURL and begins playback.
func (c *Controller) Start(rawURL string, quality twitch.Quality) error {
	ch, err := parseInput(rawURL)
	if err != nil {
		return err
	}
	if !c.sup.Start(ch, quality) {
		return ErrBusy
	}
	return nil
}

// Switch validates rawURL and swaps playback over to it, stopping any
// current session first.
func (c *Controller) Switch(rawURL string, quality twitch.Quality) error {
	ch, err := parseInput(rawURL)
	if err != nil {
		return err
	}
	if !c.sup.Switch(ch, quality) {
		return ErrBusy
	}
	return nil
}

// Stop ends the current session, if any.
func (c *Controller) Stop() {
	c.sup.Stop()
}

// IsStreaming reports whether a session is currently running.
func (c *Controller) IsStreaming() bool {
	return c.sup.IsRunning()
}

// AddFavorite validates rawURL and saves it to the first free quick-swap
// slot.
func (c *Controller) AddFavorite(rawURL string) error {
	ch, err := parseInput(rawURL)
	if err != nil {
		return err
	}
	return c.reg.Add(ch)
}

// RemoveFavorite clears the quick-swap slot at index.
func (c *Controller) RemoveFavorite(index int) error {
	return c.reg.RemoveByIndex(index)
}

// Favorites returns the current quick-swap slots.
func (c *Controller) Favorites() []favorites.Slot {
	return c.reg.Slots()
}

// LoadFavorite plays the channel in the quick-swap slot at index, swapping
// over if a session is already running.
func (c *Controller) LoadFavorite(index int, quality twitch.Quality) error {
	ch, ok := c.reg.Channel(index)
	if !ok {
		return fmt.Errorf("no stream saved in slot %d", index+1)
	}
	if c.sup.IsRunning() {
		if !c.sup.Switch(ch, quality) {
			return ErrBusy
		}
		return nil
	}
	if !c.sup.Start(ch, quality) {
		return ErrBusy
	}
	return nil
}

// CheckAllStatuses refreshes every quick-swap slot's live status. Results
// arrive asynchronously as SlotUpdated events.
func (c *Controller) CheckAllStatuses() {
	c.reg.CheckAll(func(i int, slot favorites.Slot) {
		c.emit(SlotUpdated{Index: i, Slot: slot})
	})
}

// emit never blocks; an event is dropped if the UI has stalled long
// enough to fill the buffer.
func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.log.Warn().Type("event", ev).Msg("event channel full, dropping")
	}
}

func (c *Controller) rememberLastStream(ch twitch.Channel, quality twitch.Quality) {
	if c.rec == nil {
		return
	}
	if err := c.rec.SetLastStream(ch.URL(), quality); err != nil {
		c.log.Warn().Err(err).Msg("persisting last stream failed")
	}
}

// parseInput turns raw user input into a channel, preferring the
// validator's message order so the user sees the most specific problem.
func parseInput(rawURL string) (twitch.Channel, error) {
	if ok, reason := twitch.Validate(rawURL); !ok {
		return twitch.Channel{}, errors.New(reason)
	}
	return twitch.ParseChannel(rawURL)
}
