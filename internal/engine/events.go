package engine

import (
	"sync"

	"github.com/tatianab/steps-and-leaps/internal/board"
	"github.com/tatianab/steps-and-leaps/internal/models"
)

// EventKind names a signal the engine emits for presenters, sound and animation.
type EventKind string

const (
	EventGameStarted   EventKind = "game_started"
	EventDiceRolled    EventKind = "dice_rolled"
	EventStep          EventKind = "step"
	EventSpun          EventKind = "spun"
	EventLeap          EventKind = "leap"
	EventLadder        EventKind = "ladder"
	EventMonster       EventKind = "monster"
	EventMoved         EventKind = "moved"
	EventVictory       EventKind = "victory"
	EventFactRequested EventKind = "fact_requested"
	EventFact          EventKind = "fact"
	EventTurnSwitched  EventKind = "turn_switched"
	EventReset         EventKind = "reset"
	EventAbandoned     EventKind = "abandoned"
)

// Event carries a copy of the state as of the signal. Only the fields
// relevant to Kind are set besides State.
type Event struct {
	Kind     EventKind
	State    models.GameState
	Dice     [2]int
	Spin     int
	Position int
	Hazard   board.Hazard
	Fact     string
}

// hub fans events out to subscribers. Sends never block: a subscriber whose
// buffer is full misses the event.
type hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func (h *hub) subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	h.mu.Lock()
	if h.subs == nil {
		h.subs = make(map[chan Event]struct{})
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *hub) publish(ev Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	dropped := 0
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			dropped++
		}
	}
	return dropped
}
