package session

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/alexanderramin/studymaster/internal/domain"
	"github.com/alexanderramin/studymaster/internal/store"
)

// CardFetcher fetches one new flashcard from the backend.
// *api.Client satisfies it.
type CardFetcher interface {
	FetchFlashcard(ctx context.Context) (*domain.FlashcardEntry, error)
}

// Deck is the flashcard deck engine. The deck grows monotonically, one
// card fetched on demand at a time, and the position and flip state are
// mirrored to durable storage write-through so a reload resumes where
// the learner left off.
//
// User-triggered operations are serialized: a Next or Flip issued while
// a fetch is in flight is ignored, never overlapped.
type Deck struct {
	durable store.Scope
	fetcher CardFetcher

	mu       sync.Mutex
	cards    []domain.FlashcardEntry
	index    int
	flipped  bool
	fetching bool
}

// NewDeck creates a Deck over the durable scope.
func NewDeck(durable store.Scope, fetcher CardFetcher) *Deck {
	return &Deck{durable: durable, fetcher: fetcher}
}

// Restore replaces the in-memory deck with the persisted one: cards,
// position, and flip state, with the position clamped into bounds.
// When nothing is persisted the deck ends up empty, so a restore after
// delete-study drops any cards from the deleted study; the caller
// seeds an empty deck with Append.
func (d *Deck) Restore() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cards = nil
	d.index = 0
	d.flipped = false

	if v, ok := d.durable.Get(store.KeyDeckCards); ok && v != "" {
		// Corrupt JSON leaves the deck empty, the safe default.
		_ = json.Unmarshal([]byte(v), &d.cards)
	}
	if len(d.cards) == 0 {
		d.cards = nil
		return
	}

	if v, ok := d.durable.Get(store.KeyDeckIndex); ok {
		if n, err := strconv.Atoi(v); err == nil {
			d.index = n
		}
	}
	if d.index < 0 {
		d.index = 0
	}
	if d.index > len(d.cards)-1 {
		d.index = len(d.cards) - 1
	}
	if v, ok := d.durable.Get(store.KeyDeckFlipped); ok {
		d.flipped, _ = strconv.ParseBool(v)
	}
}

// Clear drops every card and resets the position and flip state. The
// delete-study path calls it so the in-memory deck matches the wiped
// durable keys without waiting for the next Restore.
func (d *Deck) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards = nil
	d.index = 0
	d.flipped = false
}

// Len returns the number of cards fetched so far.
func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

// Index returns the current position.
func (d *Deck) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

// Flipped reports whether the current card shows its answer side.
func (d *Deck) Flipped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flipped
}

// Fetching reports whether a card fetch is in flight.
func (d *Deck) Fetching() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fetching
}

// Card returns the current card and whether the deck has one.
func (d *Deck) Card() (domain.FlashcardEntry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return domain.FlashcardEntry{}, false
	}
	return d.cards[d.index], true
}

// Append fetches exactly one new card, appends it, and moves the
// position to it. On any fetch or validation error the deck is left
// unchanged and the error is surfaced. Ignored while another fetch is
// in flight.
func (d *Deck) Append(ctx context.Context) error {
	d.mu.Lock()
	if d.fetching {
		d.mu.Unlock()
		return nil
	}
	d.fetching = true
	d.mu.Unlock()

	card, err := d.fetcher.FetchFlashcard(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.fetching = false
	if err != nil {
		return err
	}

	d.cards = append(d.cards, *card)
	d.index = len(d.cards) - 1
	d.flipped = false
	d.persistLocked()
	return nil
}

// Next advances to the following card, fetching a new one only when
// the position is already at the tail. The deck is never prefetched.
func (d *Deck) Next(ctx context.Context) error {
	d.mu.Lock()
	if d.fetching {
		d.mu.Unlock()
		return nil
	}
	if d.index < len(d.cards)-1 {
		d.index++
		d.flipped = false
		d.persistLocked()
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()
	return d.Append(ctx)
}

// Previous moves back one card and resets the flip state. No-op at the
// first card or while a fetch is in flight.
func (d *Deck) Previous() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fetching || d.index == 0 {
		return
	}
	d.index--
	d.flipped = false
	d.persistLocked()
}

// Flip toggles between question and answer. No-op while a fetch is in
// flight, so the loading view cannot be interacted with.
func (d *Deck) Flip() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fetching || len(d.cards) == 0 {
		return
	}
	d.flipped = !d.flipped
	d.persistLocked()
}

// persistLocked mirrors deck, index, and flip state to durable storage.
// Callers hold d.mu. Write failures degrade silently.
func (d *Deck) persistLocked() {
	if data, err := json.Marshal(d.cards); err == nil {
		_ = d.durable.Set(store.KeyDeckCards, string(data))
	}
	_ = d.durable.Set(store.KeyDeckIndex, strconv.Itoa(d.index))
	_ = d.durable.Set(store.KeyDeckFlipped, strconv.FormatBool(d.flipped))
}
