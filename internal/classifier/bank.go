package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/embedding"
)

// ErrUnknownSlot is returned for a slot outside the bank.
var ErrUnknownSlot = errors.New("unknown classifier slot")

// Slot identifies one of the bank's classifiers.
type Slot int

const (
	// SlotType predicts whether a message is a purchase or a task.
	SlotType Slot = iota
	// SlotPurpose predicts the spending category of a purchase.
	SlotPurpose
	// SlotReminder predicts the reminder cadence of a task.
	SlotReminder

	slotCount
)

var slotNames = [slotCount]string{
	SlotType:     "type",
	SlotPurpose:  "purpose",
	SlotReminder: "reminder",
}

func (s Slot) String() string {
	if !s.valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

func (s Slot) valid() bool {
	return s >= 0 && s < slotCount
}

// Slots returns every slot in a stable order.
func Slots() []Slot {
	return []Slot{SlotType, SlotPurpose, SlotReminder}
}

// ParseSlot resolves a slot by name.
func ParseSlot(name string) (Slot, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Slots() {
		if slotNames[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
}

// Bank holds the three classifiers behind atomically swapped pointers.
// Predictions never block on training; a prediction that started before a
// swap finishes on the model it loaded.
type Bank struct {
	vectorizer embedding.Vectorizer
	slots      [slotCount]atomic.Pointer[Model]
}

// NewBank creates a bank with every slot untrained.
func NewBank(v embedding.Vectorizer) *Bank {
	return &Bank{vectorizer: v}
}

// Train fits a model for slot and installs it. On failure the slot keeps
// whatever model it had.
func (b *Bank) Train(ctx context.Context, slot Slot, examples []Example, opts TrainOptions) (*Model, error) {
	if !slot.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSlot, int(slot))
	}

	start := time.Now()
	m, err := Train(ctx, b.vectorizer, examples, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to train %s classifier: %w", slot, err)
	}

	b.slots[slot].Store(m)

	slog.Info("Trained classifier",
		"slot", slot.String(),
		"examples", m.Examples,
		"labels", len(m.Labels),
		"duration", time.Since(start).Round(time.Millisecond))

	return m, nil
}

// Install places an already trained model in slot.
func (b *Bank) Install(slot Slot, m *Model) error {
	if !slot.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, int(slot))
	}
	if m == nil {
		return fmt.Errorf("cannot install nil model in %s slot", slot)
	}
	if err := m.validate(embedding.Dim); err != nil {
		return fmt.Errorf("cannot install %s model: %w", slot, err)
	}

	b.slots[slot].Store(m)
	return nil
}

// Model returns the model currently in slot, or nil.
func (b *Bank) Model(slot Slot) *Model {
	if !slot.valid() {
		return nil
	}
	return b.slots[slot].Load()
}

// Trained reports whether slot holds a model.
func (b *Bank) Trained(slot Slot) bool {
	return b.Model(slot) != nil
}

// Status reports the trained state of every slot.
func (b *Bank) Status() map[Slot]bool {
	status := make(map[Slot]bool, slotCount)
	for _, s := range Slots() {
		status[s] = b.Trained(s)
	}
	return status
}

// Predict labels text with the model in slot. An empty slot returns
// common.ErrModelNotTrained.
func (b *Bank) Predict(slot Slot, text string) (string, error) {
	if !slot.valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownSlot, int(slot))
	}

	m := b.slots[slot].Load()
	if m == nil {
		return "", fmt.Errorf("%s classifier: %w", slot, common.ErrModelNotTrained)
	}

	return m.Predict(b.vectorizer.Vectorize(text))
}
