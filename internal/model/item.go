// Package model defines the records produced by message analysis.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind names the variant of an Item.
type Kind string

const (
	// KindPurchase marks a Purchase.
	KindPurchase Kind = "purchase"
	// KindTask marks a Task.
	KindTask Kind = "task"
)

// Item is the result of analyzing a message: exactly one of Purchase or
// Task. The interface is sealed to this package.
type Item interface {
	Kind() Kind
	isItem()
}

// DefaultPurpose is used when the purpose classifier is not trained.
const DefaultPurpose = "other"

// Purchase is a spend extracted from a message. Every field is best-effort.
type Purchase struct {
	Name    *string
	Cost    *decimal.Decimal
	Purpose string
}

// Kind implements Item.
func (Purchase) Kind() Kind { return KindPurchase }
func (Purchase) isItem()    {}

// Task is a to-do extracted from a message. Deadline carries a date only,
// at midnight UTC. A nil Reminder means no reminder.
type Task struct {
	Title    *string
	Deadline *time.Time
	Reminder *string
}

// Kind implements Item.
func (Task) Kind() Kind { return KindTask }
func (Task) isItem()    {}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns *s, or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
