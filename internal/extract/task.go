package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/model"
)

// Reminder labels that mean "no reminder".
var noReminder = map[string]struct{}{
	"none": {},
	"нет":  {},
}

// Task extracts title, deadline and reminder cadence from a task message.
func (e *Extractor) Task(text string) model.Task {
	task := model.Task{
		Title:    model.StringPtr(Title(text)),
		Deadline: Deadline(text, e.now()),
	}

	if reminder, ok := e.predict(classifier.SlotReminder, text); ok {
		reminder = strings.TrimSpace(reminder)
		if _, none := noReminder[strings.ToLower(reminder)]; !none && reminder != "" {
			task.Reminder = &reminder
		}
	}

	return task
}

// Title strips task keywords and dates from text and keeps the first
// MaxTitleWords words. The result may be empty.
func Title(text string) string {
	clean := strings.TrimSpace(taskWords.remove(text))
	clean = strings.TrimSpace(dateRegex.ReplaceAllString(clean, ""))
	return firstTokens(clean, MaxTitleWords)
}

// Deadline parses the first date in text. Day-first dates ("10.03",
// "10/03/25", "10-03-2025") and ISO dates ("2025-03-10") are understood.
// A missing year is taken from now.
func Deadline(text string, now time.Time) *time.Time {
	m := dateRegex.FindString(text)
	if m == "" {
		return nil
	}

	d, ok := parseDate(m, now)
	if !ok {
		return nil
	}
	return &d
}

func parseDate(s string, now time.Time) (time.Time, bool) {
	if len(s) == len("2006-01-02") && s[4] == '-' {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '/' || r == '-'
	})
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}

	year := now.Year()
	if len(parts) == 3 {
		switch len(parts[2]) {
		case 2:
			yy, err := strconv.Atoi(parts[2])
			if err != nil {
				return time.Time{}, false
			}
			year = 2000 + yy
		case 4:
			year, err = strconv.Atoi(parts[2])
			if err != nil {
				return time.Time{}, false
			}
		default:
			return time.Time{}, false
		}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
