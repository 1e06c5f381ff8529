package extract

import (
	"strings"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/model"
	"github.com/shopspring/decimal"
)

// Purchase extracts name, cost and purpose from a purchase message.
func (e *Extractor) Purchase(text string) model.Purchase {
	purchase := model.Purchase{
		Name:    Name(text),
		Cost:    Cost(text),
		Purpose: model.DefaultPurpose,
	}

	if purpose, ok := e.predict(classifier.SlotPurpose, text); ok {
		purpose = strings.TrimSpace(purpose)
		if purpose != "" {
			purchase.Purpose = purpose
		}
	}

	return purchase
}

// Cost returns the first number that directly follows a price cue such as
// "costs", "for" or "за". A decimal comma is accepted.
func Cost(text string) *decimal.Decimal {
	m := costRegex.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	cost, err := decimal.NewFromString(strings.Replace(m[1], ",", ".", 1))
	if err != nil {
		return nil
	}
	return &cost
}

// Name returns the token right after the first token holding a purchase
// keyword, verbatim. "bought a book" yields "a": the heuristic does not
// skip articles or join compound names.
func Name(text string) *string {
	tokens := strings.Fields(text)
	for i := 0; i < len(tokens)-1; i++ {
		if purchaseWords.matches(tokens[i]) {
			return model.StringPtr(tokens[i+1])
		}
	}
	return nil
}
