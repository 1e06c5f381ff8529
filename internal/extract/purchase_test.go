package extract

import (
	"testing"

	"github.com/Veraticus/jotbot/internal/classifier"
	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCost(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "for cue", text: "Bought a book for 500", want: "500"},
		{name: "costs with decimal comma", text: "The lamp costs 12,50", want: "12.5"},
		{name: "price with decimal point", text: "price 7.25 per kilo", want: "7.25"},
		{name: "spent without space", text: "spent20 on lunch", want: "20"},
		{name: "first match wins", text: "paid 30 then spent 40", want: "30"},
		{name: "case insensitive", text: "PAID 15", want: "15"},
		{name: "russian за", text: "купил хлеб за 45.5", want: "45.5"},
		{name: "russian купила", text: "Купила 3 яблока", want: "3"},
		{name: "russian потратил", text: "потратил 1200 на такси", want: "1200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cost(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCost_Absent(t *testing.T) {
	tests := []string{
		"no price mentioned",
		"",
		"bought milk",
		"Price: 10",
		"paid -5 back",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Nil(t, Cost(text))
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		// The token after the verb is taken verbatim, article included.
		{name: "article is not skipped", text: "Bought a book for 500", want: "a"},
		{name: "ordered", text: "I ordered pizza tonight", want: "pizza"},
		{name: "punctuation kept", text: "purchased headphones, finally", want: "headphones,"},
		{name: "keyword with trailing comma", text: "I bought, milk", want: "milk"},
		{name: "first keyword wins", text: "acquired shares and bought coffee", want: "shares"},
		{name: "russian", text: "Купила молоко за 80", want: "молоко"},
		{name: "compound name truncated", text: "bought ice cream", want: "ice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Name(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestName_Absent(t *testing.T) {
	tests := []string{
		"no keyword here",
		"just bought",
		"rebought the same thing",
		"",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Nil(t, Name(text))
		})
	}
}

func TestExtractor_Purchase(t *testing.T) {
	e := New(stubPredictor{labels: map[classifier.Slot]string{classifier.SlotPurpose: "books"}})

	got := e.Purchase("Bought a book for 500")
	require.NotNil(t, got.Cost)
	assert.Equal(t, 500.0, got.Cost.InexactFloat64())
	assert.Equal(t, "a", model.Deref(got.Name))
	assert.Equal(t, "books", got.Purpose)
	assert.Equal(t, model.KindPurchase, got.Kind())
}

func TestExtractor_PurchaseDefaultPurpose(t *testing.T) {
	tests := []struct {
		predictor Predictor
		name      string
	}{
		{name: "nil predictor", predictor: nil},
		{name: "untrained", predictor: stubPredictor{}},
		{name: "broken model", predictor: stubPredictor{err: common.ErrDimensionMismatch}},
		{name: "blank label", predictor: stubPredictor{labels: map[classifier.Slot]string{classifier.SlotPurpose: " "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.predictor).Purchase("no price mentioned")
			assert.Equal(t, model.DefaultPurpose, got.Purpose)
			assert.Nil(t, got.Cost)
			assert.Nil(t, got.Name)
		})
	}
}
