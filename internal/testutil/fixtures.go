package testutil

import (
	"time"

	"github.com/Veraticus/jotbot/internal/model"
	"github.com/shopspring/decimal"
)

// Purchase builds a purchase fixture. An empty cost leaves Cost nil.
func Purchase(name, cost, purpose string) model.Purchase {
	p := model.Purchase{Name: model.StringPtr(name), Purpose: purpose}
	if cost != "" {
		d := decimal.RequireFromString(cost)
		p.Cost = &d
	}
	return p
}

// Task builds a task fixture. An empty deadline leaves Deadline nil.
func Task(title, deadline string) model.Task {
	task := model.Task{Title: model.StringPtr(title)}
	if deadline != "" {
		d, err := time.Parse(time.DateOnly, deadline)
		if err != nil {
			panic(err)
		}
		task.Deadline = &d
	}
	return task
}
