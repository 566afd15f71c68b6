// Package session tracks the per-sender order wizard state. A sender has at
// most one pending order; the store keeps it alive for a configurable TTL and
// treats expired entries as absent.
package session

import (
	"context"
	"time"
)

// Step is the wizard question currently awaiting an answer.
type Step string

const (
	StepProduct Step = "product"
	StepName    Step = "name"
	StepPhone   Step = "phone"
	StepAddress Step = "address"
)

// Next returns the step that follows, or "" when the wizard is complete.
func (s Step) Next() Step {
	switch s {
	case StepProduct:
		return StepName
	case StepName:
		return StepPhone
	case StepPhone:
		return StepAddress
	default:
		return ""
	}
}

// Prompt is the question the bot asks for this step.
func (s Step) Prompt() string {
	switch s {
	case StepProduct:
		return "What product would you like to order?"
	case StepName:
		return "Great! What's your name?"
	case StepPhone:
		return "What's the best phone number to reach you?"
	case StepAddress:
		return "What's your delivery address?"
	default:
		return ""
	}
}

// PendingOrder is the in-flight wizard state for one sender.
type PendingOrder struct {
	Step      Step              `json:"step"`
	Fields    map[string]string `json:"fields"`
	StartedAt time.Time         `json:"started_at"`
}

// NewPendingOrder opens a fresh wizard at the first step.
func NewPendingOrder(now time.Time) *PendingOrder {
	return &PendingOrder{
		Step:      StepProduct,
		Fields:    map[string]string{},
		StartedAt: now,
	}
}

// Store holds pending orders keyed by sender. Get returns (nil, nil) when the
// sender has no live session.
type Store interface {
	Get(ctx context.Context, sender string) (*PendingOrder, error)
	Put(ctx context.Context, sender string, pending *PendingOrder) error
	Delete(ctx context.Context, sender string) error
}
