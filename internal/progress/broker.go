// Package progress fans analysis-import progress out to watchers. It lives
// outside the navigation core; publishing never interleaves with an
// in-flight navigation call.
package progress

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Event is one progress update for a project's analysis import.
type Event struct {
	ProjectID string         `json:"project_id"`
	Stage     string         `json:"stage"`
	Message   string         `json:"message,omitempty"`
	Percent   int            `json:"percent"`
	Fields    map[string]any `json:"fields,omitempty"`
	At        time.Time      `json:"at"`
}

type subscriber struct {
	ch chan Event
}

// Broker is an in-process publish/subscribe hub keyed by project id.
// Slow subscribers drop events rather than block the publisher.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*subscriber]struct{})}
}

// Subscribe returns a channel of events for the project. The channel closes
// when ctx is canceled.
func (b *Broker) Subscribe(ctx context.Context, projectID string) (<-chan Event, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, fmt.Errorf("project_id is required")
	}
	sub := &subscriber{ch: make(chan Event, 16)}

	b.mu.Lock()
	set, ok := b.subs[projectID]
	if !ok {
		set = make(map[*subscriber]struct{})
		b.subs[projectID] = set
	}
	set[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if set, ok := b.subs[projectID]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(b.subs, projectID)
			}
		}
		// Closed under the lock so a concurrent Publish cannot send on a
		// closed channel.
		close(sub.ch)
	}()

	return sub.ch, nil
}

// Publish delivers the event to every current watcher of the project.
func (b *Broker) Publish(ev Event) {
	ev.ProjectID = strings.TrimSpace(ev.ProjectID)
	if ev.ProjectID == "" {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs[ev.ProjectID] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
