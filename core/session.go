package core

import "time"

// Session is the append-only transcript of turns for a single logical query.
//
// Contract:
//   - A session is owned exclusively by one agent run and is NOT safe for
//     concurrent use; runs never share sessions, so no locking is needed.
//   - Turns are append-only; recorded events are never mutated or removed.
//   - Contents returns the full ordered context resent to the model service
//     on each round-trip.
type Session struct {
	ID      string    `json:"id"`
	Events  []Event   `json:"events"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// NewSession creates an empty session transcript.
func NewSession() *Session {
	now := time.Now()
	return &Session{ID: NewID(), Events: []Event{}, Created: now, Updated: now}
}

// RecordUser appends a user text turn.
func (s *Session) RecordUser(text string) {
	s.append(NewUserMessageEvent(text))
}

// RecordModel appends a model reply turn (text and/or function call request).
func (s *Session) RecordModel(author string, content Content) {
	s.append(NewModelEvent(author, content))
}

// RecordToolResult appends a tool-result turn keyed by the originating
// function call.
func (s *Session) RecordToolResult(author string, call FunctionCall, result string, err error) {
	s.append(NewFunctionResponseEvent(author, call, result, err))
}

func (s *Session) append(ev Event) {
	s.Events = append(s.Events, ev)
	s.Updated = time.Now()
}

// GetEvents returns a defensive copy of the full event slice.
func (s *Session) GetEvents() []Event {
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return events
}

// Contents converts the transcript into the ordered content sequence handed
// to the model service. The session itself performs no network calls; it is
// pure state.
func (s *Session) Contents() []Content {
	res := make([]Content, 0, len(s.Events))
	for _, ev := range s.Events {
		if ev.Content == nil {
			continue
		}
		res = append(res, *ev.Content)
	}
	return res
}
