package services

import "github.com/hyuyu1012/chaeum/models"

const (
	EventEntryCreated = "entry.created"
	EventEntryUpdated = "entry.updated"
	EventEntryDeleted = "entry.deleted"
)

type DiaryEvent struct {
	Kind  string        `json:"kind"`
	Date  string        `json:"date"`
	Entry *models.Entry `json:"entry,omitempty"`
}

type eventDeps struct {
	rt *RealtimeHub
}

var _events eventDeps

// InitEventDeps wires the hub once at startup.
func InitEventDeps(rt *RealtimeHub) {
	_events = eventDeps{rt: rt}
}

// EmitDiaryEvent is safe to call anywhere, including before InitEventDeps.
func EmitDiaryEvent(kind, date string, entry *models.Entry) {
	if _events.rt == nil {
		return
	}
	_events.rt.Broadcast(DiaryEvent{Kind: kind, Date: date, Entry: entry})
}
