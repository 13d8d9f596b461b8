package main

import "kernel386/internal/eventqueue"

// events is the single fixed-capacity ring the keyboard, mouse and timer
// ISRs push into and the window manager polls from (spec §3/§4.10).
var events *eventqueue.Queue

func eventsInit() {
	events = eventqueue.New(EventQueueCapacity)
}

//go:nosplit
func pushEvent(e eventqueue.Event) {
	if events != nil {
		events.Push(e)
	}
}

func pollEvent() (eventqueue.Event, bool) {
	if events == nil {
		return eventqueue.Event{}, false
	}
	return events.Poll()
}

func eventTimer(ticks uint32) eventqueue.Event {
	return eventqueue.Event{Kind: eventqueue.Timer, Ticks: ticks}
}

func eventKey(c byte) eventqueue.Event {
	return eventqueue.Event{Kind: eventqueue.Key, Key: c}
}

func eventMouseMove(x, y int32) eventqueue.Event {
	return eventqueue.Event{Kind: eventqueue.MouseMove, X: x, Y: y}
}

func eventMouseButton(idx int, pressed bool) eventqueue.Event {
	return eventqueue.Event{Kind: eventqueue.MouseButton, ButtonIndex: idx, Pressed: pressed}
}
