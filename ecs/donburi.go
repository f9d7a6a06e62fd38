// Package ecs provides ECS adapters for boardwalk.
package ecs

import (
	"github.com/torchlane/boardwalk"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// BuilderEventType is the Donburi event type for boardwalk editor events.
// Subscribe to this in your ECS systems to receive select, drag, drop, and
// double-click events.
var BuilderEventType = events.NewEventType[boardwalk.BuilderEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Editor
// events are published to BuilderEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) boardwalk.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event boardwalk.BuilderEvent) {
	BuilderEventType.Publish(s.world, event)
}
