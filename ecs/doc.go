// Package ecs provides ECS adapters for boardwalk's editor event system.
//
// The primary adapter is [NewDonburiSink], which bridges boardwalk editor
// events (select, drag, drop, double-click) into a [Donburi] world as
// typed events. Subscribe to [BuilderEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	builder.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
