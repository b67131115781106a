// Package ecs provides ECS adapters for lottie's frame events.
//
// The primary adapter is [NewDonburiSink], which forwards every published
// animation frame into a [Donburi] world as a typed event. Subscribe to
// [FrameEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	anim.SetFrameSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
