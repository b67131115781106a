package ecs

import (
	"github.com/phanxgames/lottie"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameEventType is the Donburi event type for lottie frame events.
var FrameEventType = events.NewEventType[lottie.FrameEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a FrameSink backed by a Donburi world. Frame events
// are published to FrameEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) lottie.FrameSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitFrame(event lottie.FrameEvent) {
	FrameEventType.Publish(s.world, event)
}
