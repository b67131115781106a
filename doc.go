// Package lottie is the composition layer of a vector animation player
// for [Ebitengine].
//
// An animation is a tree of layers. A [PreCompositionLayer] embeds a
// reusable precomposition asset as a single layer: it instantiates the
// asset's layers, pairs layers that request a track matte with the layer
// directly above them, maps its parent's timeline onto the asset's local
// timeline (start frame and time stretch, or a time remap curve) and owns
// the render tree subtree for everything inside it.
//
// # Quick start
//
// The simplest way to play an animation is [Run], which creates a window and
// game loop for you:
//
//	anim := lottie.NewAnimation(model, lottie.AnimationOptions{})
//	lottie.Run(anim, lottie.RunConfig{Title: "Intro", Loop: true})
//
// For full control, drive the [Animation] yourself and draw its snapshots
// with a [Renderer]:
//
//	func (g *Game) Update() error        { g.anim.SetFrame(g.frame); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.renderer.Draw(s, g.anim.Snapshot()) }
//
// # Frames and render trees
//
// Every frame runs in two passes on the owning goroutine. DisplayWithFrame
// evaluates keyframes and pushes the frame down the layer tree, converting
// it to each precomposition's local time. UpdateRenderTree then copies the
// layers' values into their [RenderTreeNode]s; a matte is always
// synchronized before the layer it masks. [Animation.SetFrame] does both and
// publishes a deep copy of the tree that [Animation.Snapshot] returns from
// any goroutine.
//
// The render tree of a precomposition has a fixed shape:
//
//	root      the layer's own values (always neutral) and its matte mask
//	contents  the animated transform and opacity, clipped to the bounds
//	group     the visible children, back to front
//
// Layers that only serve as another layer's matte are not children of the
// group; they are reachable through [RenderTreeNode.Mask].
//
// # Keypaths
//
// Properties are addressed by dot-separated layer names, e.g.
// "intro.logo.Opacity" or "*.Time Remap", and can be overridden with
// [Animation.SetValueProvider].
//
// Keyframe easing uses [gween] and transforms use [mathgl]. Frame events can
// be forwarded to a [Donburi] world with the adapter in lottie/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [mathgl]: https://github.com/go-gl/mathgl
// [Donburi]: https://github.com/yohamta/donburi
package lottie
