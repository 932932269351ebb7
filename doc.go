// Package chart is a reactive chart engine for [Ebitengine]: an animated donut
// chart and a grouped-column chart, built on a small retained scene graph.
//
// # Quick start
//
// A chart attaches beneath a scene node and renders whenever its
// configuration changes:
//
//	scene := chart.NewScene()
//	donut := chart.NewDonutChart()
//	donut.Init(scene.Root(), chart.SizeFunc(func() (float64, float64) {
//		return 640, 480
//	}))
//	donut.OnConfigChanged(&chart.DonutConfig{
//		Data: []chart.DataPoint{
//			{Value: 30, Color: "#00a3e0", Label: "Open"},
//			{Value: 10, Color: "#ffb81c", Label: "Closed"},
//		},
//	})
//	chart.Run(scene, chart.RunConfig{Title: "Donut", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call [Scene.Update]
// and [Scene.Draw] directly.
//
// # Rendering model
//
// Every visual element is a [Node]: a container, an annular sector
// ([NewArc]), a rectangle ([NewRect]) or a line of text ([NewText]). Nodes
// are positioned by translation and inherit their parent's offset and
// alpha. Shapes are tessellated on the CPU and drawn with DrawTriangles.
//
// Each render joins the current records to existing nodes by key. Records
// with a new key get a fresh node, matched keys update the node they already
// own, and keys that disappeared are disposed. Transitions are tweens (via
// [gween]) that always start from the node's current geometry, so a render
// during an animation continues smoothly.
//
// # Charts
//
// [DonutChart] draws one slice per data point, a legend with percentages and
// a total readout in the hole. Hovering a slice emphasizes it; clicking one
// emits a [SectionClickEvent].
//
// [GroupedColumnChart] draws one bar per (label, series) pair over a band
// scale, with count pills above each bar, an axis of labels and a centered
// legend. Striped series are drawn hatched and carry no count. Clicking a bar
// emits a [BarClickEvent]; hovering one shows its share of the series total.
//
// Both charts call [Container.Size] for their width and re-render once, a
// short delay after the last [DonutChart.OnResize] notification. Hosts drive
// that delay by calling Tick every frame.
//
// # Logging
//
// The engine is silent by default. Pass a [log/slog] logger to [SetLogger] to
// see render passes at debug level and recoverable input problems as
// warnings.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package chart
