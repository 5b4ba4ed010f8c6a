// Package viewport holds the interactive pan and zoom state of a tree view
// and exports the full content through a drawing surface.
//
// # Transform
//
// A [Transform] maps layout coordinates to screen coordinates:
//
//	screen = world*Scale + Translate
//
// The [Controller] owns one Transform and changes it only through its
// methods (ZoomIn, ZoomOut, ZoomAt, Pan, ResetZoom, FitToScreen). Scale is
// always clamped to [MinScale, MaxScale].
//
// # Export
//
// Export temporarily resizes a [Surface] to the content bounds plus padding,
// re-homes the transform so content starts at the padding offset, waits one
// frame, captures, and restores the previous size and transform on every exit
// path:
//
//	data, err := ctrl.ExportPNG(ctx, canvas)
//
// With empty bounds, FitToScreen and the exports do nothing.
package viewport
