package render

import "github.com/freewilll/doomgo/mapdata"

// ScreenPoint is an integer pixel coordinate.
type ScreenPoint struct {
	X, Y int
}

// ScreenLine is a pair of screen-space points, used for the non-vertical
// top/bottom edges of a rendered wall stripe.
type ScreenLine struct {
	Start, End ScreenPoint
}

// ClippedLine is a seg or sprite's viewport-space line after clipping to
// the 90-degree field of view, plus how much of its length was clipped
// off the start so texture columns still line up.
type ClippedLine struct {
	Line        mapdata.Line
	StartOffset float32
}

// viewportLeft and viewportRight are the 90-degree field of view's
// clipping lines in viewport space (x ahead, y left), i.e. y = x and
// y = -x.
var (
	viewportLeft  = mapdata.Line{Start: mapdata.Vertex{X: 0, Y: 0}, End: mapdata.Vertex{X: 1, Y: 1}}
	viewportRight = mapdata.Line{Start: mapdata.Vertex{X: 0, Y: 0}, End: mapdata.Vertex{X: 1, Y: -1}}
)

// clipToViewport clips a line already transformed into player-relative
// viewport space (x ahead, y left) to the 90-degree field of view. ok is
// false when the line is entirely outside the viewport.
func clipToViewport(line mapdata.Line) (clipped ClippedLine, ok bool) {
	startOutsideLeft := line.Start.IsLeftOfLine(viewportLeft.Start, viewportLeft.End)
	endOutsideLeft := line.End.IsLeftOfLine(viewportLeft.Start, viewportLeft.End)

	startOutsideRight := !line.Start.IsLeftOfLine(viewportRight.Start, viewportRight.End)
	endOutsideRight := !line.End.IsLeftOfLine(viewportRight.Start, viewportRight.End)

	startInViewport := line.Start.X > 0 && !startOutsideLeft && !startOutsideRight
	endInViewport := line.End.X > 0 && !endOutsideLeft && !endOutsideRight

	if startInViewport && endInViewport {
		return ClippedLine{Line: line, StartOffset: 0}, true
	}

	leftPt, leftOk := line.Intersect(viewportLeft)
	rightPt, rightOk := line.Intersect(viewportRight)

	leftIntersected := leftOk && leftPt.X >= 0
	rightIntersected := rightOk && rightPt.X >= 0

	if !startInViewport && !endInViewport && !leftIntersected && !rightIntersected {
		return ClippedLine{}, false
	}
	if !startInViewport && !endInViewport && leftIntersected != rightIntersected {
		return ClippedLine{}, false
	}
	if (rightIntersected && startOutsideRight && endOutsideRight) ||
		(leftIntersected && startOutsideLeft && endOutsideLeft) {
		return ClippedLine{}, false
	}

	var startOffset float32
	start, end := line.Start, line.End

	if leftIntersected {
		if startOutsideLeft {
			startOffset = leftPt.Distance(start)
			start = leftPt
		}
		if endOutsideLeft {
			end = leftPt
		}
	}
	if rightIntersected {
		if startOutsideRight {
			start = rightPt
		}
		if endOutsideRight {
			end = rightPt
		}
	}

	return ClippedLine{Line: mapdata.Line{Start: start, End: end}, StartOffset: startOffset}, true
}

// perspectiveTransform projects a viewport-space vertex (x ahead, y left)
// plus a world height into the wide intermediate screen plane described
// by GameCameraFocusX. See
// https://en.wikipedia.org/wiki/3D_projection#Weak_perspective_projection
func perspectiveTransform(v mapdata.Vertex, height float32) mapdata.Vertex {
	x := v.Y
	z := v.X
	focus := float32(GameCameraFocusX)
	return mapdata.Vertex{X: focus * x / z, Y: focus * height / z}
}

// makeSidedefNonVerticalLine projects a wall stripe's (already
// viewport-clipped) line at a given world height into screen
// coordinates, applying the aspect ratio correction and clamping to the
// screen's right edge.
func makeSidedefNonVerticalLine(line mapdata.Line, height float32) ScreenLine {
	ts := perspectiveTransform(line.Start, height)
	te := perspectiveTransform(line.End, height)

	ts.X *= aspectRatioCorrection
	te.X *= aspectRatioCorrection

	startX := int(float64(CameraFocusX) - float64(ts.X))
	startY := int(float64(CameraFocusY) - float64(ts.Y))
	endX := int(float64(CameraFocusX) - float64(te.X))
	endY := int(float64(CameraFocusY) - float64(te.Y))

	if startX > ScreenWidth-1 {
		startX = ScreenWidth - 1
	}
	if endX > ScreenWidth-1 {
		endX = ScreenWidth - 1
	}

	return ScreenLine{Start: ScreenPoint{X: startX, Y: startY}, End: ScreenPoint{X: endX, Y: endY}}
}
