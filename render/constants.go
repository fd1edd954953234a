package render

// PlayerEyeHeight is the vertical offset from a sector's floor to the
// camera.
const PlayerEyeHeight = 41.0

// aspectRatioCorrection accounts for DOOM's assets being authored for
// 320x200 on hardware that actually displayed square pixels at 320x240:
// https://doomwiki.org/wiki/Aspect_ratio
const aspectRatioCorrection = 200.0 / 240.0

// The perspective transform projects onto a wider-than-screen plane and
// lets the caller correct it back afterwards, so the end result matches
// what the original hardware showed.
const (
	GameScreenWidth  = float64(ScreenWidth) / aspectRatioCorrection
	GameCameraFocusX = GameScreenWidth / 2

	CameraFocusX = float64(ScreenWidth) / 2
	CameraFocusY = float64(ScreenHeight) / 2
)
