// Package director turns a set of regions of interest into a camera clip:
// a smooth path that starts on the full viewport, visits every region in
// reading order with a zoom that fits it, and returns to the full view.
package director

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ivlev/animtrack/internal/clip"
)

const (
	PositionTrack = "camera.position"
	ZoomTrack     = "camera.zoom"

	FullViewTag = "full_view"
)

var ErrNoRegions = errors.New("no regions to visit")

// Director generates camera path clips for a fixed viewport.
type Director struct {
	ViewportWidth  int
	ViewportHeight int
	MinDwell       float64 // Minimum time per region (seconds)
	MaxDwell       float64 // Maximum time per region (seconds)
	// Intro and Outro are the seconds spent on the full view before the
	// first and after the last region.
	Intro float64
	Outro float64
	// MaxZoom caps how far a small region is magnified.
	MaxZoom float64
}

// NewDirector creates a new Director with default settings
func NewDirector(viewportWidth, viewportHeight int) *Director {
	return &Director{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		MinDwell:       1.0,
		MaxDwell:       3.0,
		Intro:          1.0,
		Outro:          1.0,
		MaxZoom:        3.0,
	}
}

// GenerateClip creates a camera clip named name, totalDuration seconds long
// at fps frames per second. Keys carry zero tangents so the camera eases in
// and out of every stop.
func (d *Director) GenerateClip(name string, regions []image.Rectangle, totalDuration, fps float64) (*clip.Clip, error) {
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %v", fps)
	}
	if d.ViewportWidth <= 0 || d.ViewportHeight <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", d.ViewportWidth, d.ViewportHeight)
	}

	sorted := d.sortRegions(regions)
	dwell := d.calculateDwellTime(totalDuration, len(sorted))

	full := image.Rect(0, 0, d.ViewportWidth, d.ViewportHeight)

	position := clip.TrackDef{Name: PositionTrack, Kind: clip.KindPosition}
	zoom := clip.TrackDef{Name: ZoomTrack, Kind: clip.KindFloat}

	lastFrame := -1
	addStop := func(seconds float64, rect image.Rectangle, z float64, tag string) {
		frame := int(math.Round(seconds * fps))
		if frame <= lastFrame {
			// Stops closer than a frame apart collapse onto the next frame.
			frame = lastFrame + 1
		}
		lastFrame = frame

		center := d.calculateCenter(rect)
		position.Keyframes = append(position.Keyframes, clip.KeyframeDef{
			Frame:   frame,
			Value:   []float64{float64(center.X), float64(center.Y), 0},
			Tangent: flat(),
			Tag:     tag,
		})
		zoom.Keyframes = append(zoom.Keyframes, clip.KeyframeDef{
			Frame:   frame,
			Value:   []float64{z},
			Tangent: flat(),
			Tag:     tag,
		})
	}

	addStop(0, full, 1.0, FullViewTag)

	current := d.Intro
	for i, region := range sorted {
		addStop(current, region, d.calculateZoom(region), fmt.Sprintf("region_%d", i+1))
		current += dwell
	}

	addStop(current, full, 1.0, FullViewTag)

	c := &clip.Clip{
		Version:    clip.Version,
		Name:       name,
		FrameCount: lastFrame + 1,
		FPS:        fps,
		Tracks:     []clip.TrackDef{position, zoom},
	}
	return c, c.Validate()
}

// sortRegions sorts regions in reading order (top-to-bottom, left-to-right)
func (d *Director) sortRegions(regions []image.Rectangle) []image.Rectangle {
	sorted := make([]image.Rectangle, len(regions))
	copy(sorted, regions)

	sort.SliceStable(sorted, func(i, j int) bool {
		// Threshold for "same row" (20 pixels)
		threshold := 20

		yDiff := sorted[i].Min.Y - sorted[j].Min.Y
		if abs(yDiff) > threshold {
			return sorted[i].Min.Y < sorted[j].Min.Y
		}

		return sorted[i].Min.X < sorted[j].Min.X
	})

	return sorted
}

// calculateDwellTime determines how long to stay on each region
func (d *Director) calculateDwellTime(totalDuration float64, regionCount int) float64 {
	availableDuration := totalDuration - d.Intro - d.Outro
	if availableDuration <= 0 {
		availableDuration = totalDuration
	}

	dwellTime := availableDuration / float64(regionCount)

	if dwellTime < d.MinDwell {
		dwellTime = d.MinDwell
	}
	if dwellTime > d.MaxDwell {
		dwellTime = d.MaxDwell
	}

	return dwellTime
}

// calculateZoom determines the zoom level that fits the region in the viewport
func (d *Director) calculateZoom(region image.Rectangle) float64 {
	padding := 0.9 // Use 90% of viewport

	viewportW := float64(d.ViewportWidth) * padding
	viewportH := float64(d.ViewportHeight) * padding

	regionW := float64(region.Dx())
	regionH := float64(region.Dy())

	if regionW == 0 || regionH == 0 {
		return 1.0
	}

	zoom := math.Min(viewportW/regionW, viewportH/regionH)

	if zoom < 1.0 {
		zoom = 1.0
	}
	if d.MaxZoom > 0 && zoom > d.MaxZoom {
		zoom = d.MaxZoom
	}

	return zoom
}

func (d *Director) calculateCenter(rect image.Rectangle) image.Point {
	return image.Point{
		X: rect.Min.X + rect.Dx()/2,
		Y: rect.Min.Y + rect.Dy()/2,
	}
}

func flat() *float64 {
	zero := 0.0
	return &zero
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
