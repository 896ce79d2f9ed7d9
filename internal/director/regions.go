package director

import (
	"fmt"
	"image"
	"math/rand"
	"strconv"
	"strings"
)

// ParseRegion parses "x,y,w,h" in viewport pixels.
func ParseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region %q: want x,y,w,h", s)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}

	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q: width and height must be positive", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// RandomRegions places n regions inside the viewport, each between a tenth
// and a third of it on either side.
func RandomRegions(rng *rand.Rand, n, width, height int) []image.Rectangle {
	regions := make([]image.Rectangle, 0, n)
	for range n {
		w := width/10 + rng.Intn(width/3-width/10+1)
		h := height/10 + rng.Intn(height/3-height/10+1)
		x := rng.Intn(width - w + 1)
		y := rng.Intn(height - h + 1)
		regions = append(regions, image.Rect(x, y, x+w, y+h))
	}
	return regions
}
