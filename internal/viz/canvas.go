package viz

import "strings"

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid with a world-coordinate viewport. World
// y grows downward, matching the structure's coordinate convention, so no
// axis flip is needed when projecting.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	minX, minY float64
	scale      float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		scale:  1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// SetViewport fits the world rectangle into the canvas, preserving a
// margin. Degenerate extents fall back to a unit span.
func (c *Canvas) SetViewport(minX, minY, maxX, maxY float64) {
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	margin := 0.1
	minX -= spanX * margin
	minY -= spanY * margin
	spanX *= 1 + 2*margin
	spanY *= 1 + 2*margin

	pxW := float64(c.Width * 2)
	pxH := float64(c.Height * 4)
	scaleX := pxW / spanX
	scaleY := pxH / spanY

	c.minX, c.minY = minX, minY
	c.scale = scaleX
	if scaleY < c.scale {
		c.scale = scaleY
	}
}

// Project maps world coordinates to sub-pixel coordinates.
func (c *Canvas) Project(x, y float64) (int, int) {
	return int((x - c.minX) * c.scale), int((y - c.minY) * c.scale)
}

// Set lights a pixel at sub-pixel coordinates. The canvas size in
// sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawWorldLine draws a line between two world-coordinate points.
func (c *Canvas) DrawWorldLine(x0, y0, x1, y1 float64) {
	px0, py0 := c.Project(x0, y0)
	px1, py1 := c.Project(x1, y1)
	c.DrawLine(px0, py0, px1, py1)
}

// MarkWorld lights a 2x2 blob at a world-coordinate point.
func (c *Canvas) MarkWorld(x, y float64) {
	px, py := c.Project(x, y)
	c.Set(px, py)
	c.Set(px+1, py)
	c.Set(px, py+1)
	c.Set(px+1, py+1)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
