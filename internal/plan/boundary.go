package plan

import (
	"image"
	"sort"

	"github.com/0xdowz/auto-draw-bot/internal/palette"
	"github.com/0xdowz/auto-draw-bot/internal/quantize"
)

// chain is one run of boundary cells for a single color, in raster
// coordinates. The outline planner maps chains to screen space directly;
// the vector planner simplifies them first.
type chain struct {
	color palette.Color
	cells []image.Point
}

var neighbors4 = [4]image.Point{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// boundaryChains extracts, for every non-skip color in the raster, the
// boundary cells of each 4-connected region and orders them with a greedy
// nearest-unvisited-neighbor walk. The walk breaks into a new chain
// whenever the nearest unvisited boundary cell is not 8-adjacent to the
// current one: a region with holes has more than one boundary loop, and
// bridging loops with an artificial stroke would paint across the region.
func boundaryChains(r quantize.Raster, skip palette.Color) []chain {
	if r.Empty() {
		return nil
	}

	var out []chain
	for _, c := range r.Colors() {
		if c == skip {
			continue
		}
		mask := colorMask(r, c)
		for _, region := range regions(mask, r.Width, r.Height) {
			cells := boundaryCells(region, mask, r.Width, r.Height)
			for _, walk := range greedyWalks(cells) {
				out = append(out, chain{color: c, cells: walk})
			}
		}
	}
	return out
}

func colorMask(r quantize.Raster, c palette.Color) []bool {
	mask := make([]bool, r.Width*r.Height)
	for i, cell := range r.Cells {
		mask[i] = cell == c
	}
	return mask
}

// regions lists the 4-connected components of the mask, each as a set of
// cells in scan order.
func regions(mask []bool, w, h int) [][]image.Point {
	visited := make([]bool, len(mask))
	var out [][]image.Point
	for start := range mask {
		if !mask[start] || visited[start] {
			continue
		}
		var region []image.Point
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			p := image.Point{X: idx % w, Y: idx / w}
			region = append(region, p)
			for _, d := range neighbors4 {
				nx, ny := p.X+d.X, p.Y+d.Y
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if mask[ni] && !visited[ni] {
					visited[ni] = true
					queue = append(queue, ni)
				}
			}
		}
		out = append(out, region)
	}
	return out
}

// boundaryCells keeps the region cells with at least one 4-neighbor outside
// the mask or outside the raster.
func boundaryCells(region []image.Point, mask []bool, w, h int) []image.Point {
	var out []image.Point
	for _, p := range region {
		for _, d := range neighbors4 {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || ny < 0 || nx >= w || ny >= h || !mask[ny*w+nx] {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// greedyWalks orders boundary cells into stroke chains. The cells are
// sorted row-major first, so the walk starts at the top-left boundary cell
// and distance ties resolve in scan order regardless of how the region was
// discovered. From the current cell it picks the nearest unvisited cell
// (squared distance); a jump longer than one diagonal starts a new chain.
func greedyWalks(cells []image.Point) [][]image.Point {
	if len(cells) == 0 {
		return nil
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	visited := make([]bool, len(cells))
	remaining := len(cells)

	var walks [][]image.Point
	current := 0
	visited[0] = true
	remaining--
	walk := []image.Point{cells[0]}

	for remaining > 0 {
		next := -1
		nextDist := 0
		for i, cell := range cells {
			if visited[i] {
				continue
			}
			d := sqDist(cells[current], cell)
			if next == -1 || d < nextDist {
				next = i
				nextDist = d
			}
		}
		visited[next] = true
		remaining--
		if nextDist > 2 {
			// Disconnected boundary fragment: separate segment.
			walks = append(walks, walk)
			walk = nil
		}
		walk = append(walk, cells[next])
		current = next
	}
	walks = append(walks, walk)
	return walks
}

func sqDist(a, b image.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
