package collide

import (
	"math"
	"slices"
)

// SpatialHashGrid buckets collider ids by the cells their bounds overlap.
// It only answers broadphase questions; callers run exact tests on the candidates.
type SpatialHashGrid struct {
	cellSize float32
	cells    map[uint64][]ColliderId
}

func NewSpatialHashGrid(cellSize float32) *SpatialHashGrid {
	if cellSize <= 0 {
		cellSize = 2.0
	}
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]ColliderId),
	}
}

func (grid *SpatialHashGrid) Clear() {
	clear(grid.cells)
}

func (grid *SpatialHashGrid) Insert(id ColliderId, aabb AABB) {
	grid.forCells(aabb, func(key uint64) {
		grid.cells[key] = append(grid.cells[key], id)
	})
}

func (grid *SpatialHashGrid) Remove(id ColliderId, aabb AABB) {
	grid.forCells(aabb, func(key uint64) {
		ids := slices.DeleteFunc(grid.cells[key], func(c ColliderId) bool { return c == id })
		if len(ids) == 0 {
			delete(grid.cells, key)
			return
		}
		grid.cells[key] = ids
	})
}

// QueryAABB returns each candidate overlapping aabb's cells once.
func (grid *SpatialHashGrid) QueryAABB(aabb AABB) []ColliderId {
	unique := make(map[ColliderId]struct{})
	var results []ColliderId
	grid.forCells(aabb, func(key uint64) {
		for _, id := range grid.cells[key] {
			if _, ok := unique[id]; !ok {
				unique[id] = struct{}{}
				results = append(results, id)
			}
		}
	})
	return results
}

func (grid *SpatialHashGrid) forCells(aabb AABB, fn func(key uint64)) {
	minX, maxX := grid.cellIndex(aabb.Min.X()), grid.cellIndex(aabb.Max.X())
	minY, maxY := grid.cellIndex(aabb.Min.Y()), grid.cellIndex(aabb.Max.Y())
	minZ, maxZ := grid.cellIndex(aabb.Min.Z()), grid.cellIndex(aabb.Max.Z())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				fn(grid.hashKey(x, y, z))
			}
		}
	}
}

func (grid *SpatialHashGrid) cellIndex(pos float32) int {
	return int(math.Floor(float64(pos / grid.cellSize)))
}

func (grid *SpatialHashGrid) hashKey(x, y, z int) uint64 {
	// large primes for mixing
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}
