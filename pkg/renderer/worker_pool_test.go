package renderer

import (
	"testing"

	"github.com/df07/go-tile-tracer/pkg/core"
)

func TestWorkerPool_RendersEveryTile(t *testing.T) {
	sc := createTestScene(t, nil, true)
	mock := &MockIntegrator{returnColor: core.NewVec3(0.25, 0.5, 1), panicAboveX: 1e9}
	tiles := NewTileGrid(20, 12, 5)

	pool := NewWorkerPool(NewTileRenderer(sc, mock, 20, 12, 1), 3, len(tiles), 1)
	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}
	pool.Stop()

	seen := make(map[int]bool)
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			t.Fatalf("Task %d failed: %v", result.TaskID, result.Error)
		}
		if len(result.Buffer) != result.Tile.Bounds.Dx()*result.Tile.Bounds.Dy() {
			t.Errorf("Task %d: buffer of %d pixels for bounds %v", result.TaskID, len(result.Buffer), result.Tile.Bounds)
		}
		if result.WorkerID < 0 || result.WorkerID >= 3 {
			t.Errorf("Task %d: unexpected worker %d", result.TaskID, result.WorkerID)
		}
		seen[result.TaskID] = true
	}

	if len(seen) != len(tiles) {
		t.Errorf("Expected %d results, got %d", len(tiles), len(seen))
	}
}

func TestWorkerPool_SkipsTasksAfterFailure(t *testing.T) {
	sc := createTestScene(t, nil, true)
	mock := &MockIntegrator{panicAboveX: -1e9}
	tiles := NewTileGrid(16, 16, 4)

	pool := NewWorkerPool(NewTileRenderer(sc, mock, 16, 16, 1), 1, len(tiles), 1)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}
	pool.Start()
	pool.Stop()

	var results []TileResult
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		results = append(results, result)
	}

	if len(results) != 1 {
		t.Fatalf("Expected only the failing task to report, got %d results", len(results))
	}
	if results[0].Error == nil || results[0].Buffer != nil {
		t.Errorf("Expected a failed result without a buffer, got %+v", results[0])
	}
	if mock.callCount != 1 {
		t.Errorf("Expected rendering to stop at the first panic, got %d integrator calls", mock.callCount)
	}
}
