package renderer

import (
	"fmt"
	"math/rand"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/df07/go-tile-tracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int
}

// TileResult contains the result from rendering a tile. Buffer is owned by
// the receiver and is nil when Error is set.
type TileResult struct {
	TaskID   int
	Tile     *Tile
	Buffer   []core.Vec3
	Stats    RenderStats
	WorkerID int
	Error    error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	failed      atomic.Bool // set once any tile fails; remaining tasks are skipped
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID       int
	renderer *TileRenderer
	sampler  core.Sampler // owned by this worker only
	pool     *WorkerPool  // Reference to parent pool for queues and failure state
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Each worker gets its own random source seeded from seed. queueSize bounds
// the number of tasks that can be submitted without a worker receiving them.
func NewWorkerPool(tileRenderer *TileRenderer, numWorkers, queueSize int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		numWorkers:  numWorkers,
	}

	// Create workers
	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:       i,
			renderer: tileRenderer,
			sampler:  core.NewRandomSampler(rand.New(rand.NewSource(seed + int64(i)))),
			pool:     wp,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue, waits for the workers to drain it and closes
// the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.pool.taskQueue {
		if w.pool.failed.Load() {
			continue
		}

		result := w.renderTask(task)
		if result.Error != nil {
			w.pool.failed.Store(true)
		}
		w.pool.resultQueue <- result
	}
}

// renderTask renders one tile, turning a panic into a failed result so the
// tile is never merged
func (w *Worker) renderTask(task TileTask) (result TileResult) {
	defer func() {
		if r := recover(); r != nil {
			result = TileResult{
				TaskID:   task.TaskID,
				Tile:     task.Tile,
				WorkerID: w.ID,
				Error:    fmt.Errorf("worker %d panicked rendering tile %d: %v\n%s", w.ID, task.Tile.ID, r, debug.Stack()),
			}
		}
	}()

	buffer, stats := w.renderer.RenderTile(task.Tile.Bounds, w.sampler)
	return TileResult{
		TaskID:   task.TaskID,
		Tile:     task.Tile,
		Buffer:   buffer,
		Stats:    stats,
		WorkerID: w.ID,
	}
}
