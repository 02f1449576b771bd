package game

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antworks/pheromone"
)

// antSnapshot captures read-only state for the parallel steering pass.
type antSnapshot struct {
	Entity ecs.Entity
	State  pheromone.AntState
}

// steerIntent is one steering result, applied after the parallel phase.
type steerIntent struct {
	Heading float32
	Signal  bool
}

// workChunk is a range of snapshots for one worker.
type workChunk struct {
	start, end int
	workerID   int
}

// parallelState holds resources for the parallel steering pass. Each worker
// owns its own Steering so the noise RNGs are never shared; the field itself
// is only read during the pass since deposits are buffered.
type parallelState struct {
	snapshots  []antSnapshot
	intents    []steerIntent
	steerings  []*pheromone.Steering
	numWorkers int
	now        float32

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState(seed int64, params pheromone.Params, field *pheromone.Field) *parallelState {
	numWorkers := runtime.GOMAXPROCS(0)
	steerings := make([]*pheromone.Steering, numWorkers)
	for i := range steerings {
		steerings[i] = pheromone.NewSteering(field, params, rand.New(rand.NewSource(seed+int64(i)+1)))
	}
	return &parallelState{
		numWorkers: numWorkers,
		steerings:  steerings,
		snapshots:  make([]antSnapshot, 0, 256),
		intents:    make([]steerIntent, 0, 256),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *parallelState) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.computeChunk(chunk.start, chunk.end, chunk.workerID)
			p.doneChan <- struct{}{}
		}
	}
}

// computeChunk runs steering for a range of snapshots.
func (p *parallelState) computeChunk(i0, i1, workerID int) {
	s := p.steerings[workerID]
	for i := i0; i < i1; i++ {
		heading, ok := s.Follow(p.snapshots[i].State, p.now)
		p.intents[i] = steerIntent{Heading: heading, Signal: ok}
	}
}

// compute fills intents for all snapshots, dispatching to the worker pool
// when the population is large enough to pay for it.
func (p *parallelState) compute(now float32, threshold int) {
	n := len(p.snapshots)
	if n == 0 {
		return
	}

	if cap(p.intents) < n {
		p.intents = make([]steerIntent, n)
	}
	p.intents = p.intents[:n]
	p.now = now

	if n < threshold {
		p.computeChunk(0, n, 0)
		return
	}

	if !p.running {
		p.startWorkers()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		p.workChan <- workChunk{start: start, end: end, workerID: w}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
