package render

import (
	"context"
	"image"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/inkframe/inkframe/pkg/raster"
	"github.com/inkframe/inkframe/util/log"
)

// Job is one image to render. Each job owns its source; nothing is shared
// across invocations, which is what keeps the core lock-free.
type Job struct {
	ID      string
	Source  image.Image
	Intent  Intent
	Profile DisplayProfile
}

// Result is the outcome of one job. Exactly one of Raster, Reject and Err
// is set.
type Result struct {
	ID     string
	Raster *raster.Buffer
	Reject *Reject
	Err    error
}

// Pool runs render jobs across a set of workers. Error diffusion is
// inherently sequential within one image, so parallelism only ever spans
// images, one buffer per job.
type Pool struct {
	jobChan    chan Job
	resultChan chan Result
	workerWg   sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	renderer   *Renderer
}

// NewPool creates a pool around a shared Renderer.
func NewPool(r *Renderer) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		jobChan:    make(chan Job, 100), // Buffered job channel
		resultChan: make(chan Result, 100),
		ctx:        ctx,
		cancel:     cancel,
		renderer:   r,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workerCount int) {
	log.Printf("Starting render pool with %d workers", workerCount)
	for i := 0; i < workerCount; i++ {
		p.workerWg.Add(1)
		go p.workerLoop(i)
	}
}

// Stop cancels the pool and waits for workers to finish.
func (p *Pool) Stop() {
	p.cancel()
	p.workerWg.Wait()
	close(p.resultChan)
	log.Println("Render pool stopped.")
}

// Submit queues a job. Returns false if the pool is stopped.
func (p *Pool) Submit(job Job) bool {
	select {
	case p.jobChan <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// Results returns the channel of completed jobs. Closed by Stop.
func (p *Pool) Results() <-chan Result {
	return p.resultChan
}

func (p *Pool) workerLoop(id int) {
	defer p.workerWg.Done()
	log.Debugf("Render worker %d started", id)

	for {
		select {
		case <-p.ctx.Done():
			log.Debugf("Render worker %d stopping", id)
			return
		case job := <-p.jobChan:
			buf, rej, err := p.renderer.Render(job.Source, job.Intent, job.Profile)
			if rej != nil {
				log.Debugf("Job %s rejected: %s", job.ID, rej)
			} else if err != nil {
				log.Printf("Job %s failed: %v", job.ID, err)
			}
			select {
			case p.resultChan <- Result{ID: job.ID, Raster: buf, Reject: rej, Err: err}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// RenderAll renders jobs with bounded parallelism and returns results in
// job order. Rejects are results, not errors; the group only aborts on
// context cancellation.
func RenderAll(ctx context.Context, r *Renderer, jobs []Job, parallelism int) []Result {
	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{ID: job.ID, Err: err}
				return nil
			}
			buf, rej, err := r.Render(job.Source, job.Intent, job.Profile)
			results[i] = Result{ID: job.ID, Raster: buf, Reject: rej, Err: err}
			return nil
		})
	}
	_ = g.Wait() // workers report through results, never as errors
	return results
}
