package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/account-service/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64

	// bcryptCost is a build-time constant equivalent to 10 salt rounds,
	// balancing brute-force resistance against login latency.
	bcryptCost = 10
)

// HashPool executes bcrypt work on a fixed set of workers so that a burst of
// authentication attempts cannot starve the request-dispatch path. Jobs queue
// up to channelBuffer deep; callers block until a worker replies or their
// context is cancelled.
type HashPool struct {
	jobs chan hashJob
	size int
	log  zerolog.Logger
}

type hashJob struct {
	op       string // "hash" or "verify"
	password string
	hash     string
	enqueued time.Time
	reply    chan hashResult
}

type hashResult struct {
	hash  string
	match bool
	err   error
}

// NewHashPool creates a pool with numWorkers workers. If numWorkers <= 0,
// defaultWorkers is used.
func NewHashPool(numWorkers int, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &HashPool{
		jobs: make(chan hashJob, channelBuffer),
		size: numWorkers,
		log:  log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		go p.runWorker(ctx, i)
	}
}

// Hash applies the salted one-way transform to password. Each call produces
// a different hash for the same input.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	res, err := p.submit(ctx, hashJob{op: "hash", password: password})
	if err != nil {
		return "", err
	}
	return res.hash, res.err
}

// Verify reports whether password matches hash. A wrong password and an
// unparseable hash are both reported as a plain mismatch; the comparison
// itself is bcrypt's own constant-time-safe compare.
func (p *HashPool) Verify(ctx context.Context, password, hash string) (bool, error) {
	res, err := p.submit(ctx, hashJob{op: "verify", password: password, hash: hash})
	if err != nil {
		return false, err
	}
	return res.match, res.err
}

func (p *HashPool) submit(ctx context.Context, job hashJob) (hashResult, error) {
	job.enqueued = time.Now()
	job.reply = make(chan hashResult, 1)

	select {
	case p.jobs <- job:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}

	select {
	case res := <-job.reply:
		metrics.HashDuration.WithLabelValues(job.op).Observe(time.Since(job.enqueued).Seconds())
		return res, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			job.reply <- p.execute(job, id)
		}
	}
}

func (p *HashPool) execute(job hashJob, workerID int) hashResult {
	switch job.op {
	case "verify":
		err := bcrypt.CompareHashAndPassword([]byte(job.hash), []byte(job.password))
		return hashResult{match: err == nil}
	default:
		hash, err := bcrypt.GenerateFromPassword([]byte(job.password), bcryptCost)
		if err != nil {
			p.log.Error().Err(err).Int("worker_id", workerID).Msg("bcrypt hashing failed")
			return hashResult{err: err}
		}
		return hashResult{hash: string(hash)}
	}
}
