/*
NAME
  dispatch.go

DESCRIPTION
  The Worker-Thread Dispatcher (§4.5, §5): a fixed pool of worker threads
  pulls jobs from a shared Mailbox via an atomic claim-next-index counter,
  and a small level scheme sequences jobs with true data dependencies (in
  the decoder: finalize, then optional sharpen and warp, then pack).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package dispatch implements the Worker-Thread Dispatcher: a persistent
// pool of worker goroutines draining a per-frame Mailbox of jobs, built on
// top of github.com/ajroetker/go-highway/hwy/contrib/workerpool's atomic
// work-claim primitive (§4.5).
package dispatch

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"go.uber.org/multierr"

	"github.com/ausocean/colorcore/internal/logging"
)

// JobKind is the closed enum of work items the dispatcher understands
// (§4.5 "Job kinds").
type JobKind int

const (
	JobNone JobKind = iota
	JobOutput
	JobOutputUncompressed
	JobWavelet
	JobHorizontal3D
	JobVertical3D
	JobSharpen
	JobBuildCube
	JobBuildLUTCurves
	JobBuild1DsToLinear
	JobBuild1DsToCurve
	JobHistogram
	JobWarp
	JobWarpCache
	JobWarpBlurV
)

func (k JobKind) String() string {
	switch k {
	case JobOutput:
		return "OUTPUT"
	case JobOutputUncompressed:
		return "OUTPUT_UNCOMPRESSED"
	case JobWavelet:
		return "WAVELET"
	case JobHorizontal3D:
		return "HORIZONTAL_3D"
	case JobVertical3D:
		return "VERTICAL_3D"
	case JobSharpen:
		return "SHARPEN"
	case JobBuildCube:
		return "BUILD_CUBE"
	case JobBuildLUTCurves:
		return "BUILD_LUT_CURVES"
	case JobBuild1DsToLinear:
		return "BUILD_1DS_2LINEAR"
	case JobBuild1DsToCurve:
		return "BUILD_1DS_2CURVE"
	case JobHistogram:
		return "HISTOGRAM"
	case JobWarp:
		return "WARP"
	case JobWarpCache:
		return "WARP_CACHE"
	case JobWarpBlurV:
		return "WARP_BLURV"
	default:
		return "NONE"
	}
}

// Job is one unit of dispatchable work: a kind tag, the row range it
// covers, and the level it belongs to in the dependent-job DAG (§4.5
// "Dependent jobs").
type Job struct {
	Kind       JobKind
	Level      int
	StartIndex int
	EndIndex   int
	Run        func(index int) error
}

// Mailbox holds the jobs for one frame, grouped by level. Level N jobs may
// only start once every level N-1 job has completed (§4.5).
type Mailbox struct {
	levels [][]Job
}

// NewMailbox returns an empty Mailbox.
func NewMailbox() *Mailbox { return &Mailbox{} }

// Post appends job to its level, growing the level table as needed.
func (m *Mailbox) Post(job Job) {
	for len(m.levels) <= job.Level {
		m.levels = append(m.levels, nil)
	}
	m.levels[job.Level] = append(m.levels[job.Level], job)
}

// MaxLevel returns the highest level index with any posted job, or -1 if
// the mailbox is empty.
func (m *Mailbox) MaxLevel() int { return len(m.levels) - 1 }

// GetDependentJob returns the jobs posted at level, or nil if level is
// beyond MaxLevel(); maxLevel is accepted for parity with the spec's
// `get_dependent_job(level, max_level)` signature, letting callers assert
// they're not walking past the DAG's depth.
func (m *Mailbox) GetDependentJob(level, maxLevel int) []Job {
	if level > maxLevel || level < 0 || level >= len(m.levels) {
		return nil
	}
	return m.levels[level]
}

// Dispatcher runs a Mailbox's jobs to completion across a fixed pool of
// worker goroutines, claiming work via an atomic index counter rather than
// static partitioning (§4.5 "claim_next_index").
type Dispatcher struct {
	pool *workerpool.Pool
	log  logging.Logger
}

// New returns a Dispatcher backed by a pool of numWorkers persistent
// goroutines. numWorkers <= 0 selects GOMAXPROCS.
func New(numWorkers int, log logging.Logger) *Dispatcher {
	return &Dispatcher{pool: workerpool.New(numWorkers), log: log}
}

// Close shuts down the underlying worker pool. Safe to call more than
// once.
func (d *Dispatcher) Close() { d.pool.Close() }

// NumWorkers returns the number of workers backing the dispatcher.
func (d *Dispatcher) NumWorkers() int { return d.pool.NumWorkers() }

// Run drains every level of mailbox in order, running each level's jobs
// to completion (start/done barrier) before the next level may begin, and
// aggregating every job's error via multierr so one failing row does not
// stop its level's other rows from running (§7 "errors never abort the
// frame").
func (d *Dispatcher) Run(mailbox *Mailbox) error {
	var errs error
	for level := 0; level <= mailbox.MaxLevel(); level++ {
		jobs := mailbox.GetDependentJob(level, mailbox.MaxLevel())
		for _, job := range jobs {
			if err := d.runJob(job); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("dispatch: level %d job %v: %w", level, job.Kind, err))
			}
		}
	}
	if errs != nil && d.log != nil {
		d.log.Warning("dispatcher completed with errors", "error", errs.Error())
	}
	return errs
}

// runJob claims indices [StartIndex, EndIndex) via the pool's atomic
// work-claim primitive and aggregates per-index errors.
func (d *Dispatcher) runJob(job Job) error {
	n := job.EndIndex - job.StartIndex
	if n <= 0 || job.Run == nil {
		return nil
	}
	errCh := make(chan error, n)
	d.pool.ParallelForAtomic(n, func(i int) {
		if err := job.Run(job.StartIndex + i); err != nil {
			errCh <- err
		}
	})
	close(errCh)
	var errs error
	for err := range errCh {
		errs = multierr.Append(errs, err)
	}
	return errs
}
