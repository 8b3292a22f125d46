// Package pipeline orchestrates a full compilation session: resolve the
// import graph, partition by version, plan jobs against the cache, run the
// compiler processes, merge outputs and write back fingerprints.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/solbuild/internal/adapters/cache"
	"go.trai.ch/solbuild/internal/adapters/cas"
	"go.trai.ch/solbuild/internal/adapters/fs"
	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
	"go.trai.ch/solbuild/internal/engine/merger"
	"go.trai.ch/solbuild/internal/engine/partition"
	"go.trai.ch/solbuild/internal/engine/planner"
	"go.trai.ch/solbuild/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// CacheFilename is the fingerprint cache file under the project cache
// directory.
const CacheFilename = "cache.json"

// RecordsDirname holds content-addressed build records under the project
// cache directory.
const RecordsDirname = "build-records"

// JobStatus represents the state of one compiler job.
type JobStatus string

const (
	// StatusPending indicates the job is waiting to be executed.
	StatusPending JobStatus = "Pending"
	// StatusRunning indicates the job's compiler process is executing.
	StatusRunning JobStatus = "Running"
	// StatusCompleted indicates the job finished successfully.
	StatusCompleted JobStatus = "Completed"
	// StatusFailed indicates the job's compiler process failed.
	StatusFailed JobStatus = "Failed"
)

// Pipeline runs compilation sessions. It holds only session-independent
// collaborators; per-project stores are constructed per run so independent
// pipelines (tests included) use isolated caches.
type Pipeline struct {
	executor   ports.CompilerExecutor
	toolchains map[domain.CompilerKind]ports.Toolchain
	pre        ports.Preprocessor
	logger     ports.Logger
	telemetry  ports.Telemetry

	mu        sync.RWMutex
	jobStatus map[string]JobStatus
}

// New creates a Pipeline. The preprocessor may be nil.
func New(
	executor ports.CompilerExecutor,
	toolchains []ports.Toolchain,
	pre ports.Preprocessor,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Pipeline {
	byKind := make(map[domain.CompilerKind]ports.Toolchain, len(toolchains))
	for _, tc := range toolchains {
		byKind[tc.Kind()] = tc
	}
	return &Pipeline{
		executor:   executor,
		toolchains: byKind,
		pre:        pre,
		logger:     logger,
		telemetry:  telemetry,
		jobStatus:  make(map[string]JobStatus),
	}
}

// Status returns the status of a job by id.
func (p *Pipeline) Status(jobID string) JobStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.jobStatus[jobID]
}

func (p *Pipeline) setStatus(jobID string, status JobStatus) {
	p.mu.Lock()
	p.jobStatus[jobID] = status
	p.mu.Unlock()
}

// Run executes one compilation session for the project.
//
// Resolution and partition errors abort before any compiler process is
// spawned. Process errors from one job do not abort sibling jobs; all jobs
// run to completion and the aggregate failure is reported afterwards. Cache
// writes happen in a single exclusive pass after all jobs complete, ending
// in the atomic persist.
func (p *Pipeline) Run(ctx context.Context, project *domain.Project) (*domain.MergedOutput, error) {
	toolchain, ok := p.toolchains[project.Compiler]
	if !ok {
		return nil, zerr.With(zerr.New("no toolchain for compiler"), "compiler", string(project.Compiler))
	}

	store := fs.NewStore(project.Root)
	graph, err := resolver.New(store, p.pre).Resolve(ctx, project)
	if err != nil {
		return nil, zerr.Wrap(err, "import resolution failed")
	}

	partitions, err := partition.Partition(graph, project)
	if err != nil {
		return nil, zerr.Wrap(err, "version partitioning failed")
	}

	cacheStore := cache.NewStore(filepath.Join(project.CacheDir, CacheFilename), p.logger)
	recordStore := cas.NewStore(filepath.Join(project.CacheDir, RecordsDirname))

	plan := planner.Build(graph, partitions, cacheStore, project)
	p.recordCachedPartitions(ctx, partitions, plan)
	if len(plan.Jobs) == 0 {
		p.logger.Info(fmt.Sprintf("all %d files fresh, nothing to compile", graph.Len()))
		return merger.Merge(nil, nil, plan.CachedArtifacts, plan.Versions)
	}
	p.logger.Info(fmt.Sprintf("compiling %d of %d files in %d jobs", dirtyTotal(plan.Jobs), graph.Len(), len(plan.Jobs)))

	sources := sourcesByPath(graph)
	results := p.executeJobs(ctx, plan.Jobs, toolchain, sources, project.Jobs)

	if err := joinFailures(plan.Jobs, results); err != nil {
		return nil, err
	}

	outputs := make(map[string]domain.CompilerOutput, len(results))
	artifactRefs := make(map[domain.InternedString][]string)
	for i, job := range plan.Jobs {
		res := results[i]
		outputs[job.ID] = res.output

		recordID, err := recordStore.Put(domain.BuildRecord{
			InputDigest:     inputDigest(res.input),
			CompilerKind:    job.Kind,
			CompilerVersion: job.Version.String(),
			Input:           res.input,
			Output:          res.raw,
			Timestamp:       time.Now().UTC(),
		})
		if err != nil {
			return nil, zerr.Wrap(err, "failed to persist build record")
		}

		for key := range res.output.Contracts {
			if job.IsDirty(key.File) {
				artifactRefs[key.File] = append(artifactRefs[key.File], merger.ArtifactRef(recordID, key.Name.String()))
			}
		}
	}

	merged, err := merger.Merge(plan.Jobs, outputs, plan.CachedArtifacts, plan.Versions)
	if err != nil {
		return nil, err
	}

	p.recordFingerprints(cacheStore, plan.Jobs, outputs, sources, artifactRefs, project)
	if err := cacheStore.Persist(); err != nil {
		return nil, zerr.Wrap(err, "failed to persist cache")
	}

	return merged, nil
}

// recordCachedPartitions emits a cached vertex for every partition served
// entirely from the cache, so skipped work stays visible in progress output.
func (p *Pipeline) recordCachedPartitions(ctx context.Context, partitions []domain.Partition, plan *planner.Plan) {
	for _, part := range partitions {
		fresh := true
		for _, f := range part.Files {
			if !plan.Fresh[f] {
				fresh = false
				break
			}
		}
		if !fresh {
			continue
		}
		_, vertex := p.telemetry.Record(ctx, fmt.Sprintf("%s (%d files)", part.Version, len(part.Files)))
		vertex.Cached()
		vertex.Complete(nil)
	}
}

type jobResult struct {
	input  []byte
	raw    []byte
	output domain.CompilerOutput
	err    error
}

// executeJobs runs all jobs with bounded concurrency and a barrier join.
// Jobs are independent across partitions; a failing job does not cancel its
// siblings, so diagnostics are as complete as possible.
func (p *Pipeline) executeJobs(
	ctx context.Context,
	jobs []domain.CompilerJob,
	toolchain ports.Toolchain,
	sources map[domain.InternedString]*domain.SourceFile,
	limit int,
) []jobResult {
	results := make([]jobResult, len(jobs))

	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i, job := range jobs {
		p.setStatus(job.ID, StatusPending)
		g.Go(func() error {
			results[i] = p.executeJob(ctx, job, toolchain, sources)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Pipeline) executeJob(
	ctx context.Context,
	job domain.CompilerJob,
	toolchain ports.Toolchain,
	sources map[domain.InternedString]*domain.SourceFile,
) jobResult {
	p.setStatus(job.ID, StatusRunning)
	ctx, vertex := p.telemetry.Record(ctx, job.String())

	res := func() jobResult {
		input, err := toolchain.BuildInput(job, sources)
		if err != nil {
			return jobResult{err: err}
		}
		raw, err := p.executor.Execute(ctx, job, input)
		if err != nil {
			return jobResult{input: input, err: err}
		}
		output, err := toolchain.ParseOutput(raw)
		if err != nil {
			return jobResult{input: input, raw: raw, err: err}
		}
		return jobResult{input: input, raw: raw, output: output}
	}()

	vertex.Complete(res.err)
	if res.err != nil {
		p.setStatus(job.ID, StatusFailed)
	} else {
		p.setStatus(job.ID, StatusCompleted)
	}
	return res
}

// recordFingerprints writes one cache entry per dirty file of every job.
// Files whose job emitted error diagnostics are recorded unsuccessful so the
// next run recompiles them.
func (p *Pipeline) recordFingerprints(
	cacheStore ports.CacheStore,
	jobs []domain.CompilerJob,
	outputs map[string]domain.CompilerOutput,
	sources map[domain.InternedString]*domain.SourceFile,
	artifactRefs map[domain.InternedString][]string,
	project *domain.Project,
) {
	fingerprint := project.Settings.Fingerprint()

	for _, job := range jobs {
		success := !outputs[job.ID].HasErrors()
		for file := range job.Dirty {
			cacheStore.Record(domain.CacheEntry{
				Path:          file.String(),
				ContentHash:   sources[file].Hash,
				Compiler:      job.Kind,
				Version:       job.Version.String(),
				SettingsHash:  fingerprint.Digest,
				Output:        fingerprint.OutputSelection,
				ArtifactPaths: artifactRefs[file],
				Success:       success,
			})
		}
	}
}

func joinFailures(jobs []domain.CompilerJob, results []jobResult) error {
	var errs error
	for i, job := range jobs {
		if results[i].err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(results[i].err, "job failed"), "job", job.ID))
		}
	}
	if errs != nil {
		return errors.Join(domain.ErrCompilationFailed, errs)
	}
	return nil
}

func sourcesByPath(graph *domain.Graph) map[domain.InternedString]*domain.SourceFile {
	sources := make(map[domain.InternedString]*domain.SourceFile, graph.Len())
	for id := 0; id < graph.Len(); id++ {
		file := graph.Node(id)
		sources[file.Path] = file
	}
	return sources
}

func dirtyTotal(jobs []domain.CompilerJob) int {
	total := 0
	for _, job := range jobs {
		total += job.DirtyCount()
	}
	return total
}

func inputDigest(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}
