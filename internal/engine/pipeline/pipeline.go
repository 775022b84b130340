// Package pipeline implements the staged release pipeline: version gate,
// build fan-out, packaging, aggregation and idempotent publishing.
package pipeline

import (
	"context"
	"runtime"
	"strconv"
	"sync"

	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/shipper/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Pipeline executes a release run end to end. All stage inputs travel as
// explicit values; no stage communicates through process environment.
type Pipeline struct {
	builder   ports.Builder
	tags      ports.TagService
	host      ports.ReleaseHost
	packagers []ports.Packager
	hasher    ports.Hasher
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a Pipeline over the given stage implementations.
func New(
	builder ports.Builder,
	tags ports.TagService,
	host ports.ReleaseHost,
	packagers []ports.Packager,
	hasher ports.Hasher,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Pipeline {
	return &Pipeline{
		builder:   builder,
		tags:      tags,
		host:      host,
		packagers: packagers,
		hasher:    hasher,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Run executes the full pipeline for one manifest. It is idempotent under
// at-most-one-effective-release semantics: a version whose tag already
// exists skips every stage, and a publish race resolves to a no-op for the
// loser.
func (p *Pipeline) Run(ctx context.Context, m domain.Manifest, cfg domain.PipelineConfig) error {
	if len(cfg.Targets) == 0 {
		return domain.ErrNoTargets
	}

	tag := domain.TagFor(m.Version)
	released, err := p.tags.Exists(ctx, cfg.SourceDir, tag)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "release gate check failed"), "tag", tag)
	}
	if released {
		p.logger.Info("tag " + tag + " already exists, nothing to release")
		return nil
	}

	result := p.runMatrix(ctx, m, cfg.Targets, cfg.SourceDir, cfg.Parallelism)
	if err := result.Err(); err != nil {
		return err
	}

	set, err := p.packageAll(ctx, m, result.Artifacts, cfg.OutDir)
	if err != nil {
		return err
	}

	return p.publish(ctx, m, tag, cfg, set)
}

// PackageFamily builds and packages a single platform family without
// publishing. It serves the packaging entry point of the CLI.
func (p *Pipeline) PackageFamily(ctx context.Context, m domain.Manifest, cfg domain.PipelineConfig, family domain.Family) error {
	targets := cfg.TargetsFor(family)
	if len(targets) == 0 {
		return zerr.With(domain.ErrNoTargets, "family", string(family))
	}

	result := p.runMatrix(ctx, m, targets, cfg.SourceDir, cfg.Parallelism)
	if err := result.Err(); err != nil {
		return err
	}

	packager, err := p.packagerFor(family)
	if err != nil {
		return err
	}

	artifacts, err := packager.Package(ctx, m, result.Artifacts, cfg.OutDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "packaging failed"), "family", string(family))
	}

	set := domain.NewArtifactSet()
	for _, artifact := range artifacts {
		if err := set.Add(artifact); err != nil {
			return err
		}
		p.logger.Info("packaged " + artifact.Path)
	}
	return nil
}

// runMatrix fans out one build unit per target. Units share no mutable
// state beyond the guarded result collector; a failed unit never cancels
// its siblings, the matrix is evaluated after the barrier.
func (p *Pipeline) runMatrix(ctx context.Context, m domain.Manifest, targets []domain.Target, srcDir string, parallelism int) domain.MatrixResult {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	var (
		mu     sync.Mutex
		result domain.MatrixResult
	)

	g := new(errgroup.Group)
	g.SetLimit(parallelism)

	for _, target := range targets {
		g.Go(func() error {
			_, vertex := p.telemetry.Record(ctx, "build:"+target.Name())
			artifact, err := p.builder.Build(ctx, m, target, srcDir)
			vertex.Done(err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.logger.Error(zerr.With(zerr.Wrap(err, "target build failed"), "target", target.Name()))
				result.Failed = append(result.Failed, domain.TargetFailure{Target: target, Err: err})
				return nil
			}
			result.Artifacts = append(result.Artifacts, artifact)
			return nil
		})
	}
	_ = g.Wait()

	result.Sort()
	return result
}

// packageAll runs every packaging strategy over the complete matrix and
// merges the outputs into one artifact set. Each strategy reads only its
// own subset of build artifacts, so strategies run concurrently.
func (p *Pipeline) packageAll(ctx context.Context, m domain.Manifest, artifacts []domain.BuildArtifact, outDir string) (*domain.ArtifactSet, error) {
	var (
		mu       sync.Mutex
		packaged []domain.PackageArtifact
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, packager := range p.packagers {
		g.Go(func() error {
			_, vertex := p.telemetry.Record(gctx, "package:"+string(packager.Family()))
			out, err := packager.Package(gctx, m, artifacts, outDir)
			vertex.Done(err)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "packaging failed"), "family", string(packager.Family()))
			}

			mu.Lock()
			defer mu.Unlock()
			packaged = append(packaged, out...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := domain.NewArtifactSet()
	for _, artifact := range packaged {
		digest, err := p.hasher.FileDigest(artifact.Path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "artifact digest failed"), "path", artifact.Path)
		}
		artifact.Digest = digest
		if err := set.Add(artifact); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// publish re-verifies the gate immediately before acting to close the
// check-then-act race. A tag that appeared since the early check means a
// concurrent run won; the desired end state exists, so this run no-ops.
func (p *Pipeline) publish(ctx context.Context, m domain.Manifest, tag string, cfg domain.PipelineConfig, set *domain.ArtifactSet) error {
	released, err := p.tags.Exists(ctx, cfg.SourceDir, tag)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "publish gate check failed"), "tag", tag)
	}
	if released {
		p.logger.Info("tag " + tag + " was created by a concurrent run, skipping publish")
		return nil
	}

	if err := p.tags.Create(ctx, cfg.SourceDir, tag, m.Name+" "+m.Version); err != nil {
		return zerr.With(zerr.Wrap(err, "tag creation failed"), "tag", tag)
	}

	artifacts := set.Sorted()
	rel := domain.Release{
		Tag:        tag,
		Repository: cfg.Repository,
		Notes:      domain.RenderNotes(m, artifacts),
		Artifacts:  artifacts,
	}
	if err := p.host.CreateRelease(ctx, rel); err != nil {
		return zerr.With(zerr.Wrap(err, "release creation failed"), "tag", tag)
	}

	p.logger.Info("published " + tag + " with " + strconv.Itoa(set.Len()) + " artifacts")
	return nil
}

func (p *Pipeline) packagerFor(family domain.Family) (ports.Packager, error) {
	for _, packager := range p.packagers {
		if packager.Family() == family {
			return packager, nil
		}
	}
	return nil, zerr.With(domain.ErrUnknownFamily, "selector", string(family))
}
