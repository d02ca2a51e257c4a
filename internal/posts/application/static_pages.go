package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/philly/spacetraveling/internal/platform/apperror"
	"github.com/philly/spacetraveling/internal/platform/eventbus"
	"github.com/philly/spacetraveling/internal/platform/events"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// StaticPagesConfig controls page regeneration.
type StaticPagesConfig struct {
	RevalidateInterval time.Duration
	Now                func() time.Time
}

// StaticPages serves generated post pages and keeps them fresh: a stale page
// is still served while a rebuild runs in the background, and a page that
// was never generated is built on first request.
type StaticPages struct {
	posts    *PostsService
	store    ports.SnapshotStore
	exporter ports.SnapshotExporter // optional
	eventBus *eventbus.Bus
	logger   logger.Logger
	interval time.Duration
	now      func() time.Time

	inflight sync.Map // slug -> struct{}, background rebuilds in progress
}

// NewStaticPages creates the generator and subscribes it to revalidation
// requests on eventBus.
func NewStaticPages(
	posts *PostsService,
	store ports.SnapshotStore,
	exporter ports.SnapshotExporter,
	eventBus *eventbus.Bus,
	logger logger.Logger,
	config StaticPagesConfig,
) *StaticPages {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	p := &StaticPages{
		posts:    posts,
		store:    store,
		exporter: exporter,
		eventBus: eventBus,
		logger:   logger,
		interval: config.RevalidateInterval,
		now:      now,
	}
	eventBus.Subscribe(events.RevalidationRequestedTopic, p.HandleRevalidationRequested)
	return p
}

// RevalidateInterval is how long a generated page is served before it is
// rebuilt.
func (p *StaticPages) RevalidateInterval() time.Duration {
	return p.interval
}

// Page returns the generated page for slug.
func (p *StaticPages) Page(ctx context.Context, slug string) (*domain.Snapshot, error) {
	snap, err := p.store.Get(ctx, slug)
	switch {
	case err == nil:
		if snap.IsStale(p.now(), p.interval) {
			p.requestRevalidation(ctx, *snap)
		}
		return snap, nil

	case errors.Is(err, ports.ErrSnapshotNotFound):
		// Nothing was stored for slug, so an unknown post has nothing to remove.
		return p.generate(ctx, slug)

	default:
		p.logger.Warn(ctx, "snapshot lookup failed, rendering live", "slug", slug, "error", err)
		page, err := p.posts.GetPost(ctx, slug, "")
		if err != nil {
			return nil, err
		}
		return &domain.Snapshot{Slug: slug, Page: *page, GeneratedAt: p.now().UTC()}, nil
	}
}

// Regenerate renders slug now and stores the result. When the post no longer
// exists its snapshot is dropped and ErrPostNotFound is returned. A page that
// rendered but could not be stored is still returned.
func (p *StaticPages) Regenerate(ctx context.Context, slug string) (*domain.Snapshot, error) {
	snap, err := p.generate(ctx, slug)
	if errors.Is(err, ErrPostNotFound) {
		p.remove(ctx, slug)
	}
	return snap, err
}

// generate renders slug and stores the result without touching pages of
// posts that no longer exist.
func (p *StaticPages) generate(ctx context.Context, slug string) (*domain.Snapshot, error) {
	page, err := p.posts.GetPost(ctx, slug, "")
	if err != nil {
		return nil, err
	}

	snap := domain.Snapshot{Slug: slug, Page: *page, GeneratedAt: p.now().UTC()}
	if err := p.store.Save(ctx, snap); err != nil {
		p.logger.Error(ctx, "failed to save snapshot", "slug", slug, "error", err)
		return &snap, nil
	}
	p.export(ctx, snap)

	p.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.PageRegeneratedTopic,
		Payload: events.PageRegeneratedEvent{
			Slug:           slug,
			ReadingMinutes: page.ReadingMinutes,
			GeneratedAt:    snap.GeneratedAt,
		},
	})

	return &snap, nil
}

// PrerenderFailure records a page Prerender could not build.
type PrerenderFailure struct {
	Slug   string
	Reason string
}

// PrerenderReport summarises a Prerender run.
type PrerenderReport struct {
	Generated []string
	Failed    []PrerenderFailure
	Duration  time.Duration
}

// Prerender builds every static path and stores the pages in one batch.
// Pages that fail to render are reported and skipped; a failure to list the
// paths or to store the batch fails the run.
func (p *StaticPages) Prerender(ctx context.Context) (PrerenderReport, error) {
	start := p.now()
	report := PrerenderReport{Generated: []string{}, Failed: []PrerenderFailure{}}

	slugs, err := p.posts.ListPaths(ctx)
	if err != nil {
		return report, err
	}

	snaps := make([]domain.Snapshot, 0, len(slugs))
	for _, slug := range slugs {
		page, err := p.posts.GetPost(ctx, slug, "")
		if err != nil {
			p.logger.Warn(ctx, "failed to prerender page", "slug", slug, "error", err)
			report.Failed = append(report.Failed, PrerenderFailure{Slug: slug, Reason: err.Error()})
			continue
		}
		snaps = append(snaps, domain.Snapshot{Slug: slug, Page: *page, GeneratedAt: p.now().UTC()})
	}

	if err := p.store.SaveAll(ctx, snaps); err != nil {
		p.logger.Error(ctx, "failed to save prerendered pages", "count", len(snaps), "error", err)
		return report, apperror.Wrap(
			err,
			ErrSnapshotFailed.Code,
			ErrSnapshotFailed.BusinessCode,
			ErrSnapshotFailed.Message,
			ErrSnapshotFailed.HTTPStatus,
		)
	}

	for _, snap := range snaps {
		p.export(ctx, snap)
		report.Generated = append(report.Generated, snap.Slug)
	}
	report.Duration = p.now().Sub(start)

	p.logger.Info(ctx, "prerender finished",
		"generated", len(report.Generated),
		"failed", len(report.Failed),
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report, nil
}

// HandleRevalidationRequested rebuilds the page named in the event. Requests
// for a slug that is already being rebuilt are dropped.
func (p *StaticPages) HandleRevalidationRequested(ctx context.Context, event eventbus.Event) error {
	req, ok := event.Payload.(events.RevalidationRequestedEvent)
	if !ok {
		return fmt.Errorf("StaticPages.HandleRevalidationRequested: unexpected payload %T", event.Payload)
	}

	if _, busy := p.inflight.LoadOrStore(req.Slug, struct{}{}); busy {
		p.logger.Debug(ctx, "revalidation already running", "slug", req.Slug)
		return nil
	}
	defer p.inflight.Delete(req.Slug)

	_, err := p.Regenerate(ctx, req.Slug)
	if errors.Is(err, ErrPostNotFound) {
		return nil
	}
	return err
}

func (p *StaticPages) requestRevalidation(ctx context.Context, snap domain.Snapshot) {
	p.logger.Debug(ctx, "serving stale snapshot", "slug", snap.Slug, "generated_at", snap.GeneratedAt)
	p.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.RevalidationRequestedTopic,
		Payload: events.RevalidationRequestedEvent{
			Slug:        snap.Slug,
			SnapshotAge: snap.Age(p.now()),
			RequestedAt: p.now().UTC(),
		},
	})
}

func (p *StaticPages) remove(ctx context.Context, slug string) {
	if err := p.store.Delete(ctx, slug); err != nil {
		p.logger.Error(ctx, "failed to delete snapshot", "slug", slug, "error", err)
		return
	}
	if p.exporter != nil {
		if err := p.exporter.Remove(ctx, slug); err != nil {
			p.logger.Error(ctx, "failed to remove exported page", "slug", slug, "error", err)
		}
	}
	p.eventBus.Publish(ctx, eventbus.Event{
		Topic:   events.PageRemovedTopic,
		Payload: events.PageRemovedEvent{Slug: slug, OccurredAt: p.now().UTC()},
	})
}

func (p *StaticPages) export(ctx context.Context, snap domain.Snapshot) {
	if p.exporter == nil {
		return
	}
	if err := p.exporter.Export(ctx, snap); err != nil {
		p.logger.Error(ctx, "failed to export page", "slug", snap.Slug, "error", err)
	}
}
