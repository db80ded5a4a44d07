package resumatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"
	"github.com/kailas-cloud/resumatch/internal/domain/skill"
	analysisuc "github.com/kailas-cloud/resumatch/internal/usecase/analysis"
	embeddinguc "github.com/kailas-cloud/resumatch/internal/usecase/embedding"
	"github.com/kailas-cloud/resumatch/internal/usecase/extract"
	"github.com/kailas-cloud/resumatch/internal/usecase/match"
	"github.com/kailas-cloud/resumatch/internal/usecase/score"
)

type analyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (domana.Result, error)
}

// Client is the resumatch SDK entry point. It is safe for concurrent use.
type Client struct {
	analyzer analyzer
	provider *embeddinguc.Provider
}

// New creates a Client. The embedding model, when configured, is loaded on first use.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.threshold < 0 || cfg.threshold > 1 {
		return nil, fmt.Errorf("resumatch: threshold must be in [0, 1], got %v", cfg.threshold)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	lex := skill.Default()
	if cfg.lexicon != nil {
		lex = lex.Extend(toOverrides(*cfg.lexicon))
	}

	c := &Client{}
	var (
		matchEmb match.Embedder
		scoreEmb score.Embedder
	)
	if cfg.embedder != nil {
		adapter := &embedderAdapter{inner: cfg.embedder}
		c.provider = embeddinguc.NewProvider(
			func(context.Context) (domain.Embedder, error) { return adapter, nil },
			zap.NewNop(),
			embeddinguc.WithCacheSize(cfg.cacheSize),
			embeddinguc.WithObserver(obs),
		)
		matchEmb, scoreEmb = c.provider, c.provider
	}

	var matchOpts []match.Option
	if cfg.threshold > 0 {
		matchOpts = append(matchOpts, match.WithThreshold(cfg.threshold))
	}

	c.analyzer = analysisuc.New(
		extract.New(lex),
		match.New(matchEmb, lex, zap.NewNop(), matchOpts...),
		score.New(scoreEmb, lex, zap.NewNop()),
		obs,
		zap.NewNop(),
	)
	return c, nil
}

// Analyze scores resume against jobDescription. An empty jobDescription
// yields a general profile with neutral scores.
func (c *Client) Analyze(ctx context.Context, resume, jobDescription string) (Result, error) {
	res, err := c.analyzer.Analyze(ctx, resume, jobDescription)
	if err != nil {
		return Result{}, fmt.Errorf("resumatch: analyze: %w", err)
	}
	return res, nil
}

// Semantic reports whether analyses use embedding similarity.
func (c *Client) Semantic() bool {
	return c.provider != nil
}

// HealthCheck probes the embedder. Clients without one are always healthy.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.provider.HealthCheck(ctx); err != nil {
		return fmt.Errorf("resumatch: health: %w", err)
	}
	return nil
}

func toOverrides(l Lexicon) skill.Overrides {
	o := skill.Overrides{
		Skills:         l.Skills,
		Titles:         l.Titles,
		Certifications: l.Certifications,
	}
	for _, r := range l.Roles {
		o.Roles = append(o.Roles, skill.RoleProfile{Role: r.Role, Skills: r.Skills})
	}
	return o
}
