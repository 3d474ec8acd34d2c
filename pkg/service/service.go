package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-agile/pkg/aggregate"
	"github.com/mattsolo1/grove-agile/pkg/content"
	"github.com/mattsolo1/grove-agile/pkg/display"
	"github.com/mattsolo1/grove-agile/pkg/factory"
	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/render"
	"github.com/mattsolo1/grove-agile/pkg/report"
	"github.com/mattsolo1/grove-agile/pkg/settings"
	"github.com/mattsolo1/grove-agile/pkg/store"
	"github.com/mattsolo1/grove-agile/pkg/structure"
	"github.com/mattsolo1/grove-agile/pkg/tree"
	"github.com/mattsolo1/grove-agile/pkg/vault"
)

// Parser names accepted in Config.Parser.
const (
	ParserPattern     = "pattern"
	ParserFrontmatter = "frontmatter"
)

// Service wires the vault, settings and agile components together for the CLI.
type Service struct {
	Config    *Config
	Vault     *vault.FS
	Store     *store.KV
	Settings  models.PluginSettings
	Reporter  report.Reporter
	Structure *structure.Manager
	Fields    content.FieldParser
	Pipeline  *aggregate.Pipeline
	Factory   *factory.Factory

	vaultPath string
	logger    *logrus.Entry
}

// Config holds service configuration
type Config struct {
	VaultPath   string
	DataDir     string
	Editor      string
	Concurrency int
	Parser      string
	NoEditor    bool
}

// New opens the vault and settings store and builds the components.
func New(config *Config, logger *logrus.Logger) (*Service, error) {
	if logger == nil {
		logger = logrus.New()
	}
	vaultPath, err := filepath.Abs(config.VaultPath)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}
	v, err := vault.Open(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	kv, err := store.Open(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	s, err := settings.Load(kv, settings.Key(vaultPath))
	if err != nil {
		kv.Close()
		return nil, err
	}

	svc := &Service{
		Config:    config,
		Vault:     v,
		Store:     kv,
		Settings:  s,
		vaultPath: vaultPath,
		logger:    logger.WithField("component", "service"),
	}
	svc.Reporter = report.NewLogReporter(logger.WithField("component", "agile"))
	if err := svc.build(logger); err != nil {
		kv.Close()
		return nil, err
	}
	return svc, nil
}

// build (re)creates the components that depend on the plugin settings.
func (s *Service) build(logger *logrus.Logger) error {
	s.Structure = structure.New(s.Vault, s.Settings, s.Reporter)

	switch strings.ToLower(s.Config.Parser) {
	case "", ParserPattern:
		s.Fields = content.NewPatternParser(s.Vault, s.Reporter)
	case ParserFrontmatter:
		s.Fields = content.NewFrontmatterParser(s.Vault, s.Reporter)
	default:
		return fmt.Errorf("unknown parser '%s' (expected %s or %s)", s.Config.Parser, ParserPattern, ParserFrontmatter)
	}

	s.Pipeline = aggregate.New(s.Structure, s.Fields, s.Config.Concurrency, logger.WithField("component", "aggregate"))

	opts := []factory.Option{}
	if !s.Config.NoEditor {
		opts = append(opts, factory.WithOpener(factory.EditorOpener{Editor: s.Config.Editor}))
	}
	s.Factory = factory.New(s.Vault, s.Structure.Layout(), logger.WithField("component", "factory"), opts...)
	return nil
}

// Close releases the settings store.
func (s *Service) Close() error {
	return s.Store.Close()
}

// VaultPath returns the absolute path of the vault.
func (s *Service) VaultPath() string {
	return s.vaultPath
}

// UpdateSettings persists next, renaming the root folder on disk when the
// root path changed.
func (s *Service) UpdateSettings(next models.PluginSettings) error {
	if next.RootPath != s.Settings.RootPath && s.Structure.RootExists() {
		if err := settings.Apply(s.Structure, s.Settings.RootPath, next.RootPath); err != nil {
			return err
		}
	}
	if err := settings.Save(s.Store, settings.Key(s.vaultPath), next); err != nil {
		return err
	}
	s.Settings = next
	return s.build(s.logger.Logger)
}

// Dashboard builds the tree for one agile-display block body.
func (s *Service) Dashboard(ctx context.Context, directive string) (*tree.Item, error) {
	return s.Pipeline.Build(ctx, display.Parse(directive, s.Reporter))
}

// RenderDocument replaces every agile-display block in markdown with its
// dashboard. With asHTML the surrounding Markdown is converted to HTML too.
func (s *Service) RenderDocument(ctx context.Context, markdown string, asHTML bool) (string, error) {
	text, directives := display.Split(markdown)
	roots := make([]*tree.Item, len(directives))
	for i, d := range directives {
		root, err := s.Dashboard(ctx, d.Body)
		if err != nil {
			return "", err
		}
		roots[i] = root
	}

	if !asHTML {
		i := 0
		return display.Expand(markdown, func(display.Directive) string {
			out := strings.TrimSuffix(render.Markdown(roots[i]), "\n")
			i++
			return out
		}), nil
	}

	var sb strings.Builder
	for i, segment := range text {
		out, err := render.Document(segment)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
		if i < len(roots) {
			dashboard, err := render.HTML(roots[i])
			if err != nil {
				return "", err
			}
			sb.WriteString(dashboard)
		}
	}
	return sb.String(), nil
}
