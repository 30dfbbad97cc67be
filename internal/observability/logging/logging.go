package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// Module names the component a log line belongs to.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Options struct {
	Service       ServiceInfo
	Environment   Environment
	Level         slog.Leveler
	DefaultModule Module
	GCPProjectID  string
	Writer        io.Writer
}

type moduleKey struct{}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey{}, module)
}

func ModuleFromContext(ctx context.Context) (Module, bool) {
	m, ok := ctx.Value(moduleKey{}).(Module)
	return m, ok
}

func NewLogger(opts Options) *slog.Logger {
	return slog.New(NewHandler(opts))
}

func NewHandler(opts Options) slog.Handler {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	base := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})

	serviceAttrs := []slog.Attr{
		slog.String("name", opts.Service.Name),
		slog.String("version", opts.Service.Version),
	}
	if opts.Service.Revision != "" {
		serviceAttrs = append(serviceAttrs, slog.String("revision", opts.Service.Revision))
	}

	return &contextHandler{
		Handler: base.WithAttrs([]slog.Attr{
			slog.Any("service", slog.GroupValue(serviceAttrs...)),
			slog.String("env", string(opts.Environment)),
		}),
		defaultModule: opts.DefaultModule,
		projectID:     opts.GCPProjectID,
	}
}
