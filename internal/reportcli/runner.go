package reportcli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	service "github.com/okian/stride/internal/app"
	"github.com/okian/stride/internal/config"
	"github.com/okian/stride/pkg/logger"
)

// Run prints the selected section as JSON to out.
func Run(ctx context.Context, cfg *config.Config, opts Options, out io.Writer) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.URL != "" {
		data, err := newHTTPClient(opts.URL, opts.Timeout).Get(ctx, routeOf(opts.Section))
		if err != nil {
			return err
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%w: decode: %w", ErrRemote, err)
		}
		return write(out, v, opts.Compact)
	}

	svc, cleanup, err := buildLocal(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	v, err := localSection(ctx, svc, opts.Section)
	if err != nil {
		return err
	}
	return write(out, v, opts.Compact)
}

func buildLocal(ctx context.Context, cfg *config.Config, opts Options) (*service.Service, func(), error) {
	c := *cfg
	if opts.FixturesPath != "" {
		c.ProviderKind = config.ProviderFixture
		c.FixturesPath = opts.FixturesPath
	}
	return service.Build(ctx, &c, logger.Named("report"))
}

func localSection(ctx context.Context, svc *service.Service, section string) (any, error) {
	switch section {
	case SectionProfile:
		return svc.Profile(ctx)
	case SectionDashboard:
		return svc.Dashboard(ctx)
	case SectionPerformance:
		return svc.Performance(ctx)
	case SectionInjury:
		return svc.InjuryReport(ctx)
	case SectionNutrition:
		return svc.Nutrition(ctx)
	case SectionFinance:
		return svc.FinanceCareer(ctx)
	default:
		return svc.Report(ctx)
	}
}

func write(out io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(out)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
