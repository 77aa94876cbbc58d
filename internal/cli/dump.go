package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"clubsite/internal/api"
	"clubsite/internal/club"
	"clubsite/internal/remote"
	"clubsite/internal/ui"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// dumpWidth is the render width of text output.
const dumpWidth = 100

func newDumpCmd(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Load every resource once and print the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDump(cmd.Context(), e, cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format: text, json or yaml")
	return cmd
}

func runDump(ctx context.Context, e *env, w io.Writer, format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	site := loadSite(ctx, e.client(), time.Now())
	e.logger.Debug().
		Str("club", site.Profile.Origin.String()).
		Str("events", site.Events.Origin.String()).
		Str("team", site.Team.Origin.String()).
		Str("socials", site.Socials.Origin.String()).
		Msg("site loaded")

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newDocument(site))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(site)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, ui.RenderStatic(site, dumpWidth))
		return err
	}
}

// loadSite fetches the four resources concurrently and applies the fallback
// policy. Failures never abort the load; they surface as fallback reasons.
func loadSite(ctx context.Context, c *api.Client, now time.Time) ui.Site {
	var (
		profiles remote.State[[]club.Profile]
		events   remote.State[[]club.Event]
		team     remote.State[[]club.Member]
		socials  remote.State[[]club.Social]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profiles = remote.Load(gctx, api.JSON[[]club.Profile](c), club.PathClub)
		return nil
	})
	g.Go(func() error {
		events = remote.Load(gctx, api.JSON[[]club.Event](c), club.PathEvents)
		return nil
	})
	g.Go(func() error {
		team = remote.Load(gctx, api.JSON[[]club.Member](c), club.PathTeam)
		return nil
	})
	g.Go(func() error {
		socials = remote.Load(gctx, api.JSON[[]club.Social](c), club.PathSocials)
		return nil
	})
	_ = g.Wait()

	return ui.Site{
		Profile: club.ResolveProfile(profiles),
		Events:  club.Resolve(events, club.DefaultEvents()),
		Team:    club.Resolve(team, club.DefaultTeam()),
		Socials: club.Resolve(socials, club.DefaultSocials()),
		Year:    now.Year(),
	}
}

// section is one resource in structured output.
type section[T any] struct {
	Origin string `json:"origin" yaml:"origin"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Items  []T    `json:"items" yaml:"items"`
}

type document struct {
	Club    section[club.Profile] `json:"club" yaml:"club"`
	Colors  club.Colors           `json:"colors" yaml:"colors"`
	Events  section[club.Event]   `json:"events" yaml:"events"`
	Team    section[club.Member]  `json:"team" yaml:"team"`
	Socials section[club.Social]  `json:"socials" yaml:"socials"`
}

func newSection[T any](r club.Resolved[T]) section[T] {
	return section[T]{Origin: r.Origin.String(), Reason: r.Reason, Items: r.Items}
}

func newDocument(s ui.Site) document {
	return document{
		Club: section[club.Profile]{
			Origin: s.Profile.Origin.String(),
			Reason: s.Profile.Reason,
			Items:  []club.Profile{s.Profile.Profile},
		},
		Colors:  s.Profile.Colors,
		Events:  newSection(s.Events),
		Team:    newSection(s.Team),
		Socials: newSection(s.Socials),
	}
}
