package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/petpost/petpost/internal/compose"
	"github.com/petpost/petpost/internal/config"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/media"
	"github.com/petpost/petpost/internal/notification"
	"github.com/petpost/petpost/internal/post"
	"github.com/petpost/petpost/internal/publish"
	"github.com/petpost/petpost/internal/ui/modals"
)

var publishOpts publishOptions

type publishOptions struct {
	details  string
	info     string
	status   string
	location string
	images   []string
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a lost or found pet without the TUI",
	Long: `Builds a publication from flags and sends it to the backend.

Images are given with --image (a path or an http(s) URL, repeatable, at most
four). Without --image and with a terminal on stdin, the pictures directory
is offered as a picker, asking for access first if it was never granted.

Examples:
  petpost publish --details "Brown dog, red collar" --info "555-1234" --image dog.jpg
  petpost publish --details "Grey cat" --info "Call Ana" --location "Centro"`,
	RunE: runPublish,
}

func init() {
	f := publishCmd.Flags()
	f.StringVar(&publishOpts.details, "details", "", "Description of the animal (required)")
	f.StringVar(&publishOpts.info, "info", "", "Contact information (required)")
	f.StringVar(&publishOpts.status, "status", "", "Publication status (default \""+post.DefaultStatus+"\")")
	f.StringVar(&publishOpts.location, "location", "", "Location (defaults to the configured server default)")
	f.StringArrayVar(&publishOpts.images, "image", nil, "Image path or URL (repeatable)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}
	ctx := contextOrBackground(cmd.Context())

	if state := svc.provider.Resolve(ctx); !state.IsAuthenticated {
		return fmt.Errorf("not logged in; run 'petpost login' first")
	}

	var adder compose.Adder
	switch {
	case len(publishOpts.images) > 0:
		adder = staticAdder(publishOpts.images)
	case isInteractive():
		adder = interactiveAdder(cfg)
	}

	return publishDraft(ctx, cfg, svc.pipeline(), adder, publishOpts, cmd.OutOrStdout())
}

// staticAdder attaches the given paths or URLs. Naming files on the command
// line is the grant.
func staticAdder(images []string) *media.Manager {
	uris := make([]string, len(images))
	for i, img := range images {
		if strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") || strings.HasPrefix(img, "file://") {
			uris[i] = img
		} else {
			uris[i] = media.FileURI(img)
		}
	}
	return media.NewManager(media.GrantAll{}, media.StaticPicker{URIs: uris})
}

// interactiveAdder asks for media access and lists the pictures directory.
func interactiveAdder(cfg *config.Config) *media.Manager {
	return media.NewManager(
		media.NewConsentPermissions(cfg, promptMediaAccess(cfg.GetPicturesDir())),
		media.NewDirPicker(cfg.GetPicturesDir, chooseImages),
	)
}

func promptMediaAccess(dir string) media.PromptFunc {
	return func(ctx context.Context) (bool, error) {
		allow := true
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Access your pictures?").
					Description("petpost lists images in " + dir + ". Your answer is remembered.").
					Affirmative("Allow").
					Negative("Deny").
					Value(&allow),
			),
		).WithTheme(modals.ModalTheme()).RunWithContext(ctx)
		return allow, err
	}
}

func chooseImages(ctx context.Context, candidates []media.Candidate, limit int) ([]string, bool, error) {
	if len(candidates) == 0 {
		return nil, true, nil
	}
	options := make([]huh.Option[string], len(candidates))
	for i, c := range candidates {
		label := fmt.Sprintf("%s  %s", modals.TruncateString(c.Name, 40), modals.FormatSize(c.Size))
		options[i] = huh.NewOption(label, c.Path)
	}
	var selected []string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Select up to %d", limit)).
				Options(options...).
				Limit(limit).
				Filterable(true).
				Value(&selected),
		),
	).WithTheme(modals.ModalTheme()).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return selected, len(selected) == 0, nil
}

// publishDraft builds the draft from opts, attaches images through adder
// (nil attaches none) and submits it.
func publishDraft(ctx context.Context, cfg *config.Config, submitter publish.Submitter, adder compose.Adder, opts publishOptions, out io.Writer) error {
	c := compose.New()
	c.SetDetails(opts.details)
	c.SetInfo(opts.info)
	if opts.status != "" {
		c.SetStatus(opts.status)
	}
	if opts.location != "" {
		c.SetLocation(opts.location)
	}

	if adder != nil {
		if notice := c.AddImages(ctx, adder); !notice.IsZero() {
			return fmt.Errorf("%s", notice)
		}
	}

	draft := c.Draft()
	if missing := draft.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%s (missing: %s)", compose.NoticeMissingFields.Message, strings.Join(missing, ", "))
	}

	result, err := submitter.Submit(ctx, draft)
	notice := c.Finish(err)
	if cfg.GetNotificationsEnabled() {
		if nerr := notification.PublicationResult(notice.Title, notice.Message); nerr != nil {
			logger.ComponentLogger("Publish").Warn("notification failed", "error", nerr)
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", notice, err)
	}

	fmt.Fprintln(out, notice.Message)
	fmt.Fprintf(out, "  images:     %d\n", result.Images)
	fmt.Fprintf(out, "  status:     %d\n", result.StatusCode)
	fmt.Fprintf(out, "  request id: %s\n", result.RequestID)
	return nil
}
