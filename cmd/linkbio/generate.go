package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zazjoe90-oss/go-linkbio/query"
	"github.com/zazjoe90-oss/go-linkbio/tipping"
)

var errEditorUnavailable = errors.New("ai editor unavailable: set API_KEY or GEMINI_API_KEY")

// generateCmd runs one editing cycle and prints the resulting profile.
var generateCmd = &cobra.Command{
	Use:   "generate [description]",
	Short: "Generate a bio and link titles from a description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctrl := a.svc.Editor()
	if ctrl == nil {
		return errEditorUnavailable
	}
	if err := ctrl.Open(ctx); err != nil {
		return err
	}
	cycle, err := ctrl.Submit(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if cycle == nil {
		return errors.New("description is blank")
	}
	if err := cycle.Wait(ctx); err != nil {
		_ = ctrl.Close()
		_ = ctrl.Wait(context.Background())
		return err
	}

	profile, err := a.svc.Queries().Profile.Query(ctx, query.ProfileQueryInput{})
	if err != nil {
		return err
	}
	return printJSON(profile)
}

// tipLinkCmd prints the PayPal.me deep link for the configured profile.
var tipLinkCmd = &cobra.Command{
	Use:   "tip-link [amount]",
	Short: "Print the tip deep link for an amount",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		amount := tipping.DefaultAmount.String()
		if len(args) == 1 {
			amount = args[0]
		}
		link, err := a.svc.Queries().TipLink.Query(cmd.Context(), query.TipLinkInput{Amount: amount})
		if err != nil {
			return err
		}
		return printJSON(link)
	},
}

// configCmd prints the resolved configuration with secrets masked.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cfg.Redacted())
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
