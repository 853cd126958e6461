package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/evaluaasi/support-gateway/internal/auth"
	"github.com/evaluaasi/support-gateway/internal/backend"
	"github.com/evaluaasi/support-gateway/internal/config"
	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/observability"
	"github.com/evaluaasi/support-gateway/internal/service"
)

const (
	previewFlag = "preview"
	tokenFlag   = "token"
)

// runtime is what every subcommand needs.
type runtime struct {
	cfg     *config.Config
	support *service.SupportService
	ctx     context.Context
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "supportctl",
		Short:         "Query Evaluaasi support data from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool(previewFlag, false, "serve fixtures instead of calling the backend (overrides APP_PREVIEW)")
	rootCmd.PersistentFlags().String(tokenFlag, "", "bearer token forwarded to the backend")

	rootCmd.AddCommand(
		campusesCMD(),
		partnersCMD(),
		ticketsCMD(),
		calendarCMD(),
		usersCMD(),
		tokenCMD(),
	)
	return rootCmd
}

func setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed(previewFlag) {
		cfg.App.Preview, _ = cmd.Flags().GetBool(previewFlag)
	}
	cfg.Logger.Level = "warn"
	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return nil, err
	}

	api := backend.NewClient(backend.Config{
		BaseURL:      cfg.Backend.BaseURL,
		Timeout:      cfg.Backend.Timeout(),
		ServiceToken: cfg.Backend.ServiceToken,
		UserAgent:    "supportctl/" + cfg.App.Version,
		Debug:        cfg.Backend.Debug,
	}, logger)

	support := service.NewSupportService(service.Options{
		Preview:     cfg.App.Preview,
		FanOutLimit: cfg.Backend.FanOutLimit,
		Location:    cfg.App.Location(),
	}, service.SupportDependencies{
		Backend: api,
		Logger:  logger,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if token, _ := cmd.Flags().GetString(tokenFlag); token != "" {
		ctx = backend.WithToken(ctx, token)
	}
	return &runtime{cfg: cfg, support: support, ctx: ctx}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func campusesCMD() *cobra.Command {
	var state, active string
	cmd := &cobra.Command{
		Use:   "campuses",
		Short: "List campuses grouped by state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, ok := domain.ParseActiveFilter(active)
			if !ok {
				return fmt.Errorf("invalid --active %q, want all, true or false", active)
			}
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			listing, err := rt.support.ListCampuses(rt.ctx, domain.CampusFilter{State: state, Active: filter})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), listing)
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "only campuses in this state")
	cmd.Flags().StringVar(&active, "active", "", "all | true | false")
	return cmd
}

func partnersCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "partners",
		Short: "List partner reference data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			partners, err := rt.support.ListPartners(rt.ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), partners)
		},
	}
}

func ticketsCMD() *cobra.Command {
	var status, priority, channel, search, from, to string
	var company int64
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List support tickets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := domain.TicketFilter{Search: search, DateFrom: from, DateTo: to}
			if status != "" {
				s, ok := domain.ParseTicketStatus(status)
				if !ok {
					return fmt.Errorf("invalid --status %q", status)
				}
				filter.Status = s
			}
			if priority != "" {
				p, ok := domain.ParseTicketPriority(priority)
				if !ok {
					return fmt.Errorf("invalid --priority %q", priority)
				}
				filter.Priority = p
			}
			if channel != "" {
				c, ok := domain.ParseTicketChannel(channel)
				if !ok {
					return fmt.Errorf("invalid --channel %q", channel)
				}
				filter.Channel = c
			}
			if company > 0 {
				filter.CompanyID = &company
			}
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			listing, err := rt.support.ListTickets(rt.ctx, filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), listing)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "open | pending | solved")
	cmd.Flags().StringVar(&priority, "priority", "", "low | medium | high")
	cmd.Flags().StringVar(&channel, "channel", "", "web | email | whatsapp | instagram")
	cmd.Flags().Int64Var(&company, "company", 0, "company id")
	cmd.Flags().StringVar(&search, "search", "", "text search")
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	return cmd
}

func calendarCMD() *cobra.Command {
	var month string
	var partner, campus int64
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month of exam sessions with availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			q := domain.CalendarQuery{Month: month}
			if q.Month == "" {
				q.Month = time.Now().In(rt.support.Location()).Format("2006-01")
			}
			if partner > 0 {
				q.PartnerID = &partner
			}
			if campus > 0 {
				q.CampusID = &campus
			}
			view, err := rt.support.ListCalendarSessions(rt.ctx, q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "YYYY-MM, defaults to the current month")
	cmd.Flags().Int64Var(&partner, "partner", 0, "partner id")
	cmd.Flags().Int64Var(&campus, "campus", 0, "campus id")
	return cmd
}

func usersCMD() *cobra.Command {
	var search domain.UserSearch
	cmd := &cobra.Command{
		Use:   "users [SEARCH]",
		Short: "Search the user directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				search.Search = args[0]
			}
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			page, err := rt.support.SearchUsers(rt.ctx, search)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	cmd.Flags().StringVar(&search.Role, "role", "", "only users with this role")
	cmd.Flags().IntVar(&search.Page, "page", domain.DefaultUserPage, "page number")
	cmd.Flags().IntVar(&search.PerPage, "per-page", domain.DefaultUserPerPage, "results per page")
	return cmd
}

func tokenCMD() *cobra.Command {
	var userID, username, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a gateway access token with AUTH_JWT_SECRET, for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tm := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
			token, expiresAt, err := tm.GenerateToken(userID, username, domain.Role(strings.ToLower(role)))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"token": token, "expires_at": expiresAt})
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "1", "token subject")
	cmd.Flags().StringVar(&username, "username", "soporte", "username claim")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleSupport), "role claim")
	return cmd
}
