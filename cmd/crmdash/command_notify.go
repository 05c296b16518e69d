package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crmdash/internal/notifications"
	"crmdash/internal/types"
)

const commandTimeout = 15 * time.Second

func newNotifyCmd(wiring commandWiring) *cobra.Command {
	var (
		message  string
		category string
		userID   string
	)
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Post a notification to the feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(message) == "" {
				return errors.New("--message is required")
			}
			kind, ok := types.NormalizeNotificationCategory(category)
			if !ok {
				return fmt.Errorf("unknown notification type %q (want one of %v)", category, types.NotificationCategories())
			}
			cfg, c, err := wiring.clientFromConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(userID) == "" {
				userID = cfg.API.UserID
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			item, err := c.CreateNotification(ctx, types.CreateNotificationRequest{
				UserID:  userID,
				Message: message,
				Type:    kind,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), item.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "notification text")
	cmd.Flags().StringVarP(&category, "type", "t", string(types.NotificationCategoryDeal), "notification type: account, campaign, meeting, lead or deal")
	cmd.Flags().StringVar(&userID, "user", "", "owning user id (default from config)")
	return cmd
}

func newNotificationsCmd(wiring commandWiring) *cobra.Command {
	var markAll bool
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List unread notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, c, err := wiring.clientFromConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			feed := notifications.New(c, notifications.Options{
				MarkAllConcurrency: cfg.MarkAllConcurrency(),
				Logger:             newStderrLogger(cmd.ErrOrStderr(), "warn"),
			})
			if err := feed.FetchUnread(ctx); err != nil {
				return err
			}
			snapshot := feed.Snapshot()
			printNotifications(cmd.OutOrStdout(), snapshot.Items)
			if !markAll {
				return nil
			}
			n := feed.MarkAllRead()
			feed.Wait()
			fmt.Fprintf(cmd.OutOrStdout(), "marked %d read\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&markAll, "mark-all", false, "mark every listed notification read")
	return cmd
}
