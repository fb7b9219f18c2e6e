// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/cache"
	"folio/internal/session"
)

var (
	sessionMember int64
	sessionGroups []int64
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Create a member session for testing protected archives",
	Long: `Create a member session in Valkey and print the cookie that selects it.

Example:
  folio session --member 7 --group 1
  curl -b "$(folio session --group 1)" http://localhost:8080/portfolio`,
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().Int64Var(&sessionMember, "member", 1, "member ID")
	sessionCmd.Flags().Int64SliceVar(&sessionGroups, "group", nil, "member group ID (repeatable)")
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	if !cfg.IsDev() {
		return errors.New("sessions can only be created in development")
	}

	client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return fmt.Errorf("connect valkey: %w", err)
	}
	defer client.Close()

	id, err := session.NewStore(client, false).Create(cmd.Context(), nil, &session.Data{
		MemberID: sessionMember,
		Groups:   sessionGroups,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", session.CookieName, id)
	return nil
}
