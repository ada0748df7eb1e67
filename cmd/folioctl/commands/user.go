// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/pkg/pointer"
)

func newUserCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var input account.CreateInput
	var role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long: `Create an account directly in the database.

Examples:
  folioctl user create --email admin@folio.app --name Admin --password '...' --role admin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			helper, pool, err := g.openHelper(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			input.Role = pointer.To(role)
			service := account.NewService(helper, nil, g.env.BcryptCost, g.logger())

			user, err := service.Create(cmd.Context(), input)
			if err != nil {
				if ae := apperr.As(err); ae != nil {
					for _, detail := range ae.Details {
						g.out.Error("%s: %s", detail.Field, detail.Message)
					}
				}
				return err
			}

			g.out.Success("Created user")
			g.out.Field("id", user.ID)
			g.out.Field("email", user.Email)
			g.out.Field("role", user.Role)
			return nil
		},
	}

	flags := create.Flags()
	flags.StringVar(&input.Email, "email", "", "Email address")
	flags.StringVar(&input.Name, "name", "", "Display name")
	flags.StringVar(&input.Password, "password", "", "Initial password")
	flags.StringVar(&role, "role", "user", "Role: user or admin")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
