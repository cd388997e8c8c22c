package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adiazny/fablab-reserves/internal/pkg/admin"
	"github.com/adiazny/fablab-reserves/internal/pkg/api"
	"github.com/adiazny/fablab-reserves/internal/pkg/calendar"
	"github.com/adiazny/fablab-reserves/internal/pkg/config"
	"github.com/adiazny/fablab-reserves/internal/pkg/notify"
	"github.com/adiazny/fablab-reserves/internal/pkg/reserva"
)

type app struct {
	config *config.Config
	log    *logrus.Entry
	client *api.Client

	apiURL  string
	filter  api.Filter
	details bool
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	envVars, err := config.Setup()
	if err != nil {
		return err
	}

	if a.apiURL != "" {
		envVars.APIBaseURL = a.apiURL
	}

	a.config = envVars
	a.log = config.NewLogger(envVars.LogLevel, cmd.ErrOrStderr())
	a.client = envVars.NewAPIClient(a.log)

	return nil
}

func (a *app) controller(cmd *cobra.Command) *admin.Controller {
	return &admin.Controller{
		Log:         a.log,
		API:         a.client,
		Notifier:    &notify.Writer{Out: cmd.OutOrStdout()},
		List:        &admin.TextList{Out: cmd.OutOrStdout()},
		Filter:      a.filter,
		ShowDetails: a.config.ShowEventDetails,
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "reserves",
		Short:             "Manage FabLab reservations",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "reservation API base URL (overrides API_BASE_URL)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.controller(cmd).Refresh(cmd.Context())
			return nil
		},
	}
	list.Flags().StringVar(&a.filter.Servei, "servei", "", "only reservations of this service")
	list.Flags().StringVar(&a.filter.Data, "data", "", "only reservations on this date (YYYY-MM-DD)")

	cal := &cobra.Command{
		Use:   "calendar",
		Short: "Show reservations as a calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.controller(cmd).LoadCalendar(cmd.Context(), &calendar.TextCalendar{
				Out:     cmd.OutOrStdout(),
				Details: a.details,
			})
		},
	}
	cal.Flags().BoolVar(&a.details, "details", false, "print the details of every reservation (needs SHOW_EVENT_DETAILS)")

	request := reserva.Request{}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a reservation and print the updated list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.controller(cmd).CreateReservation(cmd.Context(), request)
		},
	}
	create.Flags().StringVar(&request.UsuariID, "usuari", "", "user email or UPC code")
	create.Flags().StringVar(&request.Servei, "servei", "", "service to book")
	create.Flags().StringVar(&request.Data, "data", "", "date (YYYY-MM-DD)")
	create.Flags().StringVar(&request.HoraInici, "hora-inici", "", "start time (HH:MM)")
	create.Flags().StringVar(&request.HoraFi, "hora-fi", "", "end time (HH:MM)")

	cancel := &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a reservation and print the updated list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.controller(cmd).CancelReservation(cmd.Context(), args[0])
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Check the reservation API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.client.Status(cmd.Context())
			if err != nil {
				a.log.WithError(err).Error("error checking reservation api")

				notifier := &notify.Writer{Out: cmd.OutOrStdout()}
				if nerr := notifier.Notify(cmd.Context(), notify.Error(reserva.ErrorMessage(err))); nerr != nil {
					a.log.WithError(nerr).Error("error delivering notification")
				}

				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", st.FabLab, st.Status, st.HorariLimit)
			return nil
		},
	}

	root.AddCommand(list, cal, create, cancel, status)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// every command shows reservation errors on its status line
		var apiErr *reserva.Error
		if !errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
