package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"pet-clinic/internal/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app es el estado compartido por los subcomandos; vive sólo durante Execute.
type app struct {
	v         *viper.Viper
	out       io.Writer
	transport http.RoundTripper
}

func (a *app) client() (*client.Client, error) {
	return client.New(a.v.GetString("api_url"),
		client.WithTimeout(a.v.GetDuration("timeout")),
		client.WithTransport(a.transport),
	)
}

// session arma la sesión con CLINIC_TOKEN / --token. nil si no hay token.
func (a *app) session() *client.Session {
	tok := strings.TrimSpace(a.v.GetString("token"))
	if tok == "" {
		return nil
	}
	return &client.Session{Token: tok}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newRootCmd: transport nil = http.DefaultTransport.
func newRootCmd(out io.Writer, transport http.RoundTripper) *cobra.Command {
	a := &app{v: viper.New(), out: out, transport: transport}

	root := &cobra.Command{
		Use:           "clinicctl",
		Short:         "CLI de la API de Pet Clinic",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("api-url", "http://localhost:8080", "URL base de la API (CLINIC_API_URL)")
	pf.String("token", "", "token de sesión (CLINIC_TOKEN)")
	pf.Duration("timeout", 10*time.Second, "timeout por request")
	pf.Bool("json", false, "salida JSON")

	a.v.SetEnvPrefix("CLINIC")
	a.v.AutomaticEnv()
	_ = a.v.BindPFlag("api_url", pf.Lookup("api-url"))
	_ = a.v.BindPFlag("token", pf.Lookup("token"))
	_ = a.v.BindPFlag("timeout", pf.Lookup("timeout"))
	_ = a.v.BindPFlag("json", pf.Lookup("json"))

	root.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		meCmd(a),
		summaryCmd(a),
		overviewCmd(a),
		listCmd(a),
	)
	return root
}

func loginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:       "login staff|owner",
		Short:     "Inicia sesión e imprime el token",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"staff", "owner"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			var s *client.Session
			if args[0] == "staff" {
				s, err = c.LoginStaff(cmd.Context(), email, password)
			} else {
				s, err = c.LoginOwner(cmd.Context(), email, password)
			}
			if err != nil {
				return err
			}
			if a.v.GetBool("json") {
				return a.printJSON(map[string]any{"access_token": s.Token, "user": s.User})
			}
			fmt.Fprintf(a.out, "logged in as %s (%s #%d)\n", s.User.FullName, s.User.Type, s.User.ID)
			fmt.Fprintf(a.out, "export CLINIC_TOKEN=%s\n", s.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoca el token actual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.Logout(cmd.Context(), a.session()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "logged out")
			return nil
		},
	}
}

func meCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Muestra el principal de la sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			u, err := c.Me(cmd.Context(), a.session())
			if err != nil {
				return err
			}
			if a.v.GetBool("json") {
				return a.printJSON(u)
			}
			fmt.Fprintf(a.out, "%s <%s> %s #%d %s\n", u.FullName, u.Email, u.Type, u.ID, u.Role)
			return nil
		},
	}
}

func summaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Resumen de la clínica (staff)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			sum, err := c.Summary(cmd.Context(), a.session())
			if err != nil {
				return err
			}
			if a.v.GetBool("json") {
				return a.printJSON(sum)
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "owners\t%d\n", sum.TotalOwners)
			fmt.Fprintf(tw, "pets\t%d\n", sum.TotalPets)
			fmt.Fprintf(tw, "appointments\t%d (pending %d)\n", sum.TotalAppointments, sum.PendingAppointments)
			fmt.Fprintf(tw, "invoices\t%d (unpaid %d)\n", sum.TotalInvoices, sum.UnpaidInvoices)
			if len(sum.AppointmentsByDay) > 0 {
				fmt.Fprintln(tw, "\nDATE\tPENDING\tCOMPLETED\tCANCELED")
				for _, d := range sum.AppointmentsByDay {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", d.Date, d.Pending, d.Completed, d.Canceled)
				}
			}
			return tw.Flush()
		},
	}
}

func overviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Resumen del owner logueado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			ov, err := c.Overview(cmd.Context(), a.session())
			if err != nil {
				return err
			}
			if a.v.GetBool("json") {
				return a.printJSON(ov)
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "owner\t%s <%s>\n", ov.Owner.FullName, ov.Owner.Email)
			fmt.Fprintf(tw, "pets\t%d\n", len(ov.Pets))
			fmt.Fprintf(tw, "appointments\t%d (upcoming %d)\n", len(ov.Appointments), ov.UpcomingAppointments)
			fmt.Fprintf(tw, "medical records\t%d\n", len(ov.MedicalRecords))
			fmt.Fprintf(tw, "invoices\t%d (unpaid %d, %.2f)\n", len(ov.Invoices), ov.UnpaidInvoices, ov.UnpaidTotal)
			return tw.Flush()
		},
	}
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "list <resource>",
		Short:     "Lista un recurso: " + strings.Join(client.Resources, ", "),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: client.Resources,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			rows, err := c.List(cmd.Context(), a.session(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(rows)
		},
	}
}
