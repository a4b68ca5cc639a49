package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pepay-io/pepay-go/invoice"
)

func newInvoicesCmd(v *viper.Viper, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice", "inv"},
		Short:   "Manage invoices",
	}

	cmd.AddCommand(
		newCreateCmd(v, stderr),
		newListCmd(v, stderr),
		newCustomerCmd(v, stderr),
		newTotalsCmd(v, stderr),
	)

	return cmd
}

func newCreateCmd(v *viper.Viper, stderr io.Writer) *cobra.Command {
	var (
		params   invoice.CreateParams
		metadata map[string]string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice",
		Long: "Create an invoice. Every invocation sends a new idempotency key, " +
			"so running the command twice creates two invoices.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(v, stderr)
			if err != nil {
				return err
			}

			if len(metadata) > 0 {
				params.Metadata = make(map[string]any, len(metadata))
				for k, val := range metadata {
					params.Metadata[k] = val
				}
			}

			inv, err := client.CreateInvoice(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), inv)
		},
	}

	cmd.Flags().Float64Var(&params.AmountUSD, "amount", 0, "[Required] Amount in US dollars.")
	cmd.Flags().StringVar(&params.Description, "description", "", "[Optional] Invoice description.")
	cmd.Flags().StringVar(&params.CustomerID, "customer-id", "", "[Optional] Merchant-side customer identifier.")
	cmd.Flags().StringToStringVar(&metadata, "metadata", nil,
		"[Optional] Metadata entries, example: --metadata order=1042,channel=web.")
	cmd.Flags().Int64Var(&params.ExpiresIn, "expires-in", 0, "[Optional] Lifetime of the invoice in seconds.")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newListCmd(v *viper.Viper, stderr io.Writer) *cobra.Command {
	var (
		page   int
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := invoice.ListParams{Page: page, Status: invoice.ListStatus(status)}
			if status != "" && !params.Status.Valid() {
				return fmt.Errorf("invalid status %q: allowed values are paid, unpaid, expired, all", status)
			}

			client, err := newClient(v, stderr)
			if err != nil {
				return err
			}

			result, err := client.ListInvoices(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "[Optional] Page number. Omitted when zero.")
	cmd.Flags().StringVar(&status, "status", "",
		"[Optional] Status filter. Allowed values: paid, unpaid, expired, all.")

	return cmd
}

func newCustomerCmd(v *viper.Viper, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "customer <customer-id>",
		Short: "List invoices for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(v, stderr)
			if err != nil {
				return err
			}

			result, err := client.GetCustomerInvoices(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newTotalsCmd(v *viper.Viper, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show aggregate invoice amounts and counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(v, stderr)
			if err != nil {
				return err
			}

			totals, err := client.GetInvoiceTotals(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), totals)
		},
	}
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
