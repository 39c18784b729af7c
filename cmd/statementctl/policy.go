package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/epimonos/statement-backend/internal/policy"
	"github.com/spf13/cobra"
)

func newPolicyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy [loan type]",
		Short: "Show how a loan type is presented on statements",
		Long: `Policy prints the resolved presentation bundle for a loan type: titles,
terminology, table columns and highlight colour. Unknown types resolve to the
generic loan bundle.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var category string
			if len(args) == 1 {
				category = args[0]
			}
			printBundle(cmd.OutOrStdout(), policy.Resolve(category))
			return nil
		},
	}
}

func printBundle(w io.Writer, b policy.Bundle) {
	fmt.Fprintf(w, "Category:       %s\n", b.Category)
	fmt.Fprintf(w, "Display Name:   %s\n", b.DisplayName)
	fmt.Fprintf(w, "Title:          %s\n", b.Title)
	fmt.Fprintf(w, "Joint Title:    %s\n", b.JointTitle)
	fmt.Fprintf(w, "Headline:       %s\n", b.PaymentHeadline())
	fmt.Fprintf(w, "Customer:       %s / %s\n", b.Terms.HeaderSingle, b.Terms.HeaderPlural)
	fmt.Fprintf(w, "Address Label:  %s\n", b.Terms.AddressLabel)
	fmt.Fprintf(w, "Summary Title:  %s\n", b.SummaryTitle)
	fmt.Fprintf(w, "Columns:        %s\n", strings.Join(b.Columns[:], " | "))
	fmt.Fprintf(w, "Show Interest:  %t\n", b.ShowInterest)
	fmt.Fprintf(w, "Show Category:  %t\n", b.ShowCategory)
	fmt.Fprintf(w, "Theme:          %.2f %.2f %.2f\n", b.Theme.R, b.Theme.G, b.Theme.B)
	fmt.Fprintf(w, "Footer:         %s\n", b.FooterText)
}
