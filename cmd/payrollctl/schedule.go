package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	loanService "github.com/cmlabs-hris/payroll-backend-go/internal/service/loan"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func scheduleCmd() *cobra.Command {
	var (
		total       string
		installment string
		start       string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print a cash advance installment schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			totalAmount, err := decimal.NewFromString(total)
			if err != nil {
				return fmt.Errorf("invalid --total: %w", err)
			}
			perCutoff, err := decimal.NewFromString(installment)
			if err != nil {
				return fmt.Errorf("invalid --installment: %w", err)
			}

			startDate := clock.Today(clock.Real{})
			if start != "" {
				d, ok := validator.IsValidDate(start)
				if !ok {
					return fmt.Errorf("invalid --start %q: want YYYY-MM-DD", start)
				}
				startDate = d
			}

			s := loanService.BuildSchedule(totalAmount, perCutoff, startDate)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(scheduleOutput(s))
			}
			return printSchedule(cmd, s)
		},
	}

	cmd.Flags().StringVar(&total, "total", "", "Total cash advance amount")
	cmd.Flags().StringVar(&installment, "installment", "", "Deduction per cutoff")
	cmd.Flags().StringVar(&start, "start", "", "Start date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("installment")

	return cmd
}

type scheduleRowOutput struct {
	CutoffDate string          `json:"cutoff_date"`
	Deduction  decimal.Decimal `json:"deduction"`
	Balance    decimal.Decimal `json:"balance"`
}

type scheduleJSON struct {
	Total     decimal.Decimal     `json:"total"`
	PerCutoff decimal.Decimal     `json:"per_cutoff"`
	Rows      []scheduleRowOutput `json:"rows"`
	Remaining decimal.Decimal     `json:"remaining"`
	Truncated bool                `json:"truncated"`
}

func scheduleOutput(s loan.Schedule) scheduleJSON {
	out := scheduleJSON{
		Total:     s.Total,
		PerCutoff: s.PerCutoff,
		Rows:      make([]scheduleRowOutput, 0, len(s.Rows)),
		Remaining: s.Remaining,
		Truncated: s.Truncated,
	}
	for _, r := range s.Rows {
		out.Rows = append(out.Rows, scheduleRowOutput{
			CutoffDate: r.CutoffDate.Format(validator.DateLayout),
			Deduction:  r.Deduction,
			Balance:    r.Balance,
		})
	}
	return out
}

func printSchedule(cmd *cobra.Command, s loan.Schedule) error {
	if s.IsEmpty() && s.Truncated {
		fmt.Fprintf(cmd.OutOrStdout(), "Installment rounds to zero; %s left unscheduled.\n", s.Remaining.StringFixed(2))
		return nil
	}
	if s.IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to schedule: total and installment must both be positive.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tCUTOFF\tDEDUCTION\tBALANCE\t")
	for i, r := range s.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", i+1, r.CutoffDate.Format(validator.DateLayout), r.Deduction.StringFixed(2), r.Balance.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if s.Truncated {
		fmt.Fprintf(cmd.OutOrStdout(), "Truncated at %d installments; %s left unscheduled.\n", len(s.Rows), s.Remaining.StringFixed(2))
	}
	return nil
}

