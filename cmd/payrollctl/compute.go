package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
	"github.com/spf13/cobra"
)

func computeCmd() *cobra.Command {
	var (
		input  string
		from   string
		to     string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a payroll period from a YAML dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs validator.ValidationErrors
			start, end := validator.ValidatePeriod(from, to, &errs)
			if len(errs) > 0 {
				return errs
			}

			ds, err := fixtures.LoadDatasetFile(input)
			if err != nil {
				return err
			}
			data, err := ds.Materialize()
			if err != nil {
				return err
			}

			cal, err := payrollService.NewCalendar(start, end)
			if err != nil {
				return err
			}
			rows := payrollService.NewCalculator(data.AreaConfigs).
				ComputeAll(cal, data.Employees, data.Attendance, data.Additions, data.Installments)

			if asJSON {
				out := make([]payroll.PayrollRowResponse, 0, len(rows))
				for _, r := range rows {
					out = append(out, payroll.ToPayrollRowResponse(r))
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			return printRows(cmd, cal, rows)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML dataset file")
	cmd.Flags().StringVar(&from, "from", "", "Period start YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Period end YYYY-MM-DD")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON rows instead of a table")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func printRows(cmd *cobra.Command, cal payrollService.Calendar, rows []payroll.PayrollRow) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Cutoff %s to %s (%d days)\n",
		cal.Start().Format(validator.DateLayout), cal.End().Format(validator.DateLayout), cal.TotalDays())

	var totals payroll.ReportTotals
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tNAME\tAREA\tBASIS\tDAYS\tGROSS\tADDITIONS\tDEDUCTIONS\tNET")
	for _, r := range rows {
		totals.Add(r)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.EmployeeID, r.Name, r.Area, r.Basis, r.ReportedDays,
			r.GrossPay.StringFixed(2), r.TotalAdditions.StringFixed(2),
			r.TotalDeductions.StringFixed(2), r.NetPay.StringFixed(2))
	}
	fmt.Fprintf(tw, "TOTAL\t%d employees\t\t\t\t%s\t%s\t%s\t%s\n",
		totals.Employees, totals.GrossPay.StringFixed(2), totals.TotalAdditions.StringFixed(2),
		totals.TotalDeductions.StringFixed(2), totals.NetPay.StringFixed(2))
	return tw.Flush()
}
