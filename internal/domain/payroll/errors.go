package payroll

import "errors"

var (
	ErrInvalidPeriod        = errors.New("invalid payroll period: end date is before start date")
	ErrAdditionNotFound     = errors.New("addition entry not found")
	ErrSnapshotAlreadyTaken = errors.New("payroll snapshot already exists for this cutoff")
)
