package domain

import "github.com/m04kA/SMC-ClinicService/pkg/types"

// Slot a candidate appointment of the service's duration
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}
