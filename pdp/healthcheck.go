package pdp

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/certivault/pdp-engine/pkg/logtrace"
	"github.com/certivault/pdp-engine/pkg/task"
)

// StatusResponse reports process health plus the rounds currently in flight.
type StatusResponse struct {
	CPU struct {
		Usage     string
		Remaining string
	}
	Memory struct {
		Total     uint64
		Used      uint64
		Available uint64
		UsedPerc  float64
	}
	InFlight map[string][]string
}

// GetStatus collects CPU and memory usage and, when a tracker is supplied,
// the in-flight rounds per operation.
func GetStatus(ctx context.Context, tr task.Tracker) (StatusResponse, error) {
	fields := logtrace.Fields{
		logtrace.FieldMethod: "GetStatus",
		logtrace.FieldModule: "pdp",
	}
	logtrace.Debug(ctx, "status request received", fields)

	var resp StatusResponse

	percentages, err := cpu.Percent(time.Second, false)
	if err != nil {
		logtrace.Error(ctx, "failed to get cpu info", logtrace.Fields{logtrace.FieldError: err.Error()})
		return resp, err
	}
	usage := percentages[0]
	resp.CPU.Usage = fmt.Sprintf("%.2f", usage)
	resp.CPU.Remaining = fmt.Sprintf("%.2f", 100-usage)

	vmem, err := mem.VirtualMemory()
	if err != nil {
		logtrace.Error(ctx, "failed to get memory info", logtrace.Fields{logtrace.FieldError: err.Error()})
		return resp, err
	}
	resp.Memory.Total = vmem.Total
	resp.Memory.Used = vmem.Used
	resp.Memory.Available = vmem.Available
	resp.Memory.UsedPerc = vmem.UsedPercent

	if tr != nil {
		resp.InFlight = tr.Snapshot()
	}
	return resp, nil
}
