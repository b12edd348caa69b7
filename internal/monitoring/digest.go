// Package monitoring runs background operator-visibility jobs.
package monitoring

import (
	"github.com/nextlogicai/nextlogic-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Digest periodically logs a summary of classroom activity and host health
// so operators can watch usage without hitting the dashboard endpoints.
type Digest struct {
	monitor  services.MonitorServiceProvider
	schedule string
	cron     *cron.Cron
}

// NewDigest creates a digest job on the given cron schedule.
func NewDigest(monitor services.MonitorServiceProvider, schedule string) *Digest {
	return &Digest{monitor: monitor, schedule: schedule}
}

// Run starts the periodic digest. An invalid schedule is logged and the
// digest is disabled rather than failing startup.
func (d *Digest) Run() {
	d.cron = cron.New()
	if _, err := d.cron.AddFunc(d.schedule, d.emit); err != nil {
		log.Error().Err(err).Str("schedule", d.schedule).Msg("Invalid digest schedule, digest disabled")
		return
	}
	log.Info().Str("schedule", d.schedule).Msg("Starting activity digest")
	d.cron.Start()
}

// Stop halts the periodic digest.
func (d *Digest) Stop() {
	if d.cron != nil {
		d.cron.Stop()
	}
}

func (d *Digest) emit() {
	snapshot, err := d.monitor.Snapshot()
	if err != nil {
		log.Error().Err(err).Msg("Digest: failed to compute activity snapshot")
		return
	}

	event := log.Info().
		Int("total_students", snapshot.Stats.TotalStudents).
		Int("active_now", snapshot.Stats.ActiveNow).
		Int("usage_log_size", snapshot.Stats.UsageLogSize).
		Float64("avg_usage_per_student", snapshot.Stats.AvgUsagePerStudent)

	// Host health is best-effort; sampling failures shouldn't drop the digest.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		event = event.Float64("host_cpu_percent", percents[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		event = event.Float64("host_mem_used_percent", vm.UsedPercent)
	}

	event.Msg("Activity digest")
}
