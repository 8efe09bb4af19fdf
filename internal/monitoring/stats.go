package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"inspector-backend/internal/cache"
)

// Collector gathers process and database stats for the monitoring endpoint.
type Collector struct {
	db *pgxpool.Pool
}

type Stats struct {
	Database DatabaseStats `json:"database"`
	Pool     PoolStats     `json:"pool"`
	Cache    CacheStats    `json:"cache"`
	System   SystemStats   `json:"system"`
}

type DatabaseStats struct {
	Status            string `json:"status"`
	ResponseTime      int64  `json:"response_time_ms"`
	ActiveConnections int    `json:"active_connections"`
	Size              string `json:"size"`
	Uptime            string `json:"uptime"`
}

type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
}

type CacheStats struct {
	Status string `json:"status"`
}

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      string  `json:"disk_used"`
	DiskTotal     string  `json:"disk_total"`
}

func NewCollector(db *pgxpool.Pool) *Collector {
	return &Collector{db: db}
}

// Collect gathers a point-in-time view of the process and its backends.
// Individual probes that fail leave zero values instead of failing the
// whole collection.
func (c *Collector) Collect(ctx context.Context) Stats {
	dbCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := c.db.Ping(dbCtx)
	responseTime := time.Since(start).Milliseconds()

	dbStatus := "healthy"
	if err != nil {
		dbStatus = "unhealthy"
	}

	// Get active connections
	var activeConns int
	c.db.QueryRow(dbCtx, "SELECT count(*) FROM pg_stat_activity").Scan(&activeConns)

	// Get database size
	var dbSizeBytes int64
	c.db.QueryRow(dbCtx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)
	dbSize := formatBytes(uint64(dbSizeBytes))

	// Get database uptime
	var uptimeSec int
	c.db.QueryRow(dbCtx, "SELECT EXTRACT(EPOCH FROM (NOW() - pg_postmaster_start_time()))::int").Scan(&uptimeSec)
	uptime := formatUptime(uptimeSec)

	// System metrics for the current pod
	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	cacheStatus := "healthy"
	if !cache.IsHealthy() {
		cacheStatus = "unavailable"
	}

	poolStat := c.db.Stat()

	stats := Stats{
		Database: DatabaseStats{
			Status:            dbStatus,
			ResponseTime:      responseTime,
			ActiveConnections: activeConns,
			Size:              dbSize,
			Uptime:            uptime,
		},
		Pool: PoolStats{
			TotalConns:    poolStat.TotalConns(),
			IdleConns:     poolStat.IdleConns(),
			AcquiredConns: poolStat.AcquiredConns(),
			MaxConns:      poolStat.MaxConns(),
		},
		Cache: CacheStats{Status: cacheStatus},
	}

	if memStats != nil {
		stats.System.MemoryPercent = memStats.UsedPercent
		stats.System.MemoryUsed = formatBytes(memStats.Used)
		stats.System.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats != nil {
		stats.System.DiskPercent = diskStats.UsedPercent
		stats.System.DiskUsed = formatBytes(diskStats.Used)
		stats.System.DiskTotal = formatBytes(diskStats.Total)
	}
	stats.System.CPUPercent = cpuPercent

	return stats
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
