package mcp

import (
	"sync"
	"time"
)

// ToolMetrics tracks tool call outcomes for the lifetime of the server.
// All methods are safe for concurrent use.
type ToolMetrics struct {
	lastCallTime     time.Time
	lastCallDuration time.Duration
	lastError        string
	totalCalls       int64
	toolErrors       int64
	failedCalls      int64
	callsByTool      map[string]int64
	mu               sync.RWMutex
}

// MetricsSnapshot is an immutable copy of ToolMetrics at a point in time.
type MetricsSnapshot struct {
	LastCallTime     time.Time        `json:"last_call_time"`
	LastCallDuration time.Duration    `json:"last_call_duration_ms"`
	LastError        string           `json:"last_error,omitempty"`
	TotalCalls       int64            `json:"total_calls"`
	ToolErrors       int64            `json:"tool_errors"`
	FailedCalls      int64            `json:"failed_calls"`
	CallsByTool      map[string]int64 `json:"calls_by_tool"`
}

// NewToolMetrics creates an empty metrics tracker.
func NewToolMetrics() *ToolMetrics {
	return &ToolMetrics{callsByTool: make(map[string]int64)}
}

// RecordCall records one finished call. A tool error is a result shown to
// the caller (bad arguments, unknown category); err is a protocol failure.
func (m *ToolMetrics) RecordCall(tool string, duration time.Duration, toolError bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCallTime = time.Now()
	m.lastCallDuration = duration
	m.totalCalls++
	m.callsByTool[tool]++

	switch {
	case err != nil:
		m.failedCalls++
		m.lastError = err.Error()
	case toolError:
		m.toolErrors++
	}
}

// GetMetrics returns a snapshot that later calls do not modify.
func (m *ToolMetrics) GetMetrics() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byTool := make(map[string]int64, len(m.callsByTool))
	for k, v := range m.callsByTool {
		byTool[k] = v
	}

	return MetricsSnapshot{
		LastCallTime:     m.lastCallTime,
		LastCallDuration: m.lastCallDuration,
		LastError:        m.lastError,
		TotalCalls:       m.totalCalls,
		ToolErrors:       m.toolErrors,
		FailedCalls:      m.failedCalls,
		CallsByTool:      byTool,
	}
}
