package health

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		subs     []Status
		expected string
	}{
		{"empty", nil, "healthy"},
		{"all healthy", []Status{NewHealthy("a", ""), NewHealthy("b", "")}, "healthy"},
		{"one degraded", []Status{NewHealthy("a", ""), NewDegraded("b", "slow")}, "degraded"},
		{"one unhealthy", []Status{NewDegraded("a", ""), NewUnhealthy("b", "down")}, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Aggregate("system", tt.subs)
			assert.Equal(t, tt.expected, status.Status)
			assert.Len(t, status.SubStatuses, len(tt.subs))
		})
	}
}

func TestFromError_Sanitizes(t *testing.T) {
	status := FromError("wordpress", errors.New("dial https://cms.example.com/wp-json failed: password=hunter2"))

	require.True(t, status.IsUnhealthy())
	assert.NotContains(t, status.Message, "cms.example.com")
	assert.NotContains(t, status.Message, "hunter2")
	assert.Contains(t, status.Message, "[URL]")
	assert.Contains(t, status.Message, "[REDACTED]")
}

func TestFromError_Nil(t *testing.T) {
	status := FromError("wordpress", nil)
	assert.True(t, status.IsHealthy())
}

func TestMonitor(t *testing.T) {
	m := NewMonitor()

	m.UpdateHealthy("generator", "ready")
	m.UpdateUnhealthy("wordpress", "connection refused")

	assert.Equal(t, 2, m.Count())

	status, ok := m.Get("wordpress")
	require.True(t, ok)
	assert.False(t, status.Healthy)
	assert.Equal(t, "wordpress", status.Component)

	agg := m.AggregateHealth("semschema")
	assert.Equal(t, "unhealthy", agg.Status)
	assert.Len(t, agg.SubStatuses, 2)

	m.Remove("wordpress")
	agg = m.AggregateHealth("semschema")
	assert.Equal(t, "healthy", agg.Status)
}

func TestMonitor_GetAllIsCopy(t *testing.T) {
	m := NewMonitor()
	m.UpdateHealthy("generator", "ready")

	all := m.GetAll()
	delete(all, "generator")

	_, ok := m.Get("generator")
	assert.True(t, ok)
}
