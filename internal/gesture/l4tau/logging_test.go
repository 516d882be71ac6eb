package l4tau

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/tau.report/internal/monitoring"
)

func TestSetLogWriters_ReportsOutOfOrderReading(t *testing.T) {
	var diag bytes.Buffer
	SetLogWriters(monitoring.LogWriters{Diag: &diag})
	defer SetLogWriters(monitoring.LogWriters{})

	b := newTestBuffer(DefaultParams())
	b.Update(direction(0.1), 1.0)
	assert.Zero(t, diag.Len(), "in-order reading was logged")

	b.Update(direction(0.2), 0.25)
	assert.Contains(t, diag.String(), "[l4tau] test: reading at 0.250000s is 0.750000s before the last one, ignored")
}

func TestSetLogWriters_Disable(t *testing.T) {
	var buf bytes.Buffer
	SetLogWriters(monitoring.LogWriters{Ops: &buf, Diag: &buf, Trace: &buf})
	SetLogWriters(monitoring.LogWriters{})

	b := newTestBuffer(DefaultParams())
	b.Update(direction(0.1), 1.0)
	b.Update(direction(0.2), 0.5)
	assert.Zero(t, buf.Len())
}
