package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/piwatt/piwatt/internal/pmic"
)

func TestBuildSnapshotReport(t *testing.T) {
	at := time.Now()
	readings := []pmic.Reading{
		{Rail: "VDD_CORE", Amps: 2.0, Volts: 0.85, Watts: 1.7, Time: at},
		{Rail: "3V3_SYS", Amps: 0.5, Volts: 3.3, Watts: 1.65, Time: at},
	}

	report := buildSnapshotReport(readings)

	assert.Len(t, report.Rails, 2)
	assert.InDelta(t, 3.35, report.Total, 1e-9)
	assert.Equal(t, "VDD_CORE", report.Rails[0].Rail)
	assert.InDelta(t, 1.7, report.Rails[0].Watts, 1e-9)
}

func TestBuildSnapshotReportEmpty(t *testing.T) {
	report := buildSnapshotReport(nil)

	assert.Empty(t, report.Rails)
	assert.Zero(t, report.Total)
}
