package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-billy.v4/memfs"
	"gopkg.in/src-d/go-billy.v4/util"
)

const room = "#####\n#@..#\n#...#\n#####\n"

func TestSweepOrdersBySettleTime(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "room.txt", []byte(room), 0o644))

	cfg := sweepConfig{Map: "room.txt", Steps: 100, Workers: 3, Inject: 100}
	sets := []paramSet{
		{viscosity: 0.25, alignedGain: 2.5, misalignedGain: 0.5},
		{viscosity: 1, alignedGain: 2.5, misalignedGain: 0.5},
		{viscosity: 0.5, alignedGain: 2.5, misalignedGain: 0.5},
		{viscosity: 1, alignedGain: 1, misalignedGain: 1},
	}
	all, err := sweep(cfg, fs, sets)
	require.NoError(t, err)
	require.Len(t, all, 4)

	// No cell in the room has four open sides, so the gains never apply.
	assert.Equal(t, sets[3], all[0].params)
	assert.Equal(t, sets[1], all[1].params)
	for _, res := range all[:2] {
		assert.True(t, res.settled)
		assert.Equal(t, 30, res.steps)
	}
	assert.Equal(t, 64, all[2].steps)
	assert.Equal(t, 0.5, all[2].params.viscosity)

	last := all[3]
	assert.False(t, last.settled, "capped before it settles")
	assert.Equal(t, 100, last.steps)

	for _, res := range all {
		assert.InDelta(t, 0, res.drift, 1e-9)
		assert.Zero(t, res.minLevel)
		assert.InDelta(t, 100, res.peak, 1e-9, "walls beside the injection take the first push")
	}

	var out bytes.Buffer
	report(&out, all, time.Second)
	assert.Contains(t, out.String(), "Swept 4 parameter sets in 1s, 3 settled")
	assert.Contains(t, out.String(), "settle steps: min=30 max=64")
}

func TestSweepRejectsMissingMap(t *testing.T) {
	_, err := sweep(sweepConfig{Map: "missing.txt", Steps: 1}, memfs.New(), []paramSet{{viscosity: 1}})
	assert.ErrorContains(t, err, "missing.txt")
}

func TestReportSingleSettledRun(t *testing.T) {
	all := []scenarioResult{
		{params: paramSet{viscosity: 1}, settled: true, steps: 30},
		{params: paramSet{viscosity: 0.1}, steps: 100},
	}
	var out bytes.Buffer
	report(&out, all, time.Second)
	assert.Contains(t, out.String(), "settle steps: 30\n")
	assert.NotContains(t, out.String(), "NaN")
}
