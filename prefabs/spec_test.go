package prefabs

import (
	"testing"

	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedScenarios(t *testing.T) {
	for _, name := range Scenarios() {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadScenario(name)
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Name)
		})
	}
}

func TestLoadBattleScenario(t *testing.T) {
	spec, err := LoadScenario("battle")
	require.NoError(t, err)

	require.Len(t, spec.CapitalShips, 2)
	red := spec.CapitalShips[0]
	assert.Equal(t, component.TeamRed, red.Team)
	assert.Equal(t, []component.Team{component.TeamBlue}, red.ObjectiveFor)
	assert.Equal(t, 200, red.Spawner.Max)
	assert.InDelta(t, 0.2, red.Spawner.Delay, 1e-12)
	assert.True(t, red.Spawner.Armed)
	require.NotNil(t, red.Pose.LookAt)

	pose := red.Pose.Transform()
	assert.InDelta(t, 0, pose.Forward().Sub(Vec3Spec{0, 0, -1}.Vec()).Len(), 1e-9)
}

func TestLoadBoidsScenario(t *testing.T) {
	spec, err := LoadScenario("boids.yaml")
	require.NoError(t, err)
	require.Len(t, spec.Populations, 1)
	assert.Equal(t, 10001, spec.Populations[0].Count)
	assert.False(t, spec.Populations[0].Armed)
	require.Len(t, spec.Objectives, 1)
}

func TestLoadTuningDefaults(t *testing.T) {
	spec, err := LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTuningSpec(), spec)
}

func TestParseTuningOverlaysDefaults(t *testing.T) {
	spec, err := ParseTuning("inline", []byte("turn_rate: 40\ngun_phase: now\n"))
	require.NoError(t, err)
	assert.Equal(t, 40.0, spec.TurnRate)
	assert.Equal(t, component.GunPhaseNow, spec.GunPhase)
	assert.Equal(t, 15.0, spec.ShipSpeed)
}

func TestParseTuningRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown_key", "warp_speed: 9\n"},
		{"negative_speed", "ship_speed: -1\n"},
		{"bad_phase", "gun_phase: sometimes\n"},
		{"inverted_band", "avoid_band: [2.0, 0.1]\n"},
		{"short_band", "avoid_band: [2.0]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTuning(tt.name, []byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestValidateScenarioRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing_name", "seed: 1\n"},
		{"unknown_team", "name: x\nobjectives:\n  - team: purple\n    position: [0, 0, 0]\n"},
		{"short_vector", "name: x\nobjectives:\n  - team: red\n    position: [0, 0]\n"},
		{"negative_count", "name: x\npopulations:\n  - team: red\n    count: -1\n    min: [0, 0, 0]\n    max: [1, 1, 1]\n"},
		{"spawner_without_delay", "name: x\nspawners:\n  - team: red\n    position: [0, 0, 0]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(scenarioSchemaName, []byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"orbit.tengo", "scripts/orbit.tengo", "prefabs/scripts/orbit.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "anchor_x")
	}
}

func TestScriptKey(t *testing.T) {
	want := ScriptKey("orbit.tengo")
	for _, name := range []string{"scripts/orbit.tengo", "prefabs/scripts/orbit.tengo", "prefabs/orbit.tengo"} {
		assert.Equal(t, want, ScriptKey(name), name)
	}
	assert.NotEqual(t, want, ScriptKey("spiral.tengo"))
}

func TestPoseSpecYaw(t *testing.T) {
	pose := PoseSpec{Position: Vec3Spec{1, 2, 3}, Yaw: -90}.Transform()
	assert.Equal(t, Vec3Spec{1, 2, 3}.Vec(), pose.Position)
	assert.InDelta(t, 0, pose.Forward().Sub(Vec3Spec{1, 0, 0}.Vec()).Len(), 1e-9)
}
