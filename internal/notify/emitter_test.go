package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	countdown "github.com/d093w1z/countdown/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ countdown.Emitter = (*DesktopEmitter)(nil)
	_ countdown.Emitter = (*WriterEmitter)(nil)
)

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "TRAVIS", "JENKINS_URL",
		"BUILDKITE", "DRONE", "TEAMCITY_VERSION", "TF_BUILD", "BITBUCKET_PIPELINES",
		"CODEBUILD_BUILD_ID",
	} {
		t.Setenv(v, "")
	}
}

func TestDesktopEmitter_Enabled(t *testing.T) {
	tests := map[string]struct {
		mutate      func(*Config)
		visual      bool
		interactive bool
		ci          bool
		want        bool
	}{
		"all conditions met": {
			mutate: func(*Config) {}, visual: true, interactive: true, want: true,
		},
		"disabled in config": {
			mutate: func(c *Config) { c.Enabled = false }, visual: true, interactive: true, want: false,
		},
		"sound only output": {
			mutate: func(c *Config) { c.Type = OutputSound }, visual: true, interactive: true, want: false,
		},
		"both output": {
			mutate: func(c *Config) { c.Type = OutputBoth }, visual: true, interactive: true, want: true,
		},
		"no notification tool": {
			mutate: func(*Config) {}, visual: false, interactive: true, want: false,
		},
		"non-interactive session": {
			mutate: func(*Config) {}, visual: true, interactive: false, want: false,
		},
		"running in CI": {
			mutate: func(*Config) {}, visual: true, interactive: true, ci: true, want: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			clearCIEnv(t)
			if tc.ci {
				t.Setenv("CI", "true")
			}

			cfg := DefaultConfig()
			tc.mutate(&cfg)
			emitter := NewDesktopEmitterWithSender(cfg, NewMockSender().WithVisualAvailable(tc.visual))
			emitter.interactive = func() bool { return tc.interactive }

			assert.Equal(t, tc.want, emitter.Enabled())
		})
	}
}

func TestDesktopEmitter_Emit(t *testing.T) {
	t.Parallel()

	sender := NewMockSender()
	cfg := DefaultConfig()
	cfg.Title = "Tea timer"
	emitter := NewDesktopEmitterWithSender(cfg, sender)

	require.NoError(t, emitter.Emit(context.Background(), "00:00:05"))

	require.Len(t, sender.VisualCalls, 1)
	assert.Equal(t, "Tea timer", sender.VisualCalls[0].Title)
	assert.Equal(t, "00:00:05", sender.VisualCalls[0].Message)
	assert.Equal(t, TypeInfo, sender.VisualCalls[0].NotificationType)
}

func TestDesktopEmitter_EmitError(t *testing.T) {
	t.Parallel()

	boom := errors.New("dbus unavailable")
	emitter := NewDesktopEmitterWithSender(DefaultConfig(), NewMockSender().WithVisualError(boom))

	err := emitter.Emit(context.Background(), "00:00:01")

	require.ErrorIs(t, err, boom)
}

func TestWriterEmitter(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		prefix string
		want   string
	}{
		"no prefix":   {prefix: "", want: "00:01:00\nTimer is finished!\n"},
		"with prefix": {prefix: "countdown", want: "countdown: 00:01:00\ncountdown: Timer is finished!\n"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			emitter := NewWriterEmitter(&buf, tc.prefix)

			assert.True(t, emitter.Enabled())
			require.NoError(t, emitter.Emit(context.Background(), "00:01:00"))
			require.NoError(t, emitter.Emit(context.Background(), countdown.DefaultFinishedText))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestNewEmitter(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Type = OutputStdout
	assert.IsType(t, &WriterEmitter{}, NewEmitter(cfg, &bytes.Buffer{}))

	cfg.Type = OutputVisual
	assert.IsType(t, &DesktopEmitter{}, NewEmitter(cfg, &bytes.Buffer{}))
}
