package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solbuild/cmd/solbuild/commands"
	"go.trai.ch/solbuild/internal/build"
)

type mockApp struct {
	runFunc   func(ctx context.Context, cwd string) error
	cleanFunc func(cwd string) error
}

func (m *mockApp) Run(ctx context.Context, cwd string) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, cwd)
	}
	return nil
}

func (m *mockApp) Clean(cwd string) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(cwd)
	}
	return nil
}

func TestCommands_Build(t *testing.T) {
	t.Run("passes directory argument", func(t *testing.T) {
		var capturedCwd string
		mock := &mockApp{
			runFunc: func(_ context.Context, cwd string) error {
				capturedCwd = cwd
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "/tmp/project"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/tmp/project", capturedCwd)
	})

	t.Run("defaults to working directory", func(t *testing.T) {
		var capturedCwd string
		mock := &mockApp{
			runFunc: func(_ context.Context, cwd string) error {
				capturedCwd = cwd
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.NotEmpty(t, capturedCwd)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "."})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Clean(t *testing.T) {
	var capturedCwd string
	mock := &mockApp{
		cleanFunc: func(cwd string) error {
			capturedCwd = cwd
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean", "/tmp/project"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/project", capturedCwd)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
