package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/literalura/internal/config"
)

func testConfig() config.Tasks {
	return config.NewConfig().Tasks
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "literalura.db")

	client, err := NewClient(dbPath, testConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "literalura-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
}

func TestNewClient_DefaultsWorkers(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 0

	client, err := NewClient(filepath.Join(t.TempDir(), "literalura.db"), cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 1, client.config.Workers)
}

func TestQueuePath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "literalura-tasks.db"), QueuePath("data/literalura.db"))
	assert.Equal(t, filepath.Join(".", "catalog-tasks"), QueuePath("catalog"))
	assert.Equal(t, filepath.Join("data", "x-tasks.db"), QueuePath("data/x.db?cache=shared"))
}

func TestClientStartStop(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "literalura.db"), testConfig())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

func TestStopWithoutStart(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "literalura.db"), testConfig())
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, client.Stop(context.Background()))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", StatusString(backlite.TaskStatusPending))
	assert.Equal(t, "success", StatusString(backlite.TaskStatusSuccess))
	assert.Equal(t, "failure", StatusString(backlite.TaskStatusFailure))
	assert.Equal(t, "not_found", StatusString(backlite.TaskStatusNotFound))
}

func TestEnqueueIngest_RequiresTitle(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "literalura.db"), testConfig())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.EnqueueIngest("   ")
	assert.Error(t, err)
}
