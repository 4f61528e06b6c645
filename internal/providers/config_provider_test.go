package providers

import (
	"carhoot/internal/structures"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYaml = `
webServer:
  host: 127.0.0.1
  port: 9090
persistence:
  filePath: /tmp/carhoot-test.dat
  saveInterval: 45s
logger:
  level: debug
  mode: 0644
  dir: /tmp
database:
  driver: sqlite
  dsn: "file::memory:"
game:
  timezone: Europe/Madrid
  hintThreshold: 7
`

func TestNewConfigProvider_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "carhoot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYaml), 0644))
	t.Setenv("CARHOOT_ATTEMPT_BUDGET", "12")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "Carhoot", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, 9090, conf.WebServer.Port)
	assert.Equal(t, 45*time.Second, conf.Persistence.SaveInterval)
	assert.Equal(t, "Europe/Madrid", conf.Game.Timezone)
	assert.Equal(t, 7, conf.Game.HintThreshold)
	assert.Equal(t, 3, conf.Game.HintStep)
	assert.Equal(t, 12, conf.Game.AttemptBudget)
	assert.Equal(t, 800*time.Millisecond, conf.Game.TransitionDelay)
	assert.Equal(t, 3, conf.Multiplayer.Rounds)
}
