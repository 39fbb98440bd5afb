package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/balcao-erp/balcao.go/pkg/logger"
)

func TestFromBuffer(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	log, err := logger.New().FromBuffer(buff).Make()
	require.NoError(t, err)
	require.NotNil(t, log)
	require.Nil(t, log.LogFile)

	require.Zero(t, buff.Len())
	log.Logger.Info().Msg("Teste")
	require.Contains(t, buff.String(), "Teste")
}

func TestFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balcao.log")
	log, err := logger.New().FromPath(path).Make()
	require.NoError(t, err)
	require.NotNil(t, log.LogFile)
	defer log.LogFile.Close()

	log.Logger.Info().Str("colecao", "produtos").Msg("consulta")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "consulta")
	require.Contains(t, string(data), "produtos")
}

func TestFromPathBadDirectory(t *testing.T) {
	_, err := logger.New().FromPath("/nonexistent-dir/balcao.log").Make()
	require.Error(t, err)
}

func TestPretty(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	log, err := logger.New().FromBuffer(buff).Pretty().Make()
	require.NoError(t, err)

	log.Logger.Info().Msg("Teste")
	out := buff.String()
	require.Contains(t, out, "Teste")
	require.NotContains(t, out, `"message"`, "pretty output is not JSON")
}
