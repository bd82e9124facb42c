package cli_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/dsfetch/dsfetch/pkg/cli"
	"github.com/dsfetch/dsfetch/pkg/utils/testutil"
)

func newArchiveServer(t *testing.T) (*httptest.Server, *int) {
	data := testutil.ZipBytes(t, map[string]string{
		"ADEChallengeData2016/":                  "",
		"ADEChallengeData2016/objectInfo150.txt": "wall",
	})

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func runCLI(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	argv := append([]string{"dsfetch", "--log-level", "error", "--log-format", "text"}, args...)
	err := cli.Run(context.Background(), argv, cli.WithWriter(&out))
	return out.String(), err
}

func TestRun_Fetch(t *testing.T) {
	server, calls := newArchiveServer(t)
	dest := filepath.Join(t.TempDir(), "ade20k")

	out, err := runCLI(t, "fetch",
		"--url", server.URL+"/ADEChallengeData2016.zip",
		"--destination", dest,
		"--no-progress",
	)
	gt.NoError(t, err)
	gt.String(t, out).Contains("ready at " + dest)
	gt.Value(t, *calls).Equal(1)

	content, err := os.ReadFile(filepath.Join(dest, "objectInfo150.txt"))
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("wall")

	t.Run("second run is a soft skip", func(t *testing.T) {
		out, err := runCLI(t, "fetch",
			"--url", server.URL+"/ADEChallengeData2016.zip",
			"--destination", dest,
			"--no-progress",
		)
		gt.NoError(t, err)
		gt.String(t, out).Contains("already exists")
		gt.Value(t, *calls).Equal(1)
	})
}

func TestRun_FetchDefaultDestination(t *testing.T) {
	server, calls := newArchiveServer(t)
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := runCLI(t, "fetch",
		"--url", server.URL+"/ADEChallengeData2016.zip",
		"--no-progress",
	)
	gt.NoError(t, err)
	gt.String(t, out).Contains("ready at ADEChallengeData2016")
	gt.Value(t, *calls).Equal(1)

	content, err := os.ReadFile(filepath.Join(dir, "ADEChallengeData2016", "objectInfo150.txt"))
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("wall")

	_, err = os.Stat(filepath.Join(dir, "ADEChallengeData2016.zip"))
	gt.NoError(t, err)
}

func TestRun_FetchRejectsZipDestination(t *testing.T) {
	server, calls := newArchiveServer(t)
	dest := filepath.Join(t.TempDir(), "ade20k.zip")

	_, err := runCLI(t, "fetch",
		"--url", server.URL+"/ADEChallengeData2016.zip",
		"--destination", dest,
		"--no-progress",
	)
	gt.Error(t, err)
	gt.Value(t, *calls).Equal(0)
}

func TestRun_FetchUnknownDataset(t *testing.T) {
	_, err := runCLI(t, "fetch", "--dataset", "no-such-dataset", "--no-progress")
	gt.Error(t, err)
}

func TestRun_FetchRegistryDataset(t *testing.T) {
	server, calls := newArchiveServer(t)
	dir := t.TempDir()

	registryPath := filepath.Join(dir, "datasets.toml")
	gt.NoError(t, os.WriteFile(registryPath, []byte(`
[datasets.ade-mirror]
url = "`+server.URL+`/ADEChallengeData2016.zip"
expected_dir = "ADEChallengeData2016"
destination = "`+filepath.Join(dir, "ADEChallengeData2016")+`"
`), 0644))

	_, err := runCLI(t, "fetch", "--dataset", "ade-mirror", "--registry", registryPath, "--no-progress")
	gt.NoError(t, err)
	gt.Value(t, *calls).Equal(1)

	_, err = os.Stat(filepath.Join(dir, "ADEChallengeData2016", "objectInfo150.txt"))
	gt.NoError(t, err)
}

func TestRun_List(t *testing.T) {
	out, err := runCLI(t, "list")
	gt.NoError(t, err)
	gt.String(t, out).Contains("ade20k")
	gt.String(t, out).Contains("ADEChallengeData2016")
}

func TestRun_InvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	err := cli.Run(context.Background(), []string{"dsfetch", "--log-level", "loud", "list"}, cli.WithWriter(&out))
	gt.Error(t, err)
}
