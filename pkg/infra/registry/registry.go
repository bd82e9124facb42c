package registry

import (
	"bytes"
	_ "embed"
	"io"
	"path/filepath"
	"sort"

	"github.com/dsfetch/dsfetch/pkg/domain/model"
	"github.com/dsfetch/dsfetch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

//go:embed datasets.toml
var builtinDatasets []byte

type file struct {
	Datasets map[string]entry `toml:"datasets"`
}

type entry struct {
	Description string `toml:"description"`
	URL         string `toml:"url"`
	ExpectedDir string `toml:"expected_dir"`
	Destination string `toml:"destination"`
}

// Registry maps dataset names to their packaging facts
type Registry struct {
	datasets map[types.DatasetName]*model.Dataset
}

// Load reads the built-in datasets and then each of the extra sources in order.
// Later sources override earlier ones by dataset name.
func Load(extra ...io.Reader) (*Registry, error) {
	r := &Registry{
		datasets: make(map[types.DatasetName]*model.Dataset),
	}

	if err := r.merge(bytes.NewReader(builtinDatasets)); err != nil {
		return nil, goerr.Wrap(err, "failed to load built-in datasets")
	}
	for _, src := range extra {
		if err := r.merge(src); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) merge(src io.Reader) error {
	var f file
	if err := toml.NewDecoder(src).DisallowUnknownFields().Decode(&f); err != nil {
		return goerr.Wrap(err, "failed to decode dataset registry")
	}

	for name, e := range f.Datasets {
		if e.URL == "" {
			return goerr.New("dataset url is required", goerr.V("dataset", name))
		}
		if e.ExpectedDir == "" || e.ExpectedDir != filepath.Base(e.ExpectedDir) {
			return goerr.New("dataset expected_dir must be a single directory name",
				goerr.V("dataset", name),
				goerr.V("expected_dir", e.ExpectedDir),
			)
		}

		dest := e.Destination
		if dest == "" {
			dest = filepath.Join(".", e.ExpectedDir)
		}

		r.datasets[types.DatasetName(name)] = &model.Dataset{
			Name:        types.DatasetName(name),
			Description: e.Description,
			URL:         e.URL,
			ExpectedDir: e.ExpectedDir,
			Destination: dest,
		}
	}

	return nil
}

// Get returns the dataset registered under name
func (r *Registry) Get(name types.DatasetName) (*model.Dataset, error) {
	ds, ok := r.datasets[name]
	if !ok {
		return nil, goerr.Wrap(model.ErrUnknownDataset, "dataset is not registered", goerr.V("dataset", name))
	}
	return ds, nil
}

// List returns all datasets sorted by name
func (r *Registry) List() []*model.Dataset {
	list := make([]*model.Dataset, 0, len(r.datasets))
	for _, ds := range r.datasets {
		list = append(list, ds)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}
