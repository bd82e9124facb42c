package types

// Version is the version of dsfetch, overwritten at build time by -ldflags
var Version = "dev"

// DatasetName identifies an entry in the dataset registry
type DatasetName string

// DefaultDataset is the dataset fetched when none is specified
const DefaultDataset DatasetName = "ade20k"

func (x DatasetName) String() string {
	return string(x)
}
