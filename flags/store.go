package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// StoreFlags configure the asset catalog used by convert and catalog.

func StoreFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "store.dir",
			Usage: "Directory of the asset catalog (defaults to ~/.creature/catalog)",
		},
		cli.IntFlag{
			Name:  "store.cache",
			Usage: "Megabytes of memory allocated to the catalog block cache",
			Value: 16,
		},
		cli.IntFlag{
			Name:  "store.handles",
			Usage: "Maximum number of open files for the catalog",
			Value: 256,
		},
	}
}

// ConvertFlags are specific to the convert command.
func ConvertFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "store.name",
			Usage: "Also store the converted buffer in the catalog under this name",
		},
		cli.IntFlag{
			Name:  "buffer.size",
			Usage: "Initial builder capacity in bytes",
			Value: 64 * 1024,
		},
	}
}

// InspectFlags are specific to the inspect command.
func InspectFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "json",
			Usage: "Dump the decoded rig as JSON",
		},
		cli.StringFlag{
			Name:  "catalog",
			Usage: "Inspect the named catalog asset instead of a file",
		},
	}
}
