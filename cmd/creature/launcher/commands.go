package launcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/creature-flatdata/creature"
	"github.com/rony4d/creature-flatdata/creature/schema"
	"github.com/rony4d/creature-flatdata/flags"
)

var errUsage = errors.New("wrong number of arguments")

func usageError(ctx *cli.Context) error {
	return fmt.Errorf("%w, usage: %s %s", errUsage, ctx.Command.HelpName, ctx.Command.ArgsUsage)
}

// -----------------------------------------------------------------------------
// convert
// -----------------------------------------------------------------------------

func convertCommand() cli.Command {
	return cli.Command{
		Name:      "convert",
		Usage:     "Convert a Creature JSON export into a flat binary rig",
		ArgsUsage: "<input.json> <output.bin>",
		Flags:     commandFlags(flags.ConvertFlags()),
		Action:    convert,
	}
}

func convert(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return usageError(ctx)
	}
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	in, out := ctx.Args().Get(0), ctx.Args().Get(1)

	conv := creature.NewConverter(log)
	conv.BufferSize = cfg.Convert.BufferSize
	buf, err := conv.ConvertFile(in, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Serialized flat binary file to: %s with file size of: %d bytes.\n", out, len(buf))

	name := ctx.String("store.name")
	if name == "" {
		return nil
	}
	cat, err := openCatalog(cfg, log)
	if err != nil {
		return err
	}
	defer cat.Close()
	digest, err := cat.Put(name, buf)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Stored as %q (keccak256 %s).\n", name, digest.Hex())
	return nil
}

// -----------------------------------------------------------------------------
// inspect
// -----------------------------------------------------------------------------

func inspectCommand() cli.Command {
	return cli.Command{
		Name:      "inspect",
		Usage:     "Summarize a flat binary rig",
		ArgsUsage: "<file.bin> | --catalog <name>",
		Flags:     commandFlags(flags.InspectFlags()),
		Action:    inspect,
	}
}

func inspect(ctx *cli.Context) error {
	name := ctx.String("catalog")
	if (name == "") != (ctx.NArg() == 1) || ctx.NArg() > 1 {
		return usageError(ctx)
	}
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	var (
		buf    []byte
		source string
	)
	if name != "" {
		cat, err := openCatalog(cfg, log)
		if err != nil {
			return err
		}
		defer cat.Close()
		if buf, _, err = cat.Get(name); err != nil {
			return err
		}
		source = "catalog:" + name
	} else {
		source = ctx.Args().Get(0)
		if buf, err = os.ReadFile(source); err != nil {
			return err
		}
	}
	log.WithField("source", source).Debug("Inspecting rig")

	w := ctx.App.Writer
	if ctx.Bool("json") {
		doc, err := creature.Decode(buf)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return summarize(w, source, buf)
}

// summarize prints the root header and which top level tables are present.
func summarize(w io.Writer, source string, buf []byte) error {
	fmt.Fprintf(w, "source:    %s\n", source)
	fmt.Fprintf(w, "size:      %d bytes\n", len(buf))
	fmt.Fprintf(w, "keccak256: %s\n", crypto.Keccak256Hash(buf).Hex())

	root, err := schema.GetRootAsRootData(buf)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "root:      %s (table at %d)\n", hexutil.Encode(buf[:4]), root.Table().Pos)

	mesh, err := root.DataMesh()
	if err != nil {
		return err
	}
	if mesh == nil {
		fmt.Fprintln(w, "mesh:      absent")
	} else {
		points, err := mesh.Points()
		if err != nil {
			return err
		}
		regions, err := mesh.RegionsLength()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "mesh:      %d points, %d regions\n", len(points)/3, regions)
	}

	skeleton, err := root.DataSkeleton()
	if err != nil {
		return err
	}
	if err := count(w, "skeleton", "bones", skeleton != nil, func() (int, error) { return skeleton.BonesLength() }); err != nil {
		return err
	}

	animation, err := root.DataAnimation()
	if err != nil {
		return err
	}
	if err := count(w, "animation", "clips", animation != nil, func() (int, error) { return animation.ClipsLength() }); err != nil {
		return err
	}

	uvSwaps, err := root.DataUvSwapItem()
	if err != nil {
		return err
	}
	if err := count(w, "uv swaps", "meshes", uvSwaps != nil, func() (int, error) { return uvSwaps.MeshesLength() }); err != nil {
		return err
	}

	anchors, err := root.DataAnchorPoints()
	if err != nil {
		return err
	}
	return count(w, "anchors", "points", anchors != nil, func() (int, error) { return anchors.AnchorPointsLength() })
}

func count(w io.Writer, label, unit string, present bool, n func() (int, error)) error {
	if !present {
		fmt.Fprintf(w, "%-10s absent\n", label+":")
		return nil
	}
	c, err := n()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%-10s %d %s\n", label+":", c, unit)
	return nil
}

// -----------------------------------------------------------------------------
// catalog
// -----------------------------------------------------------------------------

func catalogCommand() cli.Command {
	return cli.Command{
		Name:  "catalog",
		Usage: "Manage the asset catalog",
		Subcommands: []cli.Command{
			{
				Name:   "list",
				Usage:  "List stored assets",
				Flags:  commandFlags(),
				Action: catalogList,
			},
			{
				Name:      "get",
				Usage:     "Write a stored asset to a file",
				ArgsUsage: "<name> <output.bin>",
				Flags:     commandFlags(),
				Action:    catalogGet,
			},
			{
				Name:      "delete",
				Usage:     "Remove a stored asset",
				ArgsUsage: "<name>",
				Flags:     commandFlags(),
				Action:    catalogDelete,
			},
		},
	}
}

func catalogList(ctx *cli.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	cat, err := openCatalog(cfg, log)
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(ctx.App.Writer, "%-24s %10d  %s\n", e.Name, e.Size, e.Digest.Hex())
	}
	return nil
}

func catalogGet(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return usageError(ctx)
	}
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	cat, err := openCatalog(cfg, log)
	if err != nil {
		return err
	}
	defer cat.Close()

	name, out := ctx.Args().Get(0), ctx.Args().Get(1)
	buf, digest, err := cat.Get(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, buf, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Wrote %q to %s (%d bytes, keccak256 %s).\n", name, out, len(buf), digest.Hex())
	return nil
}

func catalogDelete(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return usageError(ctx)
	}
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	cat, err := openCatalog(cfg, log)
	if err != nil {
		return err
	}
	defer cat.Close()
	return cat.Delete(ctx.Args().Get(0))
}
