package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vanet-hq/saturn/pkg/cli"
	"vanet-hq/saturn/pkg/engine"
	"vanet-hq/saturn/pkg/modpath"
	"vanet-hq/saturn/pkg/value"
)

var queryFlags struct {
	file      string
	section   string
	module    string
	param     string
	kind      string
	unit      string
	runParams []string
	runIndex  int
	format    string
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Resolve a module parameter with provenance",
	Long: `Resolve a parameter for a concrete module path and report its value
together with its provenance: the section and the assignment key that
decided it.

Module paths name one module instance, e.g. "World.node[3].wlan.radio".
The parameter is the leaf name, e.g. "txPower". Resolution walks the
section chain most derived first; within the deciding section the most
specific pattern wins, and equal specificity goes to the later
declaration.

Examples:
  # Resolve a parameter in the scenario's default section
  vanet query -f highway.ini -m "World.node[3].wlan.radio" -p txPower

  # Resolve in a derived section
  vanet query -f highway.ini -s HighLoad -m "World.node[3].wlan.radio" -p txPower

  # Require a quantity and convert it
  vanet query -f highway.ini -m World.traci.core -p updateInterval --kind quantity --unit ms

  # Bind run parameters and pick a variation index
  vanet query -f highway.ini -m World -p numVehicles --run-param fleet=200 --run-index 3`,
	RunE: queryParameter,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVarP(&queryFlags.file, "file", "f", "", "scenario file (required)")
	queryCmd.Flags().StringVarP(&queryFlags.section, "section", "s", "", "section to resolve in (default: the scenario's active section)")
	queryCmd.Flags().StringVarP(&queryFlags.module, "module", "m", "", "module path (required)")
	queryCmd.Flags().StringVarP(&queryFlags.param, "param", "p", "", "parameter name (required)")
	queryCmd.Flags().StringVar(&queryFlags.kind, "kind", "", "expected kind: quantity, bool, string, docref, expression, array, object")
	queryCmd.Flags().StringVar(&queryFlags.unit, "unit", "", "convert a quantity into this unit")
	queryCmd.Flags().StringArrayVar(&queryFlags.runParams, "run-param", nil, "run parameter binding name=value (repeatable)")
	queryCmd.Flags().IntVar(&queryFlags.runIndex, "run-index", 0, "variation index for ${name=v0,v1,...} value lists")
	queryCmd.Flags().StringVar(&queryFlags.format, "format", "text", "output format: text, json")

	_ = queryCmd.MarkFlagRequired("file")
	_ = queryCmd.MarkFlagRequired("module")
	_ = queryCmd.MarkFlagRequired("param")
}

func queryParameter(cmd *cobra.Command, args []string) error {
	cfg, logger, collector, err := initRuntime()
	if err != nil {
		return err
	}

	path, err := modpath.Parse(queryFlags.module)
	if err != nil {
		return fmt.Errorf("invalid module path: %w", err)
	}

	kind, err := parseKindFlag(queryFlags.kind)
	if err != nil {
		return err
	}

	dim := value.DimNone
	if queryFlags.unit != "" {
		d, ok := value.UnitDimension(queryFlags.unit)
		if !ok {
			return fmt.Errorf("unknown unit %q (known units: %s)", queryFlags.unit, strings.Join(value.AllUnits(), ", "))
		}
		dim = d
		if kind == value.KindAny {
			kind = value.KindQuantity
		}
	}

	runParams, err := parseRunParams(queryFlags.runParams)
	if err != nil {
		return err
	}

	eng := engine.New(&cfg.Engine, logger.Slog(), collector)
	scn, err := eng.LoadWithOptions(queryFlags.file, engine.LoadOptions{
		Section:       queryFlags.section,
		RunParameters: runParams,
		RunIndex:      queryFlags.runIndex,
	})
	if err != nil {
		return cli.NewCommandError("query", err)
	}

	res, err := scn.Explain(path, queryFlags.param)
	if err != nil {
		return cli.NewCommandError("query", err)
	}

	val := res.Value
	if kind != value.KindAny || dim != value.DimNone {
		val, err = scn.ResolveAs(path, queryFlags.param, kind, dim)
		if err != nil {
			return cli.NewCommandError("query", err)
		}
	}

	var converted *float64
	if queryFlags.unit != "" {
		c, err := val.Quantity.In(queryFlags.unit)
		if err != nil {
			return cli.NewCommandError("query", err)
		}
		converted = &c
	}

	if queryFlags.format == "json" {
		return outputQueryJSON(path, val, res, converted)
	}

	fmt.Printf("%s.%s = %s\n", path, queryFlags.param, val)
	if converted != nil {
		fmt.Printf("  = %s %s\n", strconv.FormatFloat(*converted, 'g', 12, 64), queryFlags.unit)
	}
	fmt.Printf("  section:  %s\n", res.Section)
	fmt.Printf("  key:      %s\n", res.Key)
	if res.Location.IsValid() {
		fmt.Printf("  declared: %s\n", res.Location)
	}
	return nil
}

func outputQueryJSON(path modpath.Path, val value.Value, res *engine.Resolution, converted *float64) error {
	out := map[string]interface{}{
		"module":  path.String(),
		"param":   queryFlags.param,
		"value":   val.String(),
		"kind":    string(val.Kind),
		"raw":     val.Raw,
		"section": res.Section,
		"key":     res.Key,
	}
	if res.Location.IsValid() {
		out["file"] = res.Location.File
		out["line"] = res.Location.Line
	}
	if converted != nil {
		out["converted"] = map[string]interface{}{
			"value": *converted,
			"unit":  queryFlags.unit,
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func parseKindFlag(s string) (value.Kind, error) {
	switch s {
	case "":
		return value.KindAny, nil
	case "quantity", "bool", "string", "docref", "expression", "array", "object":
		return value.Kind(s), nil
	default:
		return value.KindAny, fmt.Errorf("unknown kind %q (expected quantity, bool, string, docref, expression, array, or object)", s)
	}
}

func parseRunParams(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, val, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid run parameter %q (expected name=value)", pair)
		}
		params[name] = val
	}
	return params, nil
}
