package engine

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"vanet-hq/saturn/pkg/modpath"
	"vanet-hq/saturn/pkg/value"
)

// scenarioSrc models a motorway V2X study: a base section with radio and
// beaconing defaults and two variants layered on top.
const scenarioSrc = `# Motorway scenario with section variants.
network = RSUGridNetwork
sim-time-limit = 400 s
num-rngs = 2
seed-1-mt = ${seed=1215}

*.numNodes = 120
*.node[*].wlan[*].radio.channelNumber = 180
*.node[*].wlan[*].radio.carrierFrequency = 5.9 GHz
**.nic.txPower = 10 mW
**.node[3].nic.txPower = 20 mW
**.nic.txPower = 12 mW
*.traci.mapper.rng-0 = 1
*.node[*].app.beaconInterval = ${beacon=0.1}s

[Config DenseUrban]
**.nic.txPower = 30 mW

[Config RainyDense]
extends = DenseUrban
sim-time-limit = 600 s
`

func loadScenario(t *testing.T, opts LoadOptions) *Scenario {
	t.Helper()
	eng := New(nil, nil, nil)
	scn, err := eng.LoadBytes([]byte(scenarioSrc), "motorway.ini", opts)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return scn
}

func quantityClose(t *testing.T, got value.Value, want float64) {
	t.Helper()
	if got.Kind != value.KindQuantity {
		t.Fatalf("expected quantity, got kind %q (raw %q)", got.Kind, got.Raw)
	}
	if diff := math.Abs(got.Quantity.Value - want); diff > 1e-12*math.Abs(want)+1e-15 {
		t.Errorf("expected %v, got %v", want, got.Quantity.Value)
	}
}

func TestResolve_SpecificityAndLastWins(t *testing.T) {
	scn := loadScenario(t, LoadOptions{})

	// node[3] hits the exact-index pattern despite two broader rules.
	v, err := scn.Resolve(modpath.MustParse("scenario.node[3].nic"), "txPower")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	quantityClose(t, v, 0.020)

	// node[5] ties between the two **.nic rules; the later one wins.
	v, err = scn.Resolve(modpath.MustParse("scenario.node[5].nic"), "txPower")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	quantityClose(t, v, 0.012)
}

func TestResolve_SectionPrecedenceBeatsSpecificity(t *testing.T) {
	scn := loadScenario(t, LoadOptions{Section: "DenseUrban"})

	// DenseUrban's broad rule decides before General is consulted, so the
	// more specific node[3] rule in General never competes.
	v, err := scn.Resolve(modpath.MustParse("scenario.node[3].nic"), "txPower")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	quantityClose(t, v, 0.030)
}

func TestResolve_InheritedFromGeneral(t *testing.T) {
	scn := loadScenario(t, LoadOptions{Section: "RainyDense"})

	v, err := scn.ResolveAs(
		modpath.MustParse("scenario.node[8].wlan[0].radio"),
		"carrierFrequency", value.KindQuantity, value.DimFrequency)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	quantityClose(t, v, 5.9e9)

	// Dimensionless quantities stay plain numbers.
	v, err = scn.Resolve(modpath.MustParse("scenario.node[8].wlan[0].radio"), "channelNumber")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	quantityClose(t, v, 180)

	v, err = scn.Resolve(modpath.MustParse("scenario"), "numNodes")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	quantityClose(t, v, 120)
}

func TestResolveAs_UnitMismatch(t *testing.T) {
	scn := loadScenario(t, LoadOptions{})

	_, err := scn.ResolveAs(
		modpath.MustParse("scenario.node[5].nic"),
		"txPower", value.KindQuantity, value.DimTime)
	if err == nil {
		t.Fatal("expected unit mismatch error")
	}

	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValueError, got %T: %v", err, err)
	}
	var ume *value.UnitMismatchError
	if !errors.As(err, &ume) {
		t.Fatalf("expected wrapped UnitMismatchError, got: %v", err)
	}
	if ume.Want != value.DimTime {
		t.Errorf("expected wanted dimension %q, got %q", value.DimTime, ume.Want)
	}
	if !ve.Location.IsValid() {
		t.Error("expected the offending assignment's location")
	}
}

func TestResolve_Unbound(t *testing.T) {
	scn := loadScenario(t, LoadOptions{Section: "DenseUrban"})

	_, err := scn.Resolve(modpath.MustParse("scenario.node[2].app"), "retransmitCount")
	var pue *ParameterUnboundError
	if !errors.As(err, &pue) {
		t.Fatalf("expected ParameterUnboundError, got %T: %v", err, err)
	}
	if pue.Param != "retransmitCount" {
		t.Errorf("expected param retransmitCount, got %q", pue.Param)
	}
	if pue.Section != "DenseUrban" {
		t.Errorf("expected section DenseUrban, got %q", pue.Section)
	}
}

func TestResolve_RunParameters(t *testing.T) {
	path := modpath.MustParse("scenario.node[0].app")

	// Default applies when the variable is unbound.
	scn := loadScenario(t, LoadOptions{})
	v, err := scn.Resolve(path, "beaconInterval")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	quantityClose(t, v, 0.1)
	if v.Quantity.Dim != value.DimTime {
		t.Errorf("expected time dimension, got %q", v.Quantity.Dim)
	}

	// An explicit run parameter overrides the default.
	scn = loadScenario(t, LoadOptions{
		RunParameters: map[string]string{"beacon": "0.5"},
	})
	v, err = scn.Resolve(path, "beaconInterval")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	quantityClose(t, v, 0.5)
}

func TestResolve_MemoReturnsSameResolution(t *testing.T) {
	scn := loadScenario(t, LoadOptions{})
	path := modpath.MustParse("scenario.node[3].nic")

	r1, err := scn.Explain(path, "txPower")
	if err != nil {
		t.Fatalf("explain failed: %v", err)
	}
	r2, err := scn.Explain(path, "txPower")
	if err != nil {
		t.Fatalf("explain failed: %v", err)
	}
	if r1 != r2 {
		t.Error("expected memoized resolution instance")
	}
	if r1.Section != "General" {
		t.Errorf("expected winning section General, got %q", r1.Section)
	}
	if r1.Key != "**.node[3].nic.txPower" {
		t.Errorf("expected winning key recorded, got %q", r1.Key)
	}
}

func TestGlobalDirectives(t *testing.T) {
	scn := loadScenario(t, LoadOptions{})

	network, err := scn.Network()
	if err != nil {
		t.Fatalf("network failed: %v", err)
	}
	if network != "RSUGridNetwork" {
		t.Errorf("expected network RSUGridNetwork, got %q", network)
	}

	limit, err := scn.SimTimeLimit()
	if err != nil {
		t.Fatalf("sim-time-limit failed: %v", err)
	}
	if limit.Value != 400 {
		t.Errorf("expected 400 s, got %v", limit.Value)
	}

	// The derived section overrides the limit; network is inherited.
	scn = loadScenario(t, LoadOptions{Section: "RainyDense"})
	limit, err = scn.SimTimeLimit()
	if err != nil {
		t.Fatalf("sim-time-limit failed: %v", err)
	}
	if limit.Value != 600 {
		t.Errorf("expected 600 s, got %v", limit.Value)
	}
	if _, err := scn.Network(); err != nil {
		t.Errorf("expected network inherited from General, got: %v", err)
	}

	_, err = scn.GlobalOption("cmdenv-express-mode")
	var due *DirectiveUnboundError
	if !errors.As(err, &due) {
		t.Fatalf("expected DirectiveUnboundError, got %T: %v", err, err)
	}
}

func TestRNGMapping(t *testing.T) {
	scn := loadScenario(t, LoadOptions{})

	if got := scn.NumRNGs(); got != 2 {
		t.Fatalf("expected 2 RNG streams, got %d", got)
	}

	seed, ok := scn.Seed(1)
	if !ok || seed != 1215 {
		t.Errorf("expected seed 1215 for stream 1, got %d (ok=%v)", seed, ok)
	}
	if _, ok := scn.Seed(0); ok {
		t.Error("expected no seed for stream 0")
	}

	// The traci mapper's default RNG maps to stream 1.
	mapperPath := modpath.MustParse("scenario.traci.mapper")
	if got := scn.StreamFor(mapperPath); got != 1 {
		t.Errorf("expected stream 1 for traci mapper, got %d", got)
	}

	// Everything else stays on the default stream.
	nodePath := modpath.MustParse("scenario.node[4].app")
	if got := scn.StreamFor(nodePath); got != 0 {
		t.Errorf("expected default stream 0, got %d", got)
	}

	// Seeds flow through run parameters.
	scn = loadScenario(t, LoadOptions{
		RunParameters: map[string]string{"seed": "4242"},
	})
	seed, ok = scn.Seed(1)
	if !ok || seed != 4242 {
		t.Errorf("expected overridden seed 4242, got %d (ok=%v)", seed, ok)
	}
}

func TestResolveIn_ExplicitSection(t *testing.T) {
	scn := loadScenario(t, LoadOptions{})

	v, err := scn.ResolveIn("DenseUrban", modpath.MustParse("scenario.node[3].nic"), "txPower")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	quantityClose(t, v, 0.030)

	_, err = scn.ResolveIn("Nope", modpath.MustParse("scenario"), "numNodes")
	var use *UnknownSectionError
	if !errors.As(err, &use) {
		t.Fatalf("expected UnknownSectionError, got %T: %v", err, err)
	}
}

func TestScenario_Chain(t *testing.T) {
	scn := loadScenario(t, LoadOptions{})

	chain, err := scn.Chain("RainyDense")
	if err != nil {
		t.Fatalf("chain failed: %v", err)
	}
	want := []string{"RainyDense", "DenseUrban", "General"}
	if len(chain) != len(want) {
		t.Fatalf("expected chain %v, got %v", want, chain)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("expected chain %v, got %v", want, chain)
		}
	}

	sections := scn.Sections()
	if len(sections) != 3 {
		t.Errorf("expected 3 sections, got %v", sections)
	}
}

func TestDocument_SharedInstance(t *testing.T) {
	dir := t.TempDir()
	xml := `<services><service type="alert"><penetration rate="0.2500"/></service></services>`
	if err := os.WriteFile(filepath.Join(dir, "services.xml"), []byte(xml), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	src := `
*.node[*].app.serviceConfig = xmldoc("services.xml")
*.rsu[*].app.serviceConfig = xmldoc("./sub/../services.xml")
`
	eng := New(nil, nil, nil)
	scn, err := eng.LoadBytes([]byte(src), "services.ini", LoadOptions{BaseDir: dir})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	v1, err := scn.Resolve(modpath.MustParse("scenario.node[0].app"), "serviceConfig")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if v1.Kind != value.KindDocRef {
		t.Fatalf("expected document reference, got kind %q", v1.Kind)
	}

	v2, err := scn.Resolve(modpath.MustParse("scenario.rsu[2].app"), "serviceConfig")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	d1, err := scn.Document(v1.Ref)
	if err != nil {
		t.Fatalf("document load failed: %v", err)
	}
	d2, err := scn.Document(v2.Ref)
	if err != nil {
		t.Fatalf("document load failed: %v", err)
	}

	// Both references normalize to the same file and share one instance.
	if d1 != d2 {
		t.Error("expected one shared document instance")
	}
	if d1.XML == nil || d1.XML.Name != "services" {
		t.Fatalf("expected parsed services root, got %+v", d1.XML)
	}
	svc := d1.XML.Find("service")
	if svc == nil {
		t.Fatal("expected a service element")
	}
	if typ, ok := svc.Attr("type"); !ok || typ != "alert" {
		t.Errorf("expected service type alert, got %q", typ)
	}
}

func TestDocument_MissingIsFatal(t *testing.T) {
	src := `*.manager.obstacles = xmldoc("missing.xml")` + "\n"
	eng := New(nil, nil, nil)
	scn, err := eng.LoadBytes([]byte(src), "obstacles.ini", LoadOptions{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	v, err := scn.Resolve(modpath.MustParse("scenario.manager"), "obstacles")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if _, err := scn.Document(v.Ref); err == nil {
		t.Error("expected load error for missing document")
	}
}
