package campaign

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed radio and middleware parameters shared by every generated
// scenario. The access layer is ITS-G5: channel 180 on the 5.9 GHz
// band.
const (
	networkModule      = "artery.envmod.World"
	communicationRange = 600 // meters
	channelNumber      = 180
	carrierFrequency   = "5.9 GHz"

	middlewareUpdateInterval = "0.1s"
	middlewareDatetime       = "2021-01-08 12:00:00"

	scenarioFileName = "omnetpp.ini"
	servicesFileName = "services.xml"
)

// renderScenario builds the scenario file for one manifest row. The
// seed list becomes a per-repetition variable on the vehicle equipment
// stream, so one file describes the whole run set.
func renderScenario(row Row, seeds []int64, placements []Placement) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "[General]\n")
	fmt.Fprintf(&b, "network = %s\n", networkModule)
	fmt.Fprintf(&b, "sim-time-limit = %ds\n", int(row.Duration.Seconds()))
	fmt.Fprintf(&b, "debug-on-errors = true\n")
	fmt.Fprintf(&b, "print-undisposed = true\n")
	fmt.Fprintf(&b, "cmdenv-express-mode = true\n")
	fmt.Fprintf(&b, "**.scalar-recording = false\n")
	fmt.Fprintf(&b, "**.vector-recording = false\n")
	fmt.Fprintf(&b, "**.middleware.datetime = %q\n", middlewareDatetime)
	fmt.Fprintf(&b, "*.traci.core.version = -1\n")
	fmt.Fprintf(&b, "*.traci.launcher.typename = \"PosixLauncher\"\n")
	fmt.Fprintf(&b, "*.traci.launcher.sumocfg = \"sumo/config/%s.sumocfg\"\n", row.Scenario)
	fmt.Fprintf(&b, "num-rngs = 2\n")
	fmt.Fprintf(&b, "*.traci.mapper.rng-0 = 1\n")
	fmt.Fprintf(&b, "seed-1-mt = ${seed=%s}\n", joinSeeds(seeds))
	fmt.Fprintf(&b, "*.traci.mapper.typename = \"traci.MultiTypeModuleMapper\"\n")
	fmt.Fprintf(&b, "*.traci.mapper.vehicleTypes = xmldoc(\"vehicles.xml\")\n")
	fmt.Fprintf(&b, "*.numRoadSideUnits = %d\n", len(placements))
	fmt.Fprintf(&b, "*.rsu[*].middleware.services = xmldoc(\"services-rsu.xml\")\n")
	fmt.Fprintf(&b, "*.rsu[*].middleware.RsuCa.reception.result-recording-modes = all\n\n")

	for i, p := range placements {
		fmt.Fprintf(&b, "*.rsu[%d].mobility.initialZ = 0m\n", i)
		fmt.Fprintf(&b, "*.rsu[%d].mobility.initialX = %.2fm\n", i, p.X)
		fmt.Fprintf(&b, "*.rsu[%d].mobility.initialY = %.2fm\n", i, p.Y)
		fmt.Fprintf(&b, "*.rsu[%d].middleware.RsuCALog.outputDirectory = \"results/%s/omnet/%s_\"\n\n",
			i, row.Scenario, p.ID)
	}

	fmt.Fprintf(&b, "*.radioMedium.rangeFilter = \"communicationRange\"\n")
	fmt.Fprintf(&b, "*.node[*].wlan[*].typename = \"VanetNic\"\n")
	fmt.Fprintf(&b, "*.node[*].wlan[*].radio.channelNumber = %d\n", channelNumber)
	fmt.Fprintf(&b, "*.node[*].wlan[*].radio.carrierFrequency = %s\n", carrierFrequency)
	fmt.Fprintf(&b, "*.node[*].wlan[*].radio.transmitter.communicationRange = %dm\n", communicationRange)
	fmt.Fprintf(&b, "*.node[*].middleware.updateInterval = %s\n", middlewareUpdateInterval)
	fmt.Fprintf(&b, "*.node[*].middleware.services = xmldoc(%q)\n", servicesFileName)

	return []byte(b.String())
}

// renderServices builds the vehicle service registry with the CA
// service penetration rate.
func renderServices(rate float64) []byte {
	var b strings.Builder

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<services>\n")
	b.WriteString("\t<service type=\"artery.application.CaService\">\n")
	b.WriteString("\t\t<listener port=\"2001\" />\n")
	b.WriteString("\t\t<filters>\n")
	fmt.Fprintf(&b, "\t\t\t<penetration rate=%q />\n", strconv.FormatFloat(rate, 'f', 4, 64))
	b.WriteString("\t\t</filters>\n")
	b.WriteString("\t</service>\n")
	b.WriteString("</services>")

	return []byte(b.String())
}

// joinSeeds formats a seed list as a comma-separated variable default.
func joinSeeds(seeds []int64) string {
	parts := make([]string, len(seeds))
	for i, s := range seeds {
		parts[i] = strconv.FormatInt(s, 10)
	}
	return strings.Join(parts, ", ")
}
