package game

import (
	"encoding/xml"
	"fmt"
	"os"
)

// ControlBindings is the subset of the game's bindings file this
// application reads: for each supported control, which device inputs are
// bound to it. Elements not listed here are ignored by the XML decoder.
type ControlBindings struct {
	XMLName         xml.Name       `xml:"Root"`
	ExternalLights  ControlBinding `xml:"ShipSpotLightToggle"`
	CargoScoop      ControlBinding `xml:"ToggleCargoScoop"`
	LandingGear     ControlBinding `xml:"LandingGearToggle"`
	Hardpoints      ControlBinding `xml:"DeployHardpointToggle"`
	Boost           ControlBinding `xml:"UseBoostJuice"`
	HyperSuperCombo ControlBinding `xml:"HyperSuperCombination"`
	Supercruise     ControlBinding `xml:"Supercruise"`
	Hyperspace      ControlBinding `xml:"Hyperspace"`
	SilentRunning   ControlBinding `xml:"ToggleButtonUpInput"`
	HeatSink        ControlBinding `xml:"DeployHeatSink"`
	Throttle        ControlBinding `xml:"ThrottleAxis"`
	NightVision     ControlBinding `xml:"NightVisionToggle"`
}

// ControlBinding is the pair of device inputs bound to one control. Button
// controls use Primary/Secondary; axis controls use Binding.
type ControlBinding struct {
	Primary   BoundInput `xml:"Primary"`
	Secondary BoundInput `xml:"Secondary"`
	Binding   BoundInput `xml:"Binding"`
}

// BoundInput is one device input reference as stored in the bindings file.
type BoundInput struct {
	Device string `xml:"Device,attr"`
	Key    string `xml:"Key,attr"`
}

// ParseControlBindings parses the content of a bindings file.
func ParseControlBindings(data []byte) (ControlBindings, error) {
	var bindings ControlBindings
	if err := xml.Unmarshal(data, &bindings); err != nil {
		return ControlBindings{}, fmt.Errorf("failed to parse bindings file: %w", err)
	}
	return bindings, nil
}

// ReadControlBindings reads and parses the bindings file at the given path.
func ReadControlBindings(path string) (ControlBindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ControlBindings{}, fmt.Errorf("failed to read bindings file: %w", err)
	}
	return ParseControlBindings(data)
}
