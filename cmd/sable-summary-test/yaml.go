package main

import (
	"fmt"
	"strconv"

	"sablec/summary"
	"sablec/util"
)

// The YAML form of a summary index, used by this tool for inspection and
// test-fixture authoring.  Only the binary form is part of the on-disk
// contract.

type yamlCall struct {
	CalleeName string `yaml:"callee_name"`
	Callee     uint64 `yaml:"callee"`
	Kind       string `yaml:"kind"`
}

type yamlFunction struct {
	Name      string     `yaml:"name"`
	GUID      uint64     `yaml:"guid"`
	Live      bool       `yaml:"live"`
	Preserved bool       `yaml:"preserved"`
	Calls     []yamlCall `yaml:"calls"`
}

type yamlSlot struct {
	Requirement uint64   `yaml:"requirement"`
	Impls       []uint64 `yaml:"impls"`
}

type yamlIndex struct {
	ModuleName     string                  `yaml:"module_name"`
	Functions      map[string]yamlFunction `yaml:"functions"`
	WitnessMethods []yamlSlot              `yaml:"witness_methods,omitempty"`
	VTableMethods  []yamlSlot              `yaml:"vtable_methods,omitempty"`
}

// callKindNames maps call kinds to their YAML spelling and back.
var callKindNames = map[summary.CallKind]string{
	summary.Direct:  "direct",
	summary.Witness: "witness",
	summary.VTable:  "vtable",
}

func callKindFromName(name string) (summary.CallKind, error) {
	for kind, kindName := range callKindNames {
		if kindName == name {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("unknown call kind `%s`", name)
}

// indexToYAML converts an index into its YAML form.
func indexToYAML(index *summary.ModuleSummaryIndex) *yamlIndex {
	y := &yamlIndex{
		ModuleName: index.ModuleName,
		Functions:  make(map[string]yamlFunction),
	}

	index.Functions(func(fs *summary.FunctionSummary) {
		yf := yamlFunction{
			Name:      fs.DebugName,
			GUID:      uint64(fs.GUID),
			Live:      fs.Live,
			Preserved: fs.Preserved,
		}

		for _, call := range fs.Calls {
			yf.Calls = append(yf.Calls, yamlCall{
				CalleeName: call.DebugName,
				Callee:     uint64(call.Callee),
				Kind:       callKindNames[call.Kind],
			})
		}

		y.Functions[strconv.FormatUint(uint64(fs.GUID), 10)] = yf
	})

	index.VirtualMethods(func(slot summary.VirtualMethodSlot, impls []summary.GUID) {
		ys := yamlSlot{
			Requirement: uint64(slot.VirtualFuncID),
			Impls:       util.Map(impls, func(impl summary.GUID) uint64 { return uint64(impl) }),
		}

		if slot.Kind == summary.WitnessSlot {
			y.WitnessMethods = append(y.WitnessMethods, ys)
		} else {
			y.VTableMethods = append(y.VTableMethods, ys)
		}
	})

	return y
}

// indexFromYAML converts the YAML form back into an index.
func indexFromYAML(y *yamlIndex) (*summary.ModuleSummaryIndex, error) {
	index := summary.NewIndex(y.ModuleName)

	for key, yf := range y.Functions {
		guid, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("function key `%s` is not an integer", key)
		}

		fs := summary.NewFunctionSummary(summary.GUID(guid))
		fs.DebugName = yf.Name
		fs.Live = yf.Live
		fs.Preserved = yf.Preserved

		for _, yc := range yf.Calls {
			kind, err := callKindFromName(yc.Kind)
			if err != nil {
				return nil, err
			}

			fs.AddCall(summary.Call{
				Callee:    summary.GUID(yc.Callee),
				Kind:      kind,
				DebugName: yc.CalleeName,
			})
		}

		index.AddFunctionSummary(fs)
	}

	addSlots := func(kind summary.SlotKind, slots []yamlSlot) {
		for _, ys := range slots {
			slot := summary.VirtualMethodSlot{
				Kind:          kind,
				VirtualFuncID: summary.GUID(ys.Requirement),
			}
			for _, impl := range ys.Impls {
				index.AddImplementation(slot, summary.GUID(impl))
			}
		}
	}

	addSlots(summary.WitnessSlot, y.WitnessMethods)
	addSlots(summary.VTableSlot, y.VTableMethods)

	return index, nil
}
