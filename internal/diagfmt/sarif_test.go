package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSarif(t *testing.T) {
	bag, fs := sampleBag()

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "mystdir", ToolVersion: "1.0.0", InvocationArgs: []string{"diag", "docs"}}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected envelope: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "mystdir" || len(run.Tool.Driver.Rules) != 2 {
		t.Errorf("unexpected driver: %+v", run.Tool.Driver)
	}
	if run.Tool.Driver.Rules[0].ID != "DIR1003" {
		t.Errorf("rules should be sorted by code, got %+v", run.Tool.Driver.Rules)
	}
	if len(run.Results) != 2 || run.Results[0].Level != "warning" || run.Results[1].Level != "error" {
		t.Fatalf("unexpected results: %+v", run.Results)
	}
	region := run.Results[0].Locations[0].PhysicalLocation.Region
	if region == nil || region.StartLine != 3 {
		t.Errorf("unexpected region: %+v", region)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Errorf("an error diagnostic should mark the invocation failed: %+v", run.Invocations)
	}
}
