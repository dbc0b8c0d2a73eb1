package batch

import (
	"fmt"

	"Billios/internal/calc/fieldtest"
)

type FieldTestBatchInput struct {
	Items []fieldtest.Input `json:"items"`
}

type FieldTestBatchResult struct {
	Results []fieldtest.Result `json:"results"`
}

// CalculateFieldTests stops at the first item that fails.
func CalculateFieldTests(in FieldTestBatchInput, cal fieldtest.Calibration) (FieldTestBatchResult, error) {
	if len(in.Items) == 0 {
		return FieldTestBatchResult{}, fmt.Errorf("no items")
	}
	out := FieldTestBatchResult{Results: make([]fieldtest.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := cal.Calculate(item)
		if err != nil {
			return FieldTestBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
