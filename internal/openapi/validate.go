package openapi

import (
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi"
)

// Report summarises a validated document.
type Report struct {
	Version      string
	Title        string
	Paths        int
	OperationIDs []string
	Definitions  int
}

// Validate parses a generated document back with libopenapi and builds its
// Swagger 2.0 model.
func Validate(content []byte) (*Report, error) {
	doc, err := libopenapi.NewDocument(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	version := doc.GetVersion()
	if !strings.HasPrefix(version, "2.") {
		return nil, fmt.Errorf("unsupported document version: %s, expected 2.x", version)
	}

	model, err := doc.BuildV2Model()
	if err != nil {
		return nil, fmt.Errorf("failed to build Swagger 2.x model: %w", err)
	}

	sw := model.Model
	report := &Report{Version: version}
	if sw.Info != nil {
		report.Title = sw.Info.Title
	}
	if sw.Paths != nil {
		for pair := sw.Paths.PathItems.First(); pair != nil; pair = pair.Next() {
			report.Paths++
			if op := pair.Value().Post; op != nil {
				report.OperationIDs = append(report.OperationIDs, op.OperationId)
			}
		}
	}
	if sw.Definitions != nil {
		report.Definitions = sw.Definitions.Definitions.Len()
	}
	return report, nil
}
