package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"catalog-service/internal/domain"
)

// readCodes parses a reference-code CSV. A header row naming "code" and
// "description" (and optionally "id") selects columns by name; without one
// the columns are code, description.
func readCodes(r io.Reader) ([]domain.ReferenceCode, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	idCol, codeCol, descCol := -1, 0, 1
	var codes []domain.ReferenceCode
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("codes csv: %w", err)
		}
		if line == 1 && isHeader(record) {
			idCol, codeCol, descCol = headerColumns(record)
			if codeCol < 0 || descCol < 0 {
				return nil, errors.New("codes csv: header must name code and description columns")
			}
			continue
		}
		if codeCol >= len(record) || descCol >= len(record) {
			return nil, fmt.Errorf("codes csv: line %d: expected at least %d columns", line, max(codeCol, descCol)+1)
		}
		code := strings.TrimSpace(record[codeCol])
		if code == "" {
			return nil, fmt.Errorf("codes csv: line %d: empty code", line)
		}
		rc := domain.ReferenceCode{Code: code, Description: strings.TrimSpace(record[descCol])}
		if idCol >= 0 && idCol < len(record) {
			rc.ID = strings.TrimSpace(record[idCol])
		}
		codes = append(codes, rc)
	}
	if len(codes) == 0 {
		return nil, errors.New("codes csv: no codes found")
	}
	return codes, nil
}

func isHeader(record []string) bool {
	for _, field := range record {
		if strings.EqualFold(strings.TrimSpace(field), "code") {
			return true
		}
	}
	return false
}

func headerColumns(record []string) (id, code, desc int) {
	id, code, desc = -1, -1, -1
	for i, field := range record {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "id":
			id = i
		case "code":
			code = i
		case "description":
			desc = i
		}
	}
	return id, code, desc
}
