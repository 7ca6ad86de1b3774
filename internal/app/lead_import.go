/**
 * @description
 * Spreadsheet lead import. Prospect lists arrive as .xlsx or .csv uploads;
 * rows are mapped by header name onto lead records for the dispatching
 * provider.
 *
 * @dependencies
 * - bytes, encoding/csv, path/filepath, strings: Standard Go libraries.
 * - github.com/xuri/excelize/v2: Spreadsheet parsing.
 */

package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Errors callers can map to a validation response. Anything else coming out
// of ImportLeads is a backend failure.
var (
	ErrUnsupportedImportFormat = errors.New("unsupported import format; upload .csv or .xlsx")
	ErrInvalidUpload           = errors.New("invalid upload")
)

// ImportLeads parses an uploaded prospect spreadsheet and inserts its rows as
// leads for the caller's provider. The first row must be a header naming at
// least a private identifier column. Rows without an identifier are skipped.
func (s *Service) ImportLeads(ctx context.Context, userID uuid.UUID, accountID, filename string, content []byte) (int, error) {
	provider, err := s.ResolveOwnedProvider(ctx, userID, accountID)
	if err != nil {
		return 0, err
	}

	rows, err := readAllRows(content, strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		if errors.Is(err, ErrUnsupportedImportFormat) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("%w: no data rows", ErrInvalidUpload)
	}

	cols := mapHeaderColumns(rows[0])
	idCol, ok := cols["private_identifier"]
	if !ok {
		return 0, fmt.Errorf("%w: missing a private_identifier column", ErrInvalidUpload)
	}

	var leads []domain.Lead
	for _, row := range rows[1:] {
		identifier := cellAt(row, idCol)
		if identifier == "" {
			continue
		}
		leads = append(leads, domain.Lead{
			ProviderID:        provider.ID,
			CompanyID:         provider.CompanyID,
			FullName:          cellAt(row, colIndex(cols, "full_name")),
			Headline:          cellAt(row, colIndex(cols, "headline")),
			Company:           cellAt(row, colIndex(cols, "company")),
			Location:          cellAt(row, colIndex(cols, "location")),
			PrivateIdentifier: identifier,
		})
	}
	if len(leads) == 0 {
		return 0, fmt.Errorf("%w: no rows carry a private identifier", ErrInvalidUpload)
	}

	return s.repo.CreateLeads(ctx, leads)
}

// readAllRows loads every row from a CSV or XLSX payload.
func readAllRows(content []byte, ext string) ([][]string, error) {
	switch ext {
	case ".csv":
		r := csv.NewReader(bytes.NewReader(content))
		r.FieldsPerRecord = -1 // allow variable columns
		return r.ReadAll()
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return [][]string{}, nil
		}
		rows := [][]string{}
		rs, err := f.Rows(sheets[0])
		if err != nil {
			return nil, err
		}
		for rs.Next() {
			r, err := rs.Columns()
			if err != nil {
				return nil, err
			}
			rows = append(rows, r)
		}
		return rows, nil
	default:
		return nil, ErrUnsupportedImportFormat
	}
}

// mapHeaderColumns normalizes header names ("Full Name" → full_name) to
// column indexes.
func mapHeaderColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		normalized = strings.ReplaceAll(normalized, " ", "_")
		if normalized != "" {
			cols[normalized] = i
		}
	}
	return cols
}

func colIndex(cols map[string]int, name string) int {
	if idx, ok := cols[name]; ok {
		return idx
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
