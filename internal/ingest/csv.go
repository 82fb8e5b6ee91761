package ingest

import "strings"

const byteOrderMark = "\uFEFF"

// ParseCSV splits a published-sheet CSV export into rows of trimmed cells.
//
// Quoted cells may contain commas, newlines and doubled quotes. Rows end at
// "\n" or "\r\n"; a lone "\r" is kept as cell content. Rows whose cells are
// all empty are dropped. Malformed input never fails: a quote outside a quoted
// run opens one, and an unterminated run swallows the rest of the input.
func ParseCSV(text string) [][]string {
	text = strings.TrimPrefix(text, byteOrderMark)

	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)

	endCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}
	endRow := func() {
		endCell()
		if hasContent(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuotes {
			if c != '"' {
				cell.WriteByte(c)
				continue
			}
			if i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
				continue
			}
			inQuotes = false
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			endCell()
		case '\n':
			endRow()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				endRow()
				i++
				continue
			}
			cell.WriteByte(c)
		default:
			cell.WriteByte(c)
		}
	}
	endRow()

	return rows
}

func hasContent(row []string) bool {
	for _, c := range row {
		if c != "" {
			return true
		}
	}
	return false
}
