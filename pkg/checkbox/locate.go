package checkbox

// tableHeaderLines is the header row plus the delimiter row that precede
// the first data row in a table's source.
const tableHeaderLines = 2

// SectionInfo is render-time metadata about the source span of a rendered
// fragment.
type SectionInfo struct {
	LineStart int // 0-based line of the first source line of the fragment
	LineEnd   int
}

// Locate returns the 0-based source line of the dataRow-th data row of a
// table whose fragment starts at section.LineStart. dataRow counts only
// rows that contain data cells. A nil section yields false.
//
// Tables with more than one header row, or whose delimiter row is not the
// line right after the header, are mapped incorrectly.
func Locate(section *SectionInfo, dataRow int) (int, bool) {
	if section == nil {
		return 0, false
	}
	return section.LineStart + dataRow + tableHeaderLines, true
}
